package logo

import (
	"github.com/zephyrtronium/contains"
)

// An Array is a fixed-length, origin-indexed sequence of values. Unlike lists,
// arrays are shared by reference: assignment never copies them.
type Array struct {
	Items  []Value
	Origin int

	id uintptr
}

// touch invalidates cached instruction parses of lists holding a.
func (a *Array) touch() {
	mutations.Add(1)
}

// NewArray creates an array of size empty lists with the given origin.
func NewArray(size, origin int) *Array {
	items := make([]Value, size)
	for i := range items {
		items[i] = NewList()
	}
	return &Array{Items: items, Origin: origin, id: nextID()}
}

// ArrayOf creates an array holding items, with the given origin.
func ArrayOf(origin int, items ...Value) *Array {
	if items == nil {
		items = []Value{}
	}
	return &Array{Items: items, Origin: origin, id: nextID()}
}

// Kind returns ArrayKind.
func (*Array) Kind() Kind {
	return ArrayKind
}

// Len returns the number of items in the array.
func (a *Array) Len() int {
	return len(a.Items)
}

// index converts an origin-relative index into a slice index. The second
// result is false if the index is out of bounds.
func (a *Array) index(i int) (int, bool) {
	i -= a.Origin
	return i, 0 <= i && i < len(a.Items)
}

// At returns the item at origin-relative index i.
func (a *Array) At(i int) (Value, bool) {
	k, ok := a.index(i)
	if !ok {
		return nil, false
	}
	return a.Items[k], true
}

// reachable reports whether target can be reached from v by following list
// and array elements. Every list and array is visited at most once, so this
// terminates even if some other path has already created a cycle.
func reachable(v Value, target uintptr) bool {
	set := contains.Set{}
	stack := []Value{v}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var items []Value
		var id uintptr
		switch x := x.(type) {
		case *List:
			items, id = x.Items, x.id
		case *Array:
			items, id = x.Items, x.id
		default:
			continue
		}
		if id == target {
			return true
		}
		if !set.Add(id) {
			continue
		}
		stack = append(stack, items...)
	}
	return false
}

// Contains reports whether v is a or contains a, directly or transitively.
func (a *Array) Contains(v Value) bool {
	return reachable(v, a.id)
}

// contains is the list counterpart of Array.Contains.
func (l *List) contains(v Value) bool {
	return reachable(v, l.id)
}
