package logo

import (
	"strings"
	"sync/atomic"
)

// Kind is the type indicator of a Value. Every Value has exactly one Kind.
type Kind int

// Value kinds.
const (
	// WordKind is the kind of words, which are strings or numbers.
	WordKind Kind = iota
	// ListKind is the kind of lists, which copy on assignment.
	ListKind
	// ArrayKind is the kind of arrays, which are shared by reference.
	ArrayKind
)

var kindNames = [...]string{"word", "list", "array"}

// String returns the Logo name of the kind.
func (k Kind) String() string {
	if k < WordKind || k > ArrayKind {
		return "invalid"
	}
	return kindNames[k]
}

// Value is a Logo datum: a Word, a *List, or an *Array.
type Value interface {
	Kind() Kind
}

// A Word is a scalar: a string or a number. Words are immutable. A word read
// from source keeps its text; a word produced by arithmetic keeps its number
// and formats it on demand.
type Word struct {
	s   string
	n   float64
	num bool
}

// NewWord creates a word with the given text.
func NewWord(s string) Word {
	return Word{s: s}
}

// NewNumber creates a numeric word.
func NewNumber(f float64) Word {
	return Word{n: f, num: true}
}

// Bool creates the word true or false.
func Bool(b bool) Word {
	if b {
		return Word{s: "true"}
	}
	return Word{s: "false"}
}

// Kind returns WordKind.
func (Word) Kind() Kind {
	return WordKind
}

// String returns the text of the word.
func (w Word) String() string {
	if w.num {
		return FormatNumber(w.n)
	}
	return w.s
}

// Number returns the numeric projection of the word, if it has one.
func (w Word) Number() (float64, bool) {
	if w.num {
		return w.n, true
	}
	return ParseNumber(w.s)
}

// IsNumber reports whether the word has a numeric projection.
func (w Word) IsNumber() bool {
	_, ok := w.Number()
	return ok
}

// listcounter gives lists and arrays identities for reachability scans.
var listcounter uintptr

func nextID() uintptr {
	return atomic.AddUintptr(&listcounter, 1)
}

// A List is an ordered, mutable sequence of values. Lists are deep-copied
// when they are assigned to variables or passed to procedures.
type List struct {
	Items []Value

	id uintptr
	// parsed caches the atoms of the list when it is run as instructions.
	// A list holding lists or arrays also depends on them, so its cache is
	// good only while parsedAt matches mutations.
	parsed   []Value
	parsedAt uint64
	nested   bool
}

// NewList creates a list holding the given items.
func NewList(items ...Value) *List {
	if items == nil {
		items = []Value{}
	}
	return &List{Items: items, id: nextID()}
}

// WordList creates a list of words from strings.
func WordList(items ...string) *List {
	l := make([]Value, len(items))
	for i, s := range items {
		l[i] = NewWord(s)
	}
	return NewList(l...)
}

// Kind returns ListKind.
func (*List) Kind() Kind {
	return ListKind
}

// Len returns the number of items in the list.
func (l *List) Len() int {
	return len(l.Items)
}

// mutations counts changes to lists and arrays.
var mutations atomic.Uint64

// touch invalidates cached instruction parses after a mutation.
func (l *List) touch() {
	l.parsed = nil
	mutations.Add(1)
}

// Copy returns a deep copy of v. Words and arrays are returned as-is, since
// words are immutable and arrays are shared by reference. Lists are copied
// recursively.
func Copy(v Value) Value {
	l, ok := v.(*List)
	if !ok {
		return v
	}
	items := make([]Value, len(l.Items))
	for i, x := range l.Items {
		items[i] = Copy(x)
	}
	return NewList(items...)
}

// Equal reports whether two values are equal. Words compare numerically when
// either is numeric and case-insensitively otherwise; lists compare
// structurally; arrays compare by identity.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Word:
		b, ok := b.(Word)
		if !ok {
			return false
		}
		an, aok := a.Number()
		bn, bok := b.Number()
		if aok || bok {
			return aok && bok && an == bn
		}
		return strings.EqualFold(a.String(), b.String())
	case *List:
		b, ok := b.(*List)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case *Array:
		b, ok := b.(*Array)
		return ok && a == b
	}
	return false
}

// Text renders a value the way PRINT does: lists lose their outer brackets.
func Text(v Value) string {
	if l, ok := v.(*List); ok {
		var b strings.Builder
		writeItems(&b, l.Items, false)
		return b.String()
	}
	return Show(v)
}

// Show renders a value the way SHOW does.
func Show(v Value) string {
	var b strings.Builder
	writeValue(&b, v, false)
	return b.String()
}

// source renders a value so that parsing the result reproduces it. Characters
// that would otherwise delimit words are escaped.
func source(v Value) string {
	var b strings.Builder
	writeValue(&b, v, true)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, escape bool) {
	switch v := v.(type) {
	case Word:
		if escape {
			b.WriteString(escapeWord(v.String()))
		} else {
			b.WriteString(v.String())
		}
	case *List:
		b.WriteByte('[')
		writeItems(b, v.Items, escape)
		b.WriteByte(']')
	case *Array:
		b.WriteByte('{')
		writeItems(b, v.Items, escape)
		b.WriteByte('}')
		if v.Origin != 1 {
			b.WriteByte('@')
			b.WriteString(FormatNumber(float64(v.Origin)))
		}
	case nil:
		// Unset values render as nothing.
	}
}

func writeItems(b *strings.Builder, items []Value, escape bool) {
	for i, x := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(b, x, escape)
	}
}

// listDelims are the characters that end a word inside a list.
const listDelims = " \t\n\r\f\v[]{};\\"

// escapeWord backslash-escapes the characters that would end a word inside
// a list. Operators and parentheses are left for the reader to split again,
// so a list such as [print (sum 1 2)] runs as written.
func escapeWord(s string) string {
	return escapeAny(s, listDelims)
}

func escapeAny(s, chars string) string {
	if !strings.ContainsAny(s, chars) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(chars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsEmpty reports whether v is the empty word, the empty list, or an empty
// array.
func IsEmpty(v Value) bool {
	switch v := v.(type) {
	case Word:
		return v.String() == ""
	case *List:
		return len(v.Items) == 0
	case *Array:
		return len(v.Items) == 0
	}
	return false
}
