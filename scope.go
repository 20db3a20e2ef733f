package logo

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fold returns the case-folded form of a name, used as the key for every
// case-insensitive lookup.
func fold(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= utf8.RuneSelf || 'A' <= c && c <= 'Z' {
			return cases.Fold().String(s)
		}
	}
	return s
}

// upper returns the upper-case form of a name.
func upper(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= utf8.RuneSelf || 'a' <= c && c <= 'z' {
			return cases.Upper(language.Und).String(s)
		}
	}
	return s
}

// cell is a variable's storage. A nil value means the variable exists but
// has no value.
type cell struct {
	name   string
	value  Value
	buried bool
}

// frame is one level of the scope chain, keyed by folded name.
type frame map[string]*cell

func (in *Interp) pushFrame() {
	in.frames = append(in.frames, frame{})
	in.tests = append(in.tests, untested)
}

func (in *Interp) popFrame() {
	in.frames[len(in.frames)-1] = nil
	in.frames = in.frames[:len(in.frames)-1]
	in.tests = in.tests[:len(in.tests)-1]
}

// lookup finds the innermost cell for a variable.
func (in *Interp) lookup(name string) *cell {
	k := fold(name)
	for i := len(in.frames) - 1; i >= 0; i-- {
		if c := in.frames[i][k]; c != nil {
			return c
		}
	}
	return nil
}

// Var returns the value of a variable.
func (in *Interp) Var(name string) (Value, bool) {
	c := in.lookup(name)
	if c == nil || c.value == nil {
		return nil, false
	}
	return c.value, true
}

// thing returns the value of a variable or an unbound-variable error.
func (in *Interp) thing(name string) (Value, error) {
	v, ok := in.Var(name)
	if !ok {
		return nil, in.fault(UnboundVariable, "Don't know about variable {name:U}", map[string]any{"name": name})
	}
	return v, nil
}

// SetVar assigns a copy of v to a variable. The innermost existing variable
// of that name is updated; if there is none, a global is created.
func (in *Interp) SetVar(name string, v Value) {
	v = Copy(v)
	if c := in.lookup(name); c != nil {
		c.value = v
		return
	}
	in.frames[0][fold(name)] = &cell{name: name, value: v}
}

// local creates a variable without a value in the current frame, unless it
// already exists there.
func (in *Interp) local(name string) *cell {
	f := in.frames[len(in.frames)-1]
	k := fold(name)
	c := f[k]
	if c == nil {
		c = &cell{name: name}
		f[k] = c
	}
	return c
}

// bind creates or replaces a variable in the current frame.
func (in *Interp) bind(name string, v Value) {
	in.frames[len(in.frames)-1][fold(name)] = &cell{name: name, value: v}
}

// global returns the global cell for a name, creating it if needed.
func (in *Interp) global(name string) *cell {
	k := fold(name)
	c := in.frames[0][k]
	if c == nil {
		c = &cell{name: name}
		in.frames[0][k] = c
	}
	return c
}

// prop is one entry of a property list.
type prop struct {
	name  string
	value Value
}

// plist is a named property list. Properties keep their insertion order.
type plist struct {
	name   string
	props  []prop
	buried bool
}

func (p *plist) index(name string) int {
	k := fold(name)
	for i, q := range p.props {
		if fold(q.name) == k {
			return i
		}
	}
	return -1
}

// putProp sets a property, creating the list if needed.
func (in *Interp) putProp(list, name string, v Value) {
	k := fold(list)
	p := in.plists[k]
	if p == nil {
		p = &plist{name: list}
		in.plists[k] = p
		in.plistOrder = append(in.plistOrder, k)
	}
	v = Copy(v)
	if i := p.index(name); i >= 0 {
		p.props[i].value = v
		return
	}
	p.props = append(p.props, prop{name, v})
}

// getProp returns a property's value.
func (in *Interp) getProp(list, name string) (Value, bool) {
	p := in.plists[fold(list)]
	if p == nil {
		return nil, false
	}
	i := p.index(name)
	if i < 0 {
		return nil, false
	}
	return p.props[i].value, true
}

// removeProp deletes a property. A list left empty is deleted too.
func (in *Interp) removeProp(list, name string) {
	k := fold(list)
	p := in.plists[k]
	if p == nil {
		return
	}
	if i := p.index(name); i >= 0 {
		p.props = append(p.props[:i], p.props[i+1:]...)
	}
	if len(p.props) == 0 {
		in.erasePlist(k)
	}
}

// erasePlist deletes a property list by folded name.
func (in *Interp) erasePlist(k string) {
	delete(in.plists, k)
	for i, n := range in.plistOrder {
		if n == k {
			in.plistOrder = append(in.plistOrder[:i], in.plistOrder[i+1:]...)
			break
		}
	}
}

// plistNames returns the names of the property lists in creation order.
func (in *Interp) plistNames(buried bool) []string {
	var r []string
	for _, k := range in.plistOrder {
		if p := in.plists[k]; p.buried == buried {
			r = append(r, p.name)
		}
	}
	return r
}

// globalNames returns the names of the global variables that have values,
// sorted.
func (in *Interp) globalNames(buried bool) []string {
	var r []string
	for _, c := range in.frames[0] {
		if c.value != nil && c.buried == buried {
			r = append(r, c.name)
		}
	}
	slices.SortFunc(r, func(a, b string) int { return strings.Compare(fold(a), fold(b)) })
	return r
}
