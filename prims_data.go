package logo

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (in *Interp) initData() {
	// Constructors.
	in.define("word", 0, 2, -1, primWord)
	in.define("list", 0, 2, -1, primList)
	in.define("sentence se", 0, 2, -1, primSentence)
	in.define("fput", 2, 2, 2, primFput)
	in.define("lput", 2, 2, 2, primLput)
	in.define("array", 1, 1, 2, primArray)
	in.define("mdarray", 1, 1, 2, primMDArray)
	in.define("listtoarray", 1, 1, 2, primListToArray)
	in.define("arraytolist", 1, 1, 1, primArrayToList)
	in.define("combine", 2, 2, 2, primCombine)
	in.define("reverse", 1, 1, 1, primReverse)
	in.define("gensym", 0, 0, 0, primGensym)

	// Selectors.
	in.define("first", 1, 1, 1, primFirst)
	in.define("firsts", 1, 1, 1, primFirsts)
	in.define("last", 1, 1, 1, primLast)
	in.define("butfirst bf", 1, 1, 1, primButFirst)
	in.define("butfirsts bfs", 1, 1, 1, primButFirsts)
	in.define("butlast bl", 1, 1, 1, primButLast)
	in.define("item", 2, 2, 2, primItem)
	in.define("mditem", 2, 2, 2, primMDItem)
	in.define("pick", 1, 1, 1, primPick)
	in.define("remove", 2, 2, 2, primRemove)
	in.define("remdup", 1, 1, 1, primRemdup)
	in.define("quoted", 1, 1, 1, primQuoted)

	// Mutators.
	in.define("setitem", 3, 3, 3, primSetItem)
	in.define("mdsetitem", 3, 3, 3, primMDSetItem)
	in.define(".setfirst", 2, 2, 2, primDotSetFirst)
	in.define(".setbf", 2, 2, 2, primDotSetBF)
	in.define(".setitem", 3, 3, 3, primDotSetItem)
	in.define("push", 2, 2, 2, primPush)
	in.define("pop", 1, 1, 1, primPop)
	in.define("queue", 2, 2, 2, primQueue)
	in.define("dequeue", 1, 1, 1, primDequeue)

	// Predicates.
	in.define("wordp word?", 1, 1, 1, primWordP)
	in.define("listp list?", 1, 1, 1, primListP)
	in.define("arrayp array?", 1, 1, 1, primArrayP)
	in.define("numberp number?", 1, 1, 1, primNumberP)
	in.define("emptyp empty?", 1, 1, 1, primEmptyP)
	in.define("equalp equal?", 2, 2, 2, primEqualP)
	in.define("notequalp notequal?", 2, 2, 2, primNotEqualP)
	in.define("beforep before?", 2, 2, 2, primBeforeP)
	in.define(".eq", 2, 2, 2, primDotEq)
	in.define("memberp member?", 2, 2, 2, primMemberP)
	in.define("substringp substring?", 2, 2, 2, primSubstringP)

	// Queries.
	in.define("count", 1, 1, 1, primCount)
	in.define("ascii", 1, 1, 1, primASCII)
	in.define("char", 1, 1, 1, primChar)
	in.define("member", 2, 2, 2, primMember)
	in.define("lowercase", 1, 1, 1, primLowercase)
	in.define("uppercase", 1, 1, 1, primUppercase)
	in.define("parse", 1, 1, 1, primParse)
	in.define("runparse", 1, 1, 1, primRunParse)
}

func primWord(in *Interp, c *Call) (Value, error) {
	var b strings.Builder
	for _, v := range c.Args {
		s, err := in.toText(v)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return NewWord(b.String()), nil
}

func primList(in *Interp, c *Call) (Value, error) {
	r := make([]Value, len(c.Args))
	for i, v := range c.Args {
		r[i] = Copy(v)
	}
	return NewList(r...), nil
}

func primSentence(in *Interp, c *Call) (Value, error) {
	r := []Value{}
	for _, v := range c.Args {
		if l, ok := v.(*List); ok {
			for _, x := range l.Items {
				r = append(r, Copy(x))
			}
			continue
		}
		r = append(r, v)
	}
	return NewList(r...), nil
}

func primFput(in *Interp, c *Call) (Value, error) {
	x, l := c.Args[0], c.Args[1]
	switch l := l.(type) {
	case *List:
		return NewList(append([]Value{Copy(x)}, Copy(l).(*List).Items...)...), nil
	case Word:
		s, err := in.singleChar(x)
		if err != nil {
			return nil, err
		}
		return NewWord(s + l.String()), nil
	}
	return nil, in.expected("list", l)
}

func primLput(in *Interp, c *Call) (Value, error) {
	x, l := c.Args[0], c.Args[1]
	switch l := l.(type) {
	case *List:
		return NewList(append(Copy(l).(*List).Items, Copy(x))...), nil
	case Word:
		s, err := in.singleChar(x)
		if err != nil {
			return nil, err
		}
		return NewWord(l.String() + s), nil
	}
	return nil, in.expected("list", l)
}

// singleChar returns the text of a one-character word.
func (in *Interp) singleChar(v Value) (string, error) {
	w, ok := v.(Word)
	if !ok || utf8.RuneCountInString(w.String()) != 1 {
		return "", in.expected("string", v)
	}
	return w.String(), nil
}

// origin returns the optional origin input at i, defaulting to 1.
func (in *Interp) origin(c *Call, i int) (int, error) {
	if v := c.Arg(i); v != nil {
		return in.toInt(v)
	}
	return 1, nil
}

func primArray(in *Interp, c *Call) (Value, error) {
	n, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, in.fault(BadArraySize, "{_PROC_}: Array size must be positive integer", nil)
	}
	o, err := in.origin(c, 1)
	if err != nil {
		return nil, err
	}
	return NewArray(n, o), nil
}

func primMDArray(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, in.fault(BadArraySize, "{_PROC_}: Array size must be positive integer", nil)
	}
	dims := make([]int, len(l.Items))
	for i, v := range l.Items {
		n, err := in.toInt(v)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, in.fault(BadArraySize, "{_PROC_}: Array size must be positive integer", nil)
		}
		dims[i] = n
	}
	o, err := in.origin(c, 1)
	if err != nil {
		return nil, err
	}
	return mdarray(dims, o), nil
}

func mdarray(dims []int, origin int) *Array {
	a := NewArray(dims[0], origin)
	if len(dims) > 1 {
		for i := range a.Items {
			a.Items[i] = mdarray(dims[1:], origin)
		}
	}
	return a
}

func primListToArray(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	o, err := in.origin(c, 1)
	if err != nil {
		return nil, err
	}
	items := make([]Value, len(l.Items))
	for i, v := range l.Items {
		items[i] = Copy(v)
	}
	return ArrayOf(o, items...), nil
}

func primArrayToList(in *Interp, c *Call) (Value, error) {
	a, err := in.toArray(c.Args[0])
	if err != nil {
		return nil, err
	}
	items := make([]Value, len(a.Items))
	for i, v := range a.Items {
		items[i] = Copy(v)
	}
	return NewList(items...), nil
}

func primCombine(in *Interp, c *Call) (Value, error) {
	if _, ok := c.Args[1].(*List); ok {
		return primFput(in, c)
	}
	return primWord(in, c)
}

func primReverse(in *Interp, c *Call) (Value, error) {
	switch v := c.Args[0].(type) {
	case *List:
		r := Copy(v).(*List)
		slices.Reverse(r.Items)
		return r, nil
	case Word:
		r := []rune(v.String())
		slices.Reverse(r)
		return NewWord(string(r)), nil
	}
	return nil, in.expected("list", c.Args[0])
}

func primGensym(in *Interp, c *Call) (Value, error) {
	in.gensym++
	return NewWord("G" + strconv.Itoa(in.gensym)), nil
}

// nonEmpty returns the elements of v, failing if there are none.
func (in *Interp) nonEmpty(v Value) ([]Value, error) {
	if _, ok := v.(*Array); ok {
		return nil, in.expected("list", v)
	}
	s := items(v)
	if len(s) == 0 {
		return nil, in.expected("list", v)
	}
	return s, nil
}

func primFirst(in *Interp, c *Call) (Value, error) {
	if a, ok := c.Args[0].(*Array); ok {
		return NewNumber(float64(a.Origin)), nil
	}
	s, err := in.nonEmpty(c.Args[0])
	if err != nil {
		return nil, err
	}
	return s[0], nil
}

func primFirsts(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	r := make([]Value, len(l.Items))
	for i, v := range l.Items {
		s, err := in.nonEmpty(v)
		if err != nil {
			return nil, err
		}
		r[i] = Copy(s[0])
	}
	return NewList(r...), nil
}

func primLast(in *Interp, c *Call) (Value, error) {
	s, err := in.nonEmpty(c.Args[0])
	if err != nil {
		return nil, err
	}
	return s[len(s)-1], nil
}

// slice returns the part of a word or list between i and j.
func slice(v Value, i, j int) Value {
	if l, ok := v.(*List); ok {
		return Copy(NewList(l.Items[i:j]...))
	}
	r := []rune(v.(Word).String())
	return NewWord(string(r[i:j]))
}

func primButFirst(in *Interp, c *Call) (Value, error) {
	s, err := in.nonEmpty(c.Args[0])
	if err != nil {
		return nil, err
	}
	return slice(c.Args[0], 1, len(s)), nil
}

func primButFirsts(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	r := make([]Value, len(l.Items))
	for i, v := range l.Items {
		s, err := in.nonEmpty(v)
		if err != nil {
			return nil, err
		}
		r[i] = slice(v, 1, len(s))
	}
	return NewList(r...), nil
}

func primButLast(in *Interp, c *Call) (Value, error) {
	s, err := in.nonEmpty(c.Args[0])
	if err != nil {
		return nil, err
	}
	return slice(c.Args[0], 0, len(s)-1), nil
}

// item returns the element of a word, list, or array at a one-based or
// origin-based index.
func (in *Interp) item(i int, v Value) (Value, error) {
	if a, ok := v.(*Array); ok {
		x, ok := a.At(i)
		if !ok {
			return nil, in.fault(IndexOutOfBounds, "{_PROC_}: Index out of bounds", map[string]any{"value": i})
		}
		return x, nil
	}
	if _, ok := v.(*List); !ok {
		if _, ok := v.(Word); !ok {
			return nil, in.expected("list", v)
		}
	}
	s := items(v)
	if i < 1 || i > len(s) {
		return nil, in.fault(IndexOutOfBounds, "{_PROC_}: Index out of bounds", map[string]any{"value": i})
	}
	return s[i-1], nil
}

func primItem(in *Interp, c *Call) (Value, error) {
	i, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	x, err := in.item(i, c.Args[1])
	if err != nil {
		return nil, err
	}
	return Copy(x), nil
}

func primMDItem(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	v := c.Args[1]
	for _, x := range l.Items {
		i, err := in.toInt(x)
		if err != nil {
			return nil, err
		}
		if v, err = in.item(i, v); err != nil {
			return nil, err
		}
	}
	return Copy(v), nil
}

func primPick(in *Interp, c *Call) (Value, error) {
	s, err := in.nonEmpty(c.Args[0])
	if err != nil {
		return nil, err
	}
	return Copy(s[in.rng.IntN(len(s))]), nil
}

func primRemove(in *Interp, c *Call) (Value, error) {
	x := c.Args[0]
	switch l := c.Args[1].(type) {
	case *List:
		r := []Value{}
		for _, v := range l.Items {
			if !Equal(v, x) {
				r = append(r, Copy(v))
			}
		}
		return NewList(r...), nil
	case Word:
		s, err := in.toText(x)
		if err != nil {
			return nil, err
		}
		return NewWord(strings.ReplaceAll(l.String(), s, "")), nil
	}
	return nil, in.expected("list", c.Args[1])
}

// primRemdup keeps the last of each run of equal members.
func primRemdup(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	r := []Value{}
	for i, v := range l.Items {
		if !slices.ContainsFunc(l.Items[i+1:], func(w Value) bool { return Equal(v, w) }) {
			r = append(r, Copy(v))
		}
	}
	return NewList(r...), nil
}

func primQuoted(in *Interp, c *Call) (Value, error) {
	if w, ok := c.Args[0].(Word); ok {
		return NewWord(`"` + w.String()), nil
	}
	return c.Args[0], nil
}

// setItem stores v at an index of a, optionally refusing to create a cycle.
func (in *Interp) setItem(a *Array, i int, v Value, check bool) error {
	k, ok := a.index(i)
	if !ok {
		return in.fault(IndexOutOfBounds, "{_PROC_}: Index out of bounds", map[string]any{"value": i})
	}
	if check && a.Contains(v) {
		return in.fault(CircularStructure, "{_PROC_}: Can't create circular array", nil)
	}
	a.Items[k] = Copy(v)
	a.touch()
	return nil
}

func primSetItem(in *Interp, c *Call) (Value, error) {
	i, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	a, err := in.toArray(c.Args[1])
	if err != nil {
		return nil, err
	}
	return nil, in.setItem(a, i, c.Args[2], true)
}

func primMDSetItem(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, in.expected("list", l)
	}
	a, err := in.toArray(c.Args[1])
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(l.Items))
	for i, x := range l.Items {
		if idx[i], err = in.toInt(x); err != nil {
			return nil, err
		}
	}
	for _, i := range idx[:len(idx)-1] {
		v, err := in.item(i, a)
		if err != nil {
			return nil, err
		}
		if a, err = in.toArray(v); err != nil {
			return nil, err
		}
	}
	// A cycle through any nested level closes at the outermost array.
	if c.Args[1].(*Array).Contains(c.Args[2]) {
		return nil, in.fault(CircularStructure, "{_PROC_}: Can't create circular array", nil)
	}
	return nil, in.setItem(a, idx[len(idx)-1], c.Args[2], false)
}

func primDotSetFirst(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, in.expected("list", l)
	}
	l.Items[0] = c.Args[1]
	l.touch()
	return nil, nil
}

func primDotSetBF(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, in.expected("list", l)
	}
	r, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	l.Items = append(l.Items[:1:1], r.Items...)
	l.touch()
	return nil, nil
}

func primDotSetItem(in *Interp, c *Call) (Value, error) {
	i, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	a, err := in.toArray(c.Args[1])
	if err != nil {
		return nil, err
	}
	return nil, in.setItem(a, i, c.Args[2], false)
}

// stackVar returns the list held by the variable named by v.
func (in *Interp) stackVar(v Value) (string, *List, error) {
	name, err := in.toText(v)
	if err != nil {
		return "", nil, err
	}
	x, err := in.thing(name)
	if err != nil {
		return "", nil, err
	}
	l, err := in.toList(x)
	if err != nil {
		return "", nil, err
	}
	return name, l, nil
}

func primPush(in *Interp, c *Call) (Value, error) {
	name, l, err := in.stackVar(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.SetVar(name, NewList(append([]Value{c.Args[1]}, l.Items...)...))
	return nil, nil
}

func primPop(in *Interp, c *Call) (Value, error) {
	name, l, err := in.stackVar(c.Args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, in.expected("list", l)
	}
	in.SetVar(name, NewList(l.Items[1:]...))
	return l.Items[0], nil
}

func primQueue(in *Interp, c *Call) (Value, error) {
	name, l, err := in.stackVar(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.SetVar(name, NewList(append(slices.Clone(l.Items), c.Args[1])...))
	return nil, nil
}

func primDequeue(in *Interp, c *Call) (Value, error) {
	return primPop(in, c)
}

func primWordP(in *Interp, c *Call) (Value, error) {
	_, ok := c.Args[0].(Word)
	return Bool(ok), nil
}

func primListP(in *Interp, c *Call) (Value, error) {
	_, ok := c.Args[0].(*List)
	return Bool(ok), nil
}

func primArrayP(in *Interp, c *Call) (Value, error) {
	_, ok := c.Args[0].(*Array)
	return Bool(ok), nil
}

func primNumberP(in *Interp, c *Call) (Value, error) {
	w, ok := c.Args[0].(Word)
	return Bool(ok && w.IsNumber()), nil
}

func primEmptyP(in *Interp, c *Call) (Value, error) {
	return Bool(IsEmpty(c.Args[0])), nil
}

func primEqualP(in *Interp, c *Call) (Value, error) {
	return Bool(Equal(c.Args[0], c.Args[1])), nil
}

func primNotEqualP(in *Interp, c *Call) (Value, error) {
	return Bool(!Equal(c.Args[0], c.Args[1])), nil
}

func primBeforeP(in *Interp, c *Call) (Value, error) {
	a, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := in.toText(c.Args[1])
	if err != nil {
		return nil, err
	}
	return Bool(a < b), nil
}

// primDotEq compares lists and arrays by identity and words by value.
func primDotEq(in *Interp, c *Call) (Value, error) {
	switch a := c.Args[0].(type) {
	case *List:
		b, ok := c.Args[1].(*List)
		return Bool(ok && a == b), nil
	case *Array:
		b, ok := c.Args[1].(*Array)
		return Bool(ok && a == b), nil
	}
	return Bool(Equal(c.Args[0], c.Args[1])), nil
}

func primMemberP(in *Interp, c *Call) (Value, error) {
	x := c.Args[0]
	switch l := c.Args[1].(type) {
	case *List, *Array:
		return Bool(slices.ContainsFunc(items(l), func(v Value) bool { return Equal(v, x) })), nil
	case Word:
		s, ok := x.(Word)
		if !ok || utf8.RuneCountInString(s.String()) != 1 {
			return Bool(false), nil
		}
		return Bool(strings.Contains(l.String(), s.String())), nil
	}
	return Bool(false), nil
}

func primSubstringP(in *Interp, c *Call) (Value, error) {
	a, ok := c.Args[0].(Word)
	b, ok2 := c.Args[1].(Word)
	if !ok || !ok2 {
		return Bool(false), nil
	}
	return Bool(strings.Contains(strings.ToLower(b.String()), strings.ToLower(a.String()))), nil
}

func primCount(in *Interp, c *Call) (Value, error) {
	return NewNumber(float64(len(items(c.Args[0])))), nil
}

func primASCII(in *Interp, c *Call) (Value, error) {
	s, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return nil, in.expected("string", c.Args[0])
	}
	return NewNumber(float64(r)), nil
}

func primChar(in *Interp, c *Call) (Value, error) {
	n, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 || n > utf8.MaxRune {
		return nil, in.expected("number", c.Args[0])
	}
	return NewWord(string(rune(n))), nil
}

func primMember(in *Interp, c *Call) (Value, error) {
	x := c.Args[0]
	switch l := c.Args[1].(type) {
	case *List:
		i := slices.IndexFunc(l.Items, func(v Value) bool { return Equal(v, x) })
		if i < 0 {
			return NewList(), nil
		}
		return Copy(NewList(l.Items[i:]...)), nil
	case Word:
		s, err := in.toText(x)
		if err != nil {
			return nil, err
		}
		i := strings.Index(l.String(), s)
		if i < 0 || s == "" {
			return NewWord(""), nil
		}
		return NewWord(l.String()[i:]), nil
	}
	return nil, in.expected("list", c.Args[1])
}

func primLowercase(in *Interp, c *Call) (Value, error) {
	s, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	return NewWord(cases.Lower(language.Und).String(s)), nil
}

func primUppercase(in *Interp, c *Call) (Value, error) {
	s, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	return NewWord(cases.Upper(language.Und).String(s)), nil
}

// parseList reads text with the list grammar, as READLIST does.
func (in *Interp) parseList(s string) (*List, error) {
	atoms, err := Parse("[" + s + "]")
	if err != nil {
		return nil, in.relocalize(err)
	}
	if len(atoms) != 1 {
		return nil, in.fault(ParseFailure, "Couldn't parse: '{text}'", map[string]any{"text": s})
	}
	return atoms[0].(*List), nil
}

func primParse(in *Interp, c *Call) (Value, error) {
	s, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	return in.parseList(s)
}

func primRunParse(in *Interp, c *Call) (Value, error) {
	var s string
	switch v := c.Args[0].(type) {
	case Word:
		s = v.String()
	case *List:
		var b strings.Builder
		writeItems(&b, v.Items, true)
		s = b.String()
	default:
		return nil, in.expected("list", v)
	}
	atoms, err := Parse(s)
	if err != nil {
		return nil, in.relocalize(err)
	}
	return NewList(atoms...), nil
}
