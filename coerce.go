package logo

import (
	"math"
	"strings"
)

// toNumber returns the numeric projection of v.
func (in *Interp) toNumber(v Value) (float64, error) {
	if w, ok := v.(Word); ok {
		if n, ok := w.Number(); ok {
			return n, nil
		}
	}
	return 0, in.expected("number", v)
}

// toInt returns v truncated to an integer.
func (in *Interp) toInt(v Value) (int, error) {
	n, err := in.toNumber(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, in.expected("number", v)
	}
	return int(n), nil
}

// toWord returns v if it is a word.
func (in *Interp) toWord(v Value) (Word, error) {
	w, ok := v.(Word)
	if !ok {
		return Word{}, in.expected("string", v)
	}
	return w, nil
}

// toText returns the text of a word.
func (in *Interp) toText(v Value) (string, error) {
	w, err := in.toWord(v)
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// toList returns v if it is a list.
func (in *Interp) toList(v Value) (*List, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, in.expected("list", v)
	}
	return l, nil
}

// toArray returns v if it is an array.
func (in *Interp) toArray(v Value) (*Array, error) {
	a, ok := v.(*Array)
	if !ok {
		return nil, in.expected("array", v)
	}
	return a, nil
}

// toBool interprets the words true and false, in any case.
func (in *Interp) toBool(v Value) (bool, error) {
	if w, ok := v.(Word); ok && !w.num {
		switch {
		case strings.EqualFold(w.s, "true"):
			return true, nil
		case strings.EqualFold(w.s, "false"):
			return false, nil
		}
	}
	return false, in.fault(BadInput, "{_PROC_}: Expected true or false", map[string]any{"value": v})
}

// items returns the elements of a word (as one-character words), a list, or
// an array.
func items(v Value) []Value {
	switch v := v.(type) {
	case Word:
		s := []rune(v.String())
		r := make([]Value, len(s))
		for i, c := range s {
			r[i] = NewWord(string(c))
		}
		return r
	case *List:
		return v.Items
	case *Array:
		return v.Items
	}
	return nil
}

// thunkBool evaluates a thunk as a condition. A thunk that outputs a list
// runs the list and uses its result.
func (in *Interp) thunkBool(t Thunk) (bool, error) {
	v, err := t()
	if err != nil {
		return false, err
	}
	if l, ok := v.(*List); ok {
		v, err = in.runList(l, true)
		if err != nil {
			return false, err
		}
	}
	if v == nil {
		return false, in.fault(NoOutput, "{_PROC_}: Expected true or false", nil)
	}
	return in.toBool(v)
}
