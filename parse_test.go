package logo

import (
	"errors"
	"testing"
)

// TestParseAtoms tests that source text is parsed into the correct atoms.
func TestParseAtoms(t *testing.T) {
	cases := map[string]struct {
		text string
		want string
	}{
		"Empty":        {"", "[]"},
		"Command":      {"fd 100", "[fd 100]"},
		"List":         {"print [a b c]", "[print [a b c]]"},
		"Nested":       {"[a [b [c]] d]", "[[a [b [c]] d]]"},
		"EmptyList":    {"[]", "[[]]"},
		"Array":        {"{1 2 3}", "[{1 2 3}]"},
		"ArrayOrigin":  {"{1 2}@0", "[{1 2}@0]"},
		"ArrayInList":  {"[{a} b]", "[[{a} b]]"},
		"Operators":    {"1+2*3", "[1 + 2 * 3]"},
		"ListOps":      {"[1+2]", "[[1+2]]"},
		"Parens":       {"(sum 1 2 3)", "[( sum 1 2 3 )]"},
		"Quoted":       {`print "hello`, `[print "hello]`},
		"MultiLine":    {"fd 10\nrt 90", "[fd 10 rt 90]"},
		"Continuation": {"fd ~\n10", "[fd 10]"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			atoms, err := Parse(c.text)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.text, err)
			}
			if got := Show(NewList(atoms...)); got != c.want {
				t.Errorf("%q parsed to %s, want %s", c.text, got, c.want)
			}
		})
	}
}

// TestParseUnaryMinus tests that unary minus becomes its own atom.
func TestParseUnaryMinus(t *testing.T) {
	atoms, err := Parse("sum 10 -4")
	if err != nil {
		t.Fatal(err)
	}
	if len(atoms) != 4 || !isWord(atoms[2], unaryMinus) {
		t.Errorf("wrong atoms: %v", atoms)
	}
}

// TestParseErrors tests that certain illegal phrasings result in errors.
func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		text string
		code ErrorCode
	}{
		"UnclosedBracket":   {"print [a b", MissingBracket},
		"UnclosedNested":    {"print [a [b]", MissingBracket},
		"UnclosedBrace":     {"print {a b", MissingBrace},
		"UnopenedBracket":   {"print a]", ParseFailure},
		"UnopenedBrace":     {"print a}", ParseFailure},
		"MismatchedBracket": {"print [a}", ParseFailure},
		"MismatchedBrace":   {"print {a]", ParseFailure},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(c.text)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("%q failed to cause an error: %v", c.text, err)
			}
			if e.Code != c.code {
				t.Errorf("%q caused %v, want %v", c.text, e.Code, c.code)
			}
		})
	}
}

// TestInstructionsCache tests that running a list parses it once until the
// list changes.
func TestInstructionsCache(t *testing.T) {
	l := NewList(NewWord("fd"), NewWord("10"))
	a, err := instructions(l)
	if err != nil {
		t.Fatal(err)
	}
	b, err := instructions(l)
	if err != nil {
		t.Fatal(err)
	}
	if &a[0] != &b[0] {
		t.Error("second parse was not cached")
	}
	l.Items = append(l.Items, NewWord("rt"))
	l.touch()
	c, err := instructions(l)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 3 {
		t.Errorf("touched list reparsed to %v", c)
	}
}

// TestInstructionsReparse tests that operators inside lists split again when
// the list is run.
func TestInstructionsReparse(t *testing.T) {
	atoms, err := Parse("[print 1+2]")
	if err != nil {
		t.Fatal(err)
	}
	ins, err := instructions(atoms[0].(*List))
	if err != nil {
		t.Fatal(err)
	}
	if got := Show(NewList(ins...)); got != "[print 1 + 2]" {
		t.Errorf("reparsed to %s", got)
	}
}
