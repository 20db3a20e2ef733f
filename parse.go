package logo

/*
This file is for converting lexer tokens into atoms. If you're looking for
expression parsing, check expr.go.
*/

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Parse converts Logo source text into a sequence of atoms: words, lists,
// and arrays. Operators and parentheses outside brackets become their own
// word atoms.
func Parse(text string) ([]Value, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader is like Parse but reads source from r.
func ParseReader(r io.Reader) ([]Value, error) {
	tokens := make(chan token)
	go lex(bufio.NewReader(r), tokens)
	atoms, err := parseTokens(tokens)
	if err != nil {
		// Let the lexer finish so its goroutine exits.
		for range tokens {
		}
	}
	return atoms, err
}

// pending is a list or array whose close bracket has not yet been seen.
type pending struct {
	open  byte
	items []Value
}

func parseTokens(tokens <-chan token) ([]Value, error) {
	top := []Value{}
	var stack []*pending
	add := func(v Value) {
		if len(stack) == 0 {
			top = append(top, v)
			return
		}
		p := stack[len(stack)-1]
		p.items = append(p.items, v)
	}
	for tok := range tokens {
		switch tok.Kind {
		case badToken:
			return nil, newError(ParseFailure, "Couldn't parse: '{text}'", map[string]any{"text": tok.Value, "err": tok.Err})
		case wordToken, opToken:
			add(NewWord(tok.Value))
		case openToken:
			stack = append(stack, &pending{open: tok.Value[0]})
		case closeToken:
			unexpected := newError(ParseFailure, "Unexpected '{text}'", map[string]any{"text": tok.Value[:1]})
			if len(stack) == 0 {
				return nil, unexpected
			}
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch {
			case p.open == '[' && tok.Value[0] == ']':
				add(NewList(p.items...))
			case p.open == '{' && tok.Value[0] == '}':
				origin := 1
				if len(tok.Value) > 2 {
					n, err := strconv.Atoi(tok.Value[2:])
					if err != nil {
						return nil, newError(ParseFailure, "Couldn't parse: '{text}'", map[string]any{"text": tok.Value, "err": err})
					}
					origin = n
				}
				add(ArrayOf(origin, p.items...))
			default:
				return nil, unexpected
			}
		}
	}
	if len(stack) > 0 {
		if stack[len(stack)-1].open == '[' {
			return nil, newError(MissingBracket, "Expected ']'", nil)
		}
		return nil, newError(MissingBrace, "Expected '}'", nil)
	}
	return top, nil
}

// instructions returns the atoms of a list run as code. The list's items
// were read with the list grammar, so its text is parsed again with the
// top-level grammar; the result is cached until the list, or a list or
// array inside it, is modified.
func instructions(l *List) ([]Value, error) {
	if l.parsed != nil && (!l.nested || l.parsedAt == mutations.Load()) {
		return l.parsed, nil
	}
	stamp := mutations.Load()
	var b strings.Builder
	writeItems(&b, l.Items, true)
	atoms, err := Parse(b.String())
	if err != nil {
		return nil, err
	}
	l.parsed, l.parsedAt = atoms, stamp
	l.nested = slices.ContainsFunc(l.Items, func(v Value) bool {
		switch v.(type) {
		case *List, *Array:
			return true
		}
		return false
	})
	return atoms, nil
}
