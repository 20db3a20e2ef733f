package logo

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// A token is a single lexical element.
type token struct {
	Kind  tokenKind
	Value string
	Err   error

	Line, Col int
}

type tokenKind int

const (
	badToken tokenKind = iota

	wordToken  // word, number, quoted word, or variable reference
	opToken    // infix operator, parenthesis, or unary minus
	openToken  // open bracket: [, {
	closeToken // close bracket: ], }, or }@origin
)

// unaryMinus is the atom the reader substitutes for a minus sign that negates
// the expression after it rather than subtracting.
const unaryMinus = "<UNARYMINUS>"

const (
	// operators are the characters split into their own atoms outside lists.
	operators = "+-*/%^=<>()"
	// brackets delimit words everywhere.
	brackets = "[]{}"
)

// isInfix reports whether an atom is a binary operator.
func isInfix(s string) bool {
	switch s {
	case "+", "-", "*", "/", "%", "^", "=", "<", ">", "<=", ">=", "<>":
		return true
	}
	return false
}

// isOperator reports whether an atom is any operator atom, including
// parentheses and unary minus.
func isOperator(s string) bool {
	return isInfix(s) || s == "(" || s == ")" || s == unaryMinus
}

// lexer holds the state of a single lexing pass.
type lexer struct {
	src    *bufio.Reader
	tokens chan<- token

	line, col int
	// depth holds the open brackets awaiting their closers. Inside any of
	// them, only whitespace and brackets delimit words.
	depth []rune
	// space is whether whitespace preceded the token being lexed.
	space bool
	// prev is the last token sent outside of any bracket. Its zero value
	// means nothing has been sent yet.
	prev token
}

// lexFn is a lexer state function. Each lexFn lexes a token, sends it on the
// lexer's channel, and returns the next lexFn to use.
type lexFn func(l *lexer) lexFn

// lex converts a source into a stream of tokens.
func lex(src *bufio.Reader, tokens chan<- token) {
	l := &lexer{src: src, tokens: tokens, line: 1, col: 1}
	for state := eatSpace; state != nil; {
		state = state(l)
	}
	close(tokens)
}

// peek returns the next rune without consuming it.
func (l *lexer) peek() (rune, error) {
	r, _, err := l.src.ReadRune()
	if err != nil {
		return r, err
	}
	l.src.UnreadRune()
	return r, nil
}

// read consumes the next rune, tracking the position.
func (l *lexer) read() (rune, error) {
	r, _, err := l.src.ReadRune()
	if err != nil {
		return r, err
	}
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, nil
}

// continuation consumes a ~ that ends a line, along with the line break, and
// reports whether it did so.
func (l *lexer) continuation() bool {
	p, _ := l.src.Peek(3)
	switch {
	case len(p) >= 2 && p[0] == '~' && p[1] == '\n':
		l.src.Discard(2)
	case len(p) >= 3 && p[0] == '~' && p[1] == '\r' && p[2] == '\n':
		l.src.Discard(3)
	default:
		return false
	}
	l.line++
	l.col = 1
	return true
}

// send sends a token and updates the lexer's notion of the previous atom.
func (l *lexer) send(t token) {
	l.tokens <- t
	if len(l.depth) == 0 {
		l.prev = t
	}
	l.space = false
}

// fail sends a bad token for any error other than EOF and ends lexing.
func (l *lexer) fail(err error, text string) lexFn {
	if err != nil && err != io.EOF {
		l.tokens <- token{Kind: badToken, Value: text, Err: err, Line: l.line, Col: l.col}
	}
	return nil
}

// eatSpace consumes space and comments and decides the next lexFn to use.
func eatSpace(l *lexer) lexFn {
	for {
		r, err := l.peek()
		if err != nil {
			return l.fail(err, "")
		}
		switch {
		case unicode.IsSpace(r):
			l.read()
			l.space = true
		case r == ';':
			return lexComment
		case r == '~' && l.continuation():
			// Joined lines; nothing to emit.
		case strings.ContainsRune("[{", r):
			return lexOpen
		case strings.ContainsRune("]}", r):
			return lexClose
		case len(l.depth) > 0:
			return lexListWord
		case r == '"' || r == '\'':
			return lexQuoted
		case '0' <= r && r <= '9':
			return lexNumber
		case r == '.':
			// .5 is a number, but .setfirst is a word.
			p, _ := l.src.Peek(2)
			if len(p) > 1 && '0' <= p[1] && p[1] <= '9' {
				return lexNumber
			}
			return lexWord
		case strings.ContainsRune(operators, r):
			return lexOp
		default:
			return lexWord
		}
	}
}

// lexComment consumes a comment up to but not including the end of the line.
func lexComment(l *lexer) lexFn {
	for {
		r, err := l.peek()
		if err != nil {
			return l.fail(err, "")
		}
		if r == '\n' {
			return eatSpace
		}
		l.read()
	}
}

// acceptWord appends runes to b until stop reports true for one. A backslash
// escapes the rune after it, and a ~ at the end of a line joins the next line
// onto the word.
func (l *lexer) acceptWord(b []rune, stop func(rune) bool) ([]rune, error) {
	for {
		r, err := l.peek()
		if err != nil {
			return b, err
		}
		switch {
		case r == '\\':
			l.read()
			e, err := l.read()
			if err != nil {
				// A trailing backslash stands for itself.
				return append(b, '\\'), err
			}
			b = append(b, e)
		case r == '~' && l.continuation():
			// continue the word on the next line
		case unicode.IsSpace(r) || r == ';' || stop(r):
			return b, nil
		default:
			l.read()
			b = append(b, r)
		}
	}
}

// lexWordWith lexes a word ending at whitespace or any rune satisfying stop.
func lexWordWith(l *lexer, prefix []rune, line, col int, stop func(rune) bool) lexFn {
	b, err := l.acceptWord(prefix, stop)
	if err != nil && err != io.EOF {
		return l.fail(err, string(b))
	}
	l.send(token{Kind: wordToken, Value: string(b), Line: line, Col: col})
	if err != nil {
		return nil
	}
	return eatSpace
}

// lexWord lexes a word outside of brackets. Operators end it.
func lexWord(l *lexer) lexFn {
	return lexWordWith(l, nil, l.line, l.col, func(r rune) bool {
		return strings.ContainsRune(operators, r) || strings.ContainsRune(brackets, r)
	})
}

// lexQuoted lexes a word beginning with a quote mark. Operators are part of
// quoted words; parentheses are not.
func lexQuoted(l *lexer) lexFn {
	line, col := l.line, l.col
	q, _ := l.read()
	return lexWordWith(l, []rune{q}, line, col, func(r rune) bool {
		return r == '(' || r == ')' || strings.ContainsRune(brackets, r)
	})
}

// lexListWord lexes a word inside brackets, where only whitespace and
// brackets are delimiters.
func lexListWord(l *lexer) lexFn {
	return lexWordWith(l, nil, l.line, l.col, func(r rune) bool {
		return strings.ContainsRune(brackets, r)
	})
}

// lexNumber lexes a numeric literal: digits with an optional fraction and an
// optional exponent.
func lexNumber(l *lexer) lexFn {
	line, col := l.line, l.col
	var b []rune
	digits := func() {
		for {
			r, err := l.peek()
			if err != nil || r < '0' || r > '9' {
				return
			}
			l.read()
			b = append(b, r)
		}
	}
	digits()
	if r, err := l.peek(); err == nil && r == '.' {
		l.read()
		b = append(b, r)
		digits()
	}
	// An exponent needs at least one digit, possibly after a sign.
	p, _ := l.src.Peek(3)
	if len(p) >= 2 && (p[0] == 'e' || p[0] == 'E') {
		n := 1
		if p[1] == '+' || p[1] == '-' {
			n = 2
		}
		if len(p) > n && '0' <= p[n] && p[n] <= '9' {
			for range n {
				r, _ := l.read()
				b = append(b, r)
			}
			digits()
		}
	}
	l.send(token{Kind: wordToken, Value: string(b), Line: line, Col: col})
	return eatSpace
}

// lexOp lexes an operator. A minus sign becomes unaryMinus when it begins
// the input, follows an infix operator or an open parenthesis, or has space
// before it and none after it.
func lexOp(l *lexer) lexFn {
	line, col := l.line, l.col
	r, _ := l.read()
	op := string(r)
	switch r {
	case '<':
		if n, err := l.peek(); err == nil && (n == '=' || n == '>') {
			l.read()
			op += string(n)
		}
	case '>':
		if n, err := l.peek(); err == nil && n == '=' {
			l.read()
			op += string(n)
		}
	case '-':
		n, err := l.peek()
		spaceAfter := err != nil || unicode.IsSpace(n)
		prev := l.prev
		switch {
		case prev.Kind == badToken,
			prev.Kind == opToken && (isInfix(prev.Value) || prev.Value == "("),
			l.space && !spaceAfter:
			op = unaryMinus
		}
	}
	l.send(token{Kind: opToken, Value: op, Line: line, Col: col})
	return eatSpace
}

// lexOpen lexes an open bracket or brace and enters list mode.
func lexOpen(l *lexer) lexFn {
	line, col := l.line, l.col
	r, _ := l.read()
	l.send(token{Kind: openToken, Value: string(r), Line: line, Col: col})
	l.depth = append(l.depth, r)
	return eatSpace
}

// lexClose lexes a close bracket or brace. A brace may be followed directly
// by @ and an integer giving the origin of the array.
func lexClose(l *lexer) lexFn {
	line, col := l.line, l.col
	r, _ := l.read()
	if len(l.depth) > 0 {
		l.depth = l.depth[:len(l.depth)-1]
	}
	v := string(r)
	if r == '}' {
		v += l.origin()
	}
	l.send(token{Kind: closeToken, Value: v, Line: line, Col: col})
	return eatSpace
}

// origin consumes an @origin suffix and returns it, or returns the empty
// string if there is none.
func (l *lexer) origin() string {
	p, _ := l.src.Peek(24)
	if len(p) < 2 || p[0] != '@' {
		return ""
	}
	n := 1
	if p[n] == '-' {
		n++
	}
	start := n
	for n < len(p) && '0' <= p[n] && p[n] <= '9' {
		n++
	}
	if n == start {
		return ""
	}
	s := string(p[:n])
	l.src.Discard(n)
	l.col += n
	return s
}
