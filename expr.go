package logo

import "math"

/*
This file is for reading expressions from atoms. Precedence, loosest first:

	relational      =  <  >  <=  >=  <>
	additive        +  -
	multiplicative  *  /  %
	power           ^       (right associative)
	unary           unary minus
	final           literals, :variables, parentheses, procedure calls

Statements are read one at a time and evaluated before the next is read, so a
procedure defined by one statement can be called by the next.
*/

// cursor walks a sequence of atoms.
type cursor struct {
	atoms []Value
	pos   int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.atoms)
}

// peek returns the next atom without consuming it, or nil at the end.
func (c *cursor) peek() Value {
	return c.peekAt(0)
}

func (c *cursor) peekAt(n int) Value {
	if c.pos+n >= len(c.atoms) {
		return nil
	}
	return c.atoms[c.pos+n]
}

// next consumes and returns the next atom, or nil at the end.
func (c *cursor) next() Value {
	v := c.peek()
	if v != nil {
		c.pos++
	}
	return v
}

// isWord reports whether v is a word with exactly the text s.
func isWord(v Value, s string) bool {
	w, ok := v.(Word)
	return ok && !w.num && w.s == s
}

// peekOp returns the next atom if it is one of the given operators.
func (c *cursor) peekOp(ops ...string) (string, bool) {
	w, ok := c.peek().(Word)
	if !ok || w.num {
		return "", false
	}
	for _, op := range ops {
		if w.s == op {
			return op, true
		}
	}
	return "", false
}

// expr is a parsed expression.
type expr interface {
	// eval evaluates the expression. A nil Value means no output.
	eval(in *Interp) (Value, error)
}

type literal struct {
	v Value
}

func (e literal) eval(*Interp) (Value, error) {
	return e.v, nil
}

// nothing is the expression left behind by special forms.
type nothing struct{}

func (nothing) eval(*Interp) (Value, error) {
	return nil, nil
}

type varRef struct {
	name string
}

func (e varRef) eval(in *Interp) (Value, error) {
	return in.thing(e.name)
}

type binary struct {
	op   string
	l, r expr
}

type negate struct {
	x expr
}

// describe names an expression for no-output diagnostics.
func describe(e expr) string {
	if c, ok := e.(*callExpr); ok {
		return c.name
	}
	return "expression"
}

// expression reads one expression.
func (in *Interp) expression(c *cursor) (expr, error) {
	return in.relational(c)
}

// binaryLevel reads a left-associative chain of operators at one level.
func (in *Interp) binaryLevel(c *cursor, next func(*cursor) (expr, error), ops ...string) (expr, error) {
	l, err := next(c)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := c.peekOp(ops...)
		if !ok {
			return l, nil
		}
		c.next()
		r, err := next(c)
		if err != nil {
			return nil, err
		}
		l = &binary{op: op, l: l, r: r}
	}
}

func (in *Interp) relational(c *cursor) (expr, error) {
	return in.binaryLevel(c, in.additive, "=", "<", ">", "<=", ">=", "<>")
}

func (in *Interp) additive(c *cursor) (expr, error) {
	return in.binaryLevel(c, in.multiplicative, "+", "-")
}

func (in *Interp) multiplicative(c *cursor) (expr, error) {
	return in.binaryLevel(c, in.power, "*", "/", "%")
}

func (in *Interp) power(c *cursor) (expr, error) {
	l, err := in.unary(c)
	if err != nil {
		return nil, err
	}
	if _, ok := c.peekOp("^"); !ok {
		return l, nil
	}
	c.next()
	r, err := in.power(c)
	if err != nil {
		return nil, err
	}
	return &binary{op: "^", l: l, r: r}, nil
}

func (in *Interp) unary(c *cursor) (expr, error) {
	if _, ok := c.peekOp(unaryMinus); ok {
		c.next()
		x, err := in.unary(c)
		if err != nil {
			return nil, err
		}
		return &negate{x}, nil
	}
	return in.final(c)
}

func (in *Interp) final(c *cursor) (expr, error) {
	atom := c.next()
	var w Word
	switch a := atom.(type) {
	case nil:
		return nil, in.fault(UnexpectedEnd, "Unexpected end of instructions", nil)
	case *List, *Array:
		return literal{a}, nil
	case Word:
		w = a
	}
	if w.num {
		return literal{w}, nil
	}
	s := w.s
	if f, ok := ParseNumber(s); ok {
		return literal{NewNumber(f)}, nil
	}
	switch {
	case s == "":
		return literal{w}, nil
	case s[0] == '"' || s[0] == '\'':
		return literal{NewWord(s[1:])}, nil
	case s[0] == ':':
		return varRef{s[1:]}, nil
	case s == "(":
		return in.parenthesized(c)
	case s == ")":
		return nil, in.fault(UnexpectedParen, "Unexpected ')'", nil)
	case isInfix(s) || s == unaryMinus:
		if s == unaryMinus {
			s = "-"
		}
		return nil, in.fault(UnexpectedOperator, "Unexpected '{op}'", map[string]any{"op": s})
	}
	return in.dispatch(s, c, true)
}

// startsValue reports whether an expression beginning with v is a value
// rather than a procedure call.
func startsValue(v Value) bool {
	switch a := v.(type) {
	case *List, *Array:
		return true
	case Word:
		if a.num {
			return true
		}
		s := a.s
		if _, ok := ParseNumber(s); ok {
			return true
		}
		return s != "" && (s[0] == '"' || s[0] == '\'' || s[0] == ':' || s == "(" || s == unaryMinus)
	}
	return false
}

// parenthesized reads the rest of a parenthesized form: a call with explicit
// inputs if the next atom names a procedure and no infix operator follows
// it, otherwise an expression and its closing parenthesis.
func (in *Interp) parenthesized(c *cursor) (expr, error) {
	if w, ok := c.peek().(Word); ok && !w.num {
		if _, known := in.Procedure(w.s); known && !isOperator(w.s) {
			if op, ok := c.peekAt(1).(Word); !ok || op.num || !isInfix(op.s) {
				c.next()
				return in.dispatch(w.s, c, false)
			}
		}
	}
	e, err := in.expression(c)
	if err != nil {
		return nil, err
	}
	if !isWord(c.peek(), ")") {
		return nil, in.fault(MissingParen, "Expected ')'", nil)
	}
	c.next()
	return e, nil
}

func (e *negate) eval(in *Interp) (Value, error) {
	v, err := in.value(e.x, "-")
	if err != nil {
		return nil, err
	}
	n, err := in.toNumber(v)
	if err != nil {
		return nil, err
	}
	return NewNumber(-n), nil
}

func (e *binary) eval(in *Interp) (Value, error) {
	l, err := in.value(e.l, e.op)
	if err != nil {
		return nil, err
	}
	r, err := in.value(e.r, e.op)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "=":
		return Bool(Equal(l, r)), nil
	case "<>":
		return Bool(!Equal(l, r)), nil
	}
	a, err := in.toNumber(l)
	if err != nil {
		return nil, err
	}
	b, err := in.toNumber(r)
	if err != nil {
		return nil, err
	}
	return in.arith(e.op, a, b)
}

// arith applies a numeric operator.
func (in *Interp) arith(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return NewNumber(a + b), nil
	case "-":
		return NewNumber(a - b), nil
	case "*":
		return NewNumber(a * b), nil
	case "/":
		if b == 0 {
			return nil, in.fault(DivideByZero, "Division by zero", nil)
		}
		return NewNumber(a / b), nil
	case "%":
		if b == 0 {
			return nil, in.fault(DivideByZero, "Division by zero", nil)
		}
		return NewNumber(math.Mod(a, b)), nil
	case "^":
		return NewNumber(math.Pow(a, b)), nil
	case "<":
		return Bool(a < b), nil
	case ">":
		return Bool(a > b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">=":
		return Bool(a >= b), nil
	}
	panic("logo: invalid operator " + op)
}

// value evaluates an expression that must output a value to consumer.
func (in *Interp) value(e expr, consumer string) (Value, error) {
	v, err := e.eval(in)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, in.fault(NoOutput, "{name:U} didn't output to {proc:U}", map[string]any{"name": describe(e), "proc": consumer})
	}
	return v, nil
}
