package logo

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Procedure is a named callable: either a primitive with a native
// implementation or a user procedure with a Definition.
type Procedure struct {
	// Name is the canonical name of the procedure.
	Name string
	// Min, Default, and Max are the arities. Natural calls consume Default
	// inputs; parenthesized calls may pass between Min and Max. Max is -1
	// if unbounded.
	Min, Default, Max int

	// Special procedures receive the remaining atoms of the statement
	// when the call is read, rather than evaluated inputs.
	Special bool
	// NoEval procedures receive their inputs as thunks.
	NoEval bool
	// Trailing procedures take one more input in a natural call when the
	// instruction goes on with a value, such as THROW's value.
	Trailing bool

	Fn        func(in *Interp, c *Call) (Value, error)
	SpecialFn func(in *Interp, c *cursor) error

	// Def is the definition of a user procedure, or nil for primitives.
	Def *Definition
	// Buried procedures are hidden from workspace listings.
	Buried bool
}

// Primitive reports whether p is built in.
func (p *Procedure) Primitive() bool {
	return p.Def == nil
}

// Definition is the parameter list and body of a user procedure.
type Definition struct {
	Inputs   []string
	Optional []Optional
	// Rest names the input that collects surplus inputs, if any.
	Rest string
	// Arity is the explicit default arity, or -1.
	Arity int
	// Body is the atoms of the procedure's instructions.
	Body []Value
}

// Optional is an optional input and the instructions that compute its
// default value when the caller omits it.
type Optional struct {
	Name    string
	Default *List
}

// Call holds the inputs to a primitive.
type Call struct {
	// Name is the name the procedure was called by.
	Name string
	// Args are the evaluated inputs. Unused for NoEval procedures.
	Args []Value
	// Thunks evaluate the inputs of NoEval procedures on demand.
	Thunks []Thunk
}

// Thunk evaluates a deferred input. A nil Value means it produced no output.
type Thunk func() (Value, error)

// Arg returns the input at i, or nil if there are fewer inputs.
func (c *Call) Arg(i int) Value {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return nil
}

// define registers a primitive under each of the space-separated names.
// The first name is canonical.
func (in *Interp) define(names string, min, def, max int, fn func(*Interp, *Call) (Value, error)) *Procedure {
	all := strings.Fields(names)
	p := &Procedure{Name: all[0], Min: min, Default: def, Max: max, Fn: fn}
	for _, n := range all {
		in.procs[fold(n)] = p
	}
	return p
}

// defineNoEval registers a primitive whose inputs are thunks.
func (in *Interp) defineNoEval(names string, min, def, max int, fn func(*Interp, *Call) (Value, error)) {
	in.define(names, min, def, max, fn).NoEval = true
}

// defineSpecial registers a primitive that reads its own inputs.
func (in *Interp) defineSpecial(names string, fn func(*Interp, *cursor) error) {
	p := in.define(names, 0, 0, 0, nil)
	p.Special = true
	p.SpecialFn = fn
}

// Procedure returns the procedure with the given name.
func (in *Interp) Procedure(name string) (*Procedure, bool) {
	p, ok := in.procs[fold(name)]
	return p, ok
}

// ProcedureNames returns every name that calls a procedure, aliases and
// buried procedures included, in sorted order.
func (in *Interp) ProcedureNames() []string {
	r := make([]string, 0, len(in.procs))
	for k := range in.procs {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

var (
	missingSpace = regexp.MustCompile(`^(\w+?)(\d+)$`)
	templateSlot = regexp.MustCompile(`^\?(\d+)$`)
)

// dispatch reads a call of the named procedure from c. Natural calls read
// exactly the default number of inputs; other calls read inputs up to the
// closing parenthesis.
func (in *Interp) dispatch(name string, c *cursor, natural bool) (expr, error) {
	p, ok := in.Procedure(name)
	if !ok {
		if m := templateSlot.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			p, _ = in.Procedure("?")
			return &callExpr{name: "?", proc: p, args: []expr{literal{NewNumber(float64(n))}}}, nil
		}
		if m := missingSpace.FindStringSubmatch(name); m != nil {
			if _, ok := in.Procedure(m[1]); ok {
				return nil, in.fault(MissingSpace, "Need a space between {name:U} and {value}", map[string]any{"name": m[1], "value": m[2]})
			}
		}
		return nil, in.fault(UnknownProcedure, "Don't know how to {name:U}", map[string]any{"name": name})
	}

	if p.Special {
		in.push(name, false)
		defer in.pop()
		if err := p.SpecialFn(in, c); err != nil {
			return nil, err
		}
		return nothing{}, nil
	}

	var args []expr
	if natural {
		args = make([]expr, 0, p.Default)
		for range p.Default {
			e, err := in.expression(c)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		// IF takes an optional ELSE clause without parentheses.
		if fold(p.Name) == "if" && in.keyword(c.peek(), "ELSE") {
			c.next()
			e, err := in.expression(c)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		if p.Trailing && len(args) < p.Max && startsValue(c.peek()) {
			e, err := in.expression(c)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
	} else {
		for {
			if c.done() {
				return nil, in.fault(MissingParen, "Expected ')'", nil)
			}
			if isWord(c.peek(), ")") {
				c.next()
				break
			}
			e, err := in.expression(c)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		switch {
		case len(args) < p.Min:
			return nil, in.fault(TooFewInputs, "Not enough inputs for {name:U}", map[string]any{"name": name})
		case p.Max >= 0 && len(args) > p.Max:
			return nil, in.fault(TooManyInputs, "Too many inputs for {name:U}", map[string]any{"name": name})
		}
	}
	return &callExpr{name: name, proc: p, args: args}, nil
}

// callExpr is a procedure call with its input expressions.
type callExpr struct {
	name string
	proc *Procedure
	args []expr
}

func (e *callExpr) eval(in *Interp) (Value, error) {
	p := e.proc
	if p.NoEval {
		thunks := make([]Thunk, len(e.args))
		for i, a := range e.args {
			thunks[i] = func() (Value, error) { return a.eval(in) }
		}
		in.push(e.name, false)
		defer in.pop()
		return p.Fn(in, &Call{Name: e.name, Thunks: thunks})
	}
	args := make([]Value, len(e.args))
	for i, a := range e.args {
		v, err := in.value(a, e.name)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	in.push(e.name, p.Def != nil)
	defer in.pop()
	if p.Def != nil {
		return in.invoke(p, args)
	}
	return p.Fn(in, &Call{Name: e.name, Args: args})
}

// invoke runs a user procedure with evaluated inputs.
func (in *Interp) invoke(p *Procedure, args []Value) (Value, error) {
	if len(in.frames) > in.maxDepth {
		return nil, in.fault(StackOverflow, "Too much recursion", nil)
	}
	d := p.Def
	in.pushFrame()
	defer in.popFrame()
	i := 0
	for _, name := range d.Inputs {
		in.bind(name, Copy(args[i]))
		i++
	}
	for _, o := range d.Optional {
		if i < len(args) {
			in.bind(o.Name, Copy(args[i]))
			i++
			continue
		}
		v, err := in.runList(o.Default, true)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, in.fault(NoOutput, "{name:U} didn't output to {proc:U}", map[string]any{"name": o.Name, "proc": p.Name})
		}
		in.bind(o.Name, Copy(v))
	}
	if d.Rest != "" {
		rest := make([]Value, 0, len(args)-i)
		for _, v := range args[i:] {
			rest = append(rest, Copy(v))
		}
		in.bind(d.Rest, NewList(rest...))
	}

	_, err := in.execute(d.Body, false)
	in.maybeYield()
	if err != nil {
		if s, ok := signal(err); ok && s.Control == OutputStop {
			return s.Result, nil
		}
		return nil, err
	}
	return nil, nil
}
