package logo

import "strings"

func (in *Interp) initTemplates() {
	in.define("apply", 2, 2, 2, primApply)
	in.define("invoke", 1, 2, -1, primInvoke)
	in.define("foreach", 2, 2, -1, primForeach)
	in.define("map", 2, 2, -1, primMap)
	in.define("map.se", 2, 2, -1, primMapSe)
	in.define("filter", 2, 2, 2, primFilter)
	in.define("find", 2, 2, 2, primFind)
	in.define("reduce", 2, 2, 3, primReduce)
	in.define("?", 0, 0, 1, primSlot)
}

// callNamed calls a procedure by name with evaluated inputs.
func (in *Interp) callNamed(name string, args []Value) (Value, error) {
	p, ok := in.Procedure(name)
	if !ok {
		return nil, in.fault(UnknownProcedure, "Don't know how to {name:U}", map[string]any{"name": name})
	}
	switch {
	case p.Special:
		return nil, in.fault(BadInput, "{_PROC_}: Can't apply {name:U}", map[string]any{"name": name})
	case len(args) < p.Min:
		return nil, in.fault(TooFewInputs, "Not enough inputs for {name:U}", map[string]any{"name": name})
	case p.Max >= 0 && len(args) > p.Max:
		return nil, in.fault(TooManyInputs, "Too many inputs for {name:U}", map[string]any{"name": name})
	}
	e := &callExpr{name: name, proc: p, args: make([]expr, len(args))}
	for i, v := range args {
		e.args[i] = literal{v}
	}
	return e.eval(in)
}

// apply runs a template with inputs. A template is a procedure name, a
// list [[names...] instructions...] binding named inputs in a new frame, or
// a list of instructions that read their inputs with ? and ?N.
func (in *Interp) apply(t Value, args []Value) (Value, error) {
	switch t := t.(type) {
	case Word:
		return in.callNamed(t.String(), args)
	case *List:
		if len(t.Items) > 0 {
			if params, ok := t.Items[0].(*List); ok {
				return in.applyNamed(params, NewList(t.Items[1:]...), args)
			}
		}
		in.slots = append(in.slots, args)
		defer func() { in.slots = in.slots[:len(in.slots)-1] }()
		return in.runList(t, true)
	}
	return nil, in.expected("list", t)
}

func (in *Interp) applyNamed(params, body *List, args []Value) (Value, error) {
	if len(args) < len(params.Items) {
		return nil, in.fault(TooFewInputs, "Not enough inputs for {name:U}", map[string]any{"name": "template"})
	}
	in.pushFrame()
	defer in.popFrame()
	for i, p := range params.Items {
		name, err := in.toText(p)
		if err != nil {
			return nil, err
		}
		in.bind(strings.TrimPrefix(name, ":"), Copy(args[i]))
	}
	return in.runList(body, true)
}

// applyValue is apply for templates that must output.
func (in *Interp) applyValue(t Value, args []Value, consumer string) (Value, error) {
	v, err := in.apply(t, args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, in.fault(NoOutput, "{name:U} didn't output to {proc:U}", map[string]any{"name": "template", "proc": consumer})
	}
	return v, nil
}

func primApply(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	return in.apply(c.Args[0], l.Items)
}

func primInvoke(in *Interp, c *Call) (Value, error) {
	return in.apply(c.Args[0], c.Args[1:])
}

// columns splits the data inputs of a template primitive into per-iteration
// input lists. Every input must have as many members as the first.
func (in *Interp) columns(data []Value) ([][]Value, error) {
	n := -1
	var cols [][]Value
	for _, d := range data {
		switch d.(type) {
		case Word, *List, *Array:
		default:
			return nil, in.expected("list", d)
		}
		s := items(d)
		if n < 0 {
			n = len(s)
			cols = make([][]Value, n)
		} else if len(s) != n {
			return nil, in.fault(BadInput, "{_PROC_}: Expected lists of equal length", nil)
		}
		for i, x := range s {
			cols[i] = append(cols[i], x)
		}
	}
	return cols, nil
}

func primForeach(in *Interp, c *Call) (Value, error) {
	t := c.Args[len(c.Args)-1]
	cols, err := in.columns(c.Args[:len(c.Args)-1])
	if err != nil {
		return nil, err
	}
	defer func(r int) { in.repcount = r }(in.repcount)
	for i, args := range cols {
		in.repcount = i + 1
		v, err := in.apply(t, args)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return nil, in.fault(UnexpectedResult, "Don't know what to do with {result}", map[string]any{"result": v})
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// mapped applies a template to each column of data.
func (in *Interp) mapped(c *Call) ([]Value, error) {
	cols, err := in.columns(c.Args[1:])
	if err != nil {
		return nil, err
	}
	defer func(r int) { in.repcount = r }(in.repcount)
	r := make([]Value, len(cols))
	for i, args := range cols {
		in.repcount = i + 1
		if r[i], err = in.applyValue(c.Args[0], args, c.Name); err != nil {
			return nil, err
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// primMap outputs a word if its first data input is a word and a list
// otherwise.
func primMap(in *Interp, c *Call) (Value, error) {
	r, err := in.mapped(c)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Args[1].(Word); ok {
		return primWord(in, &Call{Name: c.Name, Args: r})
	}
	return NewList(r...), nil
}

func primMapSe(in *Interp, c *Call) (Value, error) {
	r, err := in.mapped(c)
	if err != nil {
		return nil, err
	}
	return primSentence(in, &Call{Name: c.Name, Args: r})
}

// selected applies a predicate template to each member of data, stopping
// early when stop returns true.
func (in *Interp) selected(c *Call, stop bool) ([]Value, error) {
	var r []Value
	for _, x := range items(c.Args[1]) {
		v, err := in.applyValue(c.Args[0], []Value{x}, c.Name)
		if err != nil {
			return nil, err
		}
		b, err := in.toBool(v)
		if err != nil {
			return nil, err
		}
		if b {
			r = append(r, x)
			if stop {
				break
			}
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func primFilter(in *Interp, c *Call) (Value, error) {
	if _, ok := c.Args[1].(*Array); ok {
		return nil, in.expected("list", c.Args[1])
	}
	r, err := in.selected(c, false)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Args[1].(Word); ok {
		return primWord(in, &Call{Name: c.Name, Args: r})
	}
	for i, v := range r {
		r[i] = Copy(v)
	}
	return NewList(r...), nil
}

// primFind outputs the first member that satisfies the template, or the
// empty list if there is none.
func primFind(in *Interp, c *Call) (Value, error) {
	r, err := in.selected(c, true)
	if err != nil {
		return nil, err
	}
	if len(r) == 0 {
		return NewList(), nil
	}
	return Copy(r[0]), nil
}

// primReduce combines the members of data from left to right. With a third
// input, that value starts the combination.
func primReduce(in *Interp, c *Call) (Value, error) {
	s := items(c.Args[1])
	var acc Value
	if len(c.Args) > 2 {
		acc = c.Args[2]
	} else {
		if len(s) == 0 {
			return nil, in.expected("list", c.Args[1])
		}
		acc, s = s[0], s[1:]
	}
	for _, x := range s {
		var err error
		if acc, err = in.applyValue(c.Args[0], []Value{acc, x}, c.Name); err != nil {
			return nil, err
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// primSlot outputs an input of the innermost template.
func primSlot(in *Interp, c *Call) (Value, error) {
	i := 1
	if v := c.Arg(0); v != nil {
		var err error
		if i, err = in.toInt(v); err != nil {
			return nil, err
		}
	}
	if len(in.slots) == 0 {
		return nil, in.fault(BadContext, "Can only use {name:U} inside a template", map[string]any{"name": "?"})
	}
	args := in.slots[len(in.slots)-1]
	if i < 1 || i > len(args) {
		return nil, in.fault(IndexOutOfBounds, "{_PROC_}: Index out of bounds", map[string]any{"value": i})
	}
	return args[i-1], nil
}
