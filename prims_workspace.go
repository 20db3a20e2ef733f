package logo

import "slices"

func (in *Interp) initWorkspace() {
	in.defineSpecial("to", readTo)
	in.define("define", 2, 2, 2, primDefine)
	in.define("text", 1, 1, 1, primText)
	in.define("copydef", 2, 2, 2, primCopyDef)

	in.define("make", 2, 2, 2, primMake)
	in.define("name", 2, 2, 2, primName)
	in.define("local", 1, 1, -1, primLocal)
	in.define("localmake", 2, 2, 2, primLocalMake)
	in.define("thing", 1, 1, 1, primThing)
	in.define("global", 1, 1, -1, primGlobal)

	in.define("pprop", 3, 3, 3, primPprop)
	in.define("gprop", 2, 2, 2, primGprop)
	in.define("remprop", 2, 2, 2, primRemprop)
	in.define("plist", 1, 1, 1, primPlist)

	in.define("procedurep procedure?", 1, 1, 1, primProcedureP)
	in.define("primitivep primitive?", 1, 1, 1, primPrimitiveP)
	in.define("definedp defined?", 1, 1, 1, primDefinedP)
	in.define("namep name?", 1, 1, 1, primNameP)
	in.define("plistp plist?", 1, 1, 1, primPlistP)

	in.define("contents", 0, 0, 0, primContents)
	in.define("buried", 0, 0, 0, primBuried)
	in.define("procedures", 0, 0, 0, primProcedures)
	in.define("primitives", 0, 0, 0, primPrimitives)
	in.define("globals", 0, 0, 0, primGlobals)
	in.define("names", 0, 0, 0, primNames)
	in.define("plists", 0, 0, 0, primPlists)

	in.define("erase er", 1, 1, 1, primErase)
	in.define("erall", 0, 0, 0, primErall)
	in.define("erps", 0, 0, 0, primErps)
	in.define("erns", 0, 0, 0, primErns)
	in.define("erpls", 0, 0, 0, primErpls)
	in.define("bury", 1, 1, 1, primBury)
	in.define("unbury", 1, 1, 1, primUnbury)
	in.define("buriedp buried?", 1, 1, 1, primBuriedP)
}

func primDefine(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	d, err := in.definitionFromText(c.Args[1])
	if err != nil {
		return nil, err
	}
	return nil, in.defineProc(name, d)
}

func primText(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	p, ok := in.Procedure(name)
	if !ok || p.Primitive() {
		return nil, in.fault(UnknownProcedure, "Don't know how to {name:U}", map[string]any{"name": name})
	}
	return definitionList(p.Def), nil
}

func primCopyDef(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	old, err := in.toText(c.Args[1])
	if err != nil {
		return nil, err
	}
	p, ok := in.Procedure(old)
	if !ok {
		return nil, in.fault(UnknownProcedure, "Don't know how to {name:U}", map[string]any{"name": old})
	}
	if !p.Primitive() {
		return nil, in.defineProc(name, p.Def)
	}
	if err := in.checkRedefine(name); err != nil {
		return nil, err
	}
	q := *p
	q.Name = name
	q.Buried = false
	in.procs[fold(name)] = &q
	return nil, nil
}

func primMake(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.SetVar(name, c.Args[1])
	return nil, nil
}

func primName(in *Interp, c *Call) (Value, error) {
	return primMake(in, &Call{Name: c.Name, Args: []Value{c.Args[1], c.Args[0]}})
}

// names reads a word or a list of words.
func (in *Interp) names(v Value) ([]string, error) {
	if w, ok := v.(Word); ok {
		return []string{w.String()}, nil
	}
	l, err := in.toList(v)
	if err != nil {
		return nil, err
	}
	r := make([]string, len(l.Items))
	for i, x := range l.Items {
		if r[i], err = in.toText(x); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func primLocal(in *Interp, c *Call) (Value, error) {
	for _, v := range c.Args {
		names, err := in.names(v)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			in.local(n)
		}
	}
	return nil, nil
}

func primLocalMake(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.local(name).value = Copy(c.Args[1])
	return nil, nil
}

func primThing(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	return in.thing(name)
}

func primGlobal(in *Interp, c *Call) (Value, error) {
	for _, v := range c.Args {
		names, err := in.names(v)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			in.global(n)
		}
	}
	return nil, nil
}

func primPprop(in *Interp, c *Call) (Value, error) {
	list, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	name, err := in.toText(c.Args[1])
	if err != nil {
		return nil, err
	}
	in.putProp(list, name, c.Args[2])
	return nil, nil
}

// primGprop outputs the empty list for a missing property.
func primGprop(in *Interp, c *Call) (Value, error) {
	list, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	name, err := in.toText(c.Args[1])
	if err != nil {
		return nil, err
	}
	v, ok := in.getProp(list, name)
	if !ok {
		return NewList(), nil
	}
	return Copy(v), nil
}

func primRemprop(in *Interp, c *Call) (Value, error) {
	list, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	name, err := in.toText(c.Args[1])
	if err != nil {
		return nil, err
	}
	in.removeProp(list, name)
	return nil, nil
}

func primPlist(in *Interp, c *Call) (Value, error) {
	list, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	r := []Value{}
	if p := in.plists[fold(list)]; p != nil {
		for _, q := range p.props {
			r = append(r, NewWord(q.name), Copy(q.value))
		}
	}
	return NewList(r...), nil
}

func primProcedureP(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	_, ok := in.Procedure(name)
	return Bool(ok), nil
}

func primPrimitiveP(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	p, ok := in.Procedure(name)
	return Bool(ok && p.Primitive()), nil
}

func primDefinedP(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	p, ok := in.Procedure(name)
	return Bool(ok && !p.Primitive()), nil
}

func primNameP(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	_, ok := in.Var(name)
	return Bool(ok), nil
}

func primPlistP(in *Interp, c *Call) (Value, error) {
	name, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	_, ok := in.plists[fold(name)]
	return Bool(ok), nil
}

// contents lists the workspace as [[procedures] [names] [plists]].
func (in *Interp) contents(buried bool) *List {
	var procs []string
	for _, p := range in.userProcs(buried) {
		procs = append(procs, p.Name)
	}
	return NewList(
		WordList(procs...),
		WordList(in.globalNames(buried)...),
		WordList(in.plistNames(buried)...),
	)
}

func primContents(in *Interp, c *Call) (Value, error) {
	return in.contents(false), nil
}

func primBuried(in *Interp, c *Call) (Value, error) {
	return in.contents(true), nil
}

func primProcedures(in *Interp, c *Call) (Value, error) {
	return in.contents(false).Items[0], nil
}

func primPrimitives(in *Interp, c *Call) (Value, error) {
	var r []string
	for k, p := range in.procs {
		if p.Primitive() && !p.Buried && k == fold(p.Name) {
			r = append(r, p.Name)
		}
	}
	slices.Sort(r)
	return WordList(r...), nil
}

func primGlobals(in *Interp, c *Call) (Value, error) {
	return WordList(in.globalNames(false)...), nil
}

func primNames(in *Interp, c *Call) (Value, error) {
	return NewList(NewList(), WordList(in.globalNames(false)...)), nil
}

func primPlists(in *Interp, c *Call) (Value, error) {
	return NewList(NewList(), NewList(), WordList(in.plistNames(false)...)), nil
}

// contentsList is a parsed contents list: a word or list of words names
// procedures; a list of lists names procedures, variables, and property
// lists in that order.
type contentsList struct {
	procs, names, plists []string
}

func (in *Interp) contentsList(v Value) (contentsList, error) {
	var r contentsList
	l, ok := v.(*List)
	if !ok || len(l.Items) == 0 {
		names, err := in.names(v)
		r.procs = names
		return r, err
	}
	if _, ok := l.Items[0].(Word); ok {
		names, err := in.names(v)
		r.procs = names
		return r, err
	}
	dst := []*[]string{&r.procs, &r.names, &r.plists}
	for i, x := range l.Items {
		if i >= len(dst) {
			return r, in.expected("list", v)
		}
		names, err := in.names(x)
		if err != nil {
			return r, err
		}
		*dst[i] = names
	}
	return r, nil
}

// erase removes everything named in a contents list.
func (in *Interp) erase(cl contentsList) error {
	for _, name := range cl.procs {
		if err := in.eraseProc(name); err != nil {
			return err
		}
	}
	for _, name := range cl.names {
		delete(in.frames[0], fold(name))
	}
	for _, name := range cl.plists {
		in.erasePlist(fold(name))
	}
	return nil
}

func primErase(in *Interp, c *Call) (Value, error) {
	cl, err := in.contentsList(c.Args[0])
	if err != nil {
		return nil, err
	}
	return nil, in.erase(cl)
}

// unburied returns the unburied contents as a contents list.
func (in *Interp) unburied() contentsList {
	var r contentsList
	for _, p := range in.userProcs(false) {
		r.procs = append(r.procs, p.Name)
	}
	r.names = in.globalNames(false)
	r.plists = in.plistNames(false)
	return r
}

func primErall(in *Interp, c *Call) (Value, error) {
	return nil, in.erase(in.unburied())
}

func primErps(in *Interp, c *Call) (Value, error) {
	return nil, in.erase(contentsList{procs: in.unburied().procs})
}

func primErns(in *Interp, c *Call) (Value, error) {
	return nil, in.erase(contentsList{names: in.unburied().names})
}

func primErpls(in *Interp, c *Call) (Value, error) {
	return nil, in.erase(contentsList{plists: in.unburied().plists})
}

// setBuried marks everything named in a contents list.
func (in *Interp) setBuried(cl contentsList, buried bool) {
	for _, name := range cl.procs {
		if p, ok := in.Procedure(name); ok {
			p.Buried = buried
		}
	}
	for _, name := range cl.names {
		if c := in.frames[0][fold(name)]; c != nil {
			c.buried = buried
		}
	}
	for _, name := range cl.plists {
		if p := in.plists[fold(name)]; p != nil {
			p.buried = buried
		}
	}
}

func primBury(in *Interp, c *Call) (Value, error) {
	cl, err := in.contentsList(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.setBuried(cl, true)
	return nil, nil
}

func primUnbury(in *Interp, c *Call) (Value, error) {
	cl, err := in.contentsList(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.setBuried(cl, false)
	return nil, nil
}

// primBuriedP reports on the first item named in the contents list.
func primBuriedP(in *Interp, c *Call) (Value, error) {
	cl, err := in.contentsList(c.Args[0])
	if err != nil {
		return nil, err
	}
	switch {
	case len(cl.procs) > 0:
		p, ok := in.Procedure(cl.procs[0])
		return Bool(ok && p.Buried), nil
	case len(cl.names) > 0:
		v := in.frames[0][fold(cl.names[0])]
		return Bool(v != nil && v.buried), nil
	case len(cl.plists) > 0:
		p := in.plists[fold(cl.plists[0])]
		return Bool(p != nil && p.buried), nil
	}
	return Bool(false), nil
}
