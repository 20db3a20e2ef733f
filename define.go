package logo

import (
	"log/slog"
	"slices"
	"strings"
)

// canRedefine reports whether primitives may be redefined or erased.
func (in *Interp) canRedefine() bool {
	if in.redefine {
		return true
	}
	v, ok := in.Var("REDEFP")
	if !ok {
		return false
	}
	b, err := in.toBool(v)
	return err == nil && b
}

// checkRedefine fails if name is a primitive that may not be replaced.
func (in *Interp) checkRedefine(name string) error {
	if p, ok := in.Procedure(name); ok && p.Primitive() && !in.canRedefine() {
		return in.fault(Redefinition, "{_PROC_}: Can't redefine primitive {name:U}", map[string]any{"name": name})
	}
	return nil
}

// defineProc installs a user procedure and reports it to the saver.
func (in *Interp) defineProc(name string, d *Definition) error {
	p := &Procedure{
		Name:    name,
		Min:     len(d.Inputs),
		Default: len(d.Inputs),
		Max:     len(d.Inputs) + len(d.Optional),
		Def:     d,
	}
	if d.Rest != "" {
		p.Max = -1
	}
	if d.Arity >= 0 {
		if d.Arity < p.Min || (p.Max >= 0 && d.Arity > p.Max) {
			return in.fault(BadInput, "{_PROC_}: Bad default number of inputs for {name:U}", map[string]any{"name": name})
		}
		p.Default = d.Arity
	}
	if err := in.checkRedefine(name); err != nil {
		return err
	}
	if old, ok := in.Procedure(name); ok {
		p.Buried = old.Buried
	}
	in.procs[fold(name)] = p
	in.log.Debug("defined procedure", slog.String("name", name))
	if in.saver != nil {
		if err := in.saver.Save(in.ctx, name, definitionText(p)); err != nil {
			in.log.Warn("saving procedure failed", slog.String("name", name), slog.Any("err", err))
		}
	}
	return nil
}

// eraseProc removes a procedure and reports it to the saver.
func (in *Interp) eraseProc(name string) error {
	p, ok := in.Procedure(name)
	if !ok {
		return nil
	}
	if p.Primitive() && !in.canRedefine() {
		return in.fault(Redefinition, "{_PROC_}: Can't erase primitive {name:U}", map[string]any{"name": name})
	}
	delete(in.procs, fold(name))
	in.log.Debug("erased procedure", slog.String("name", name))
	if !p.Primitive() && in.saver != nil {
		if err := in.saver.Delete(in.ctx, p.Name); err != nil {
			in.log.Warn("deleting procedure failed", slog.String("name", p.Name), slog.Any("err", err))
		}
	}
	return nil
}

// readTo reads a TO form: the procedure name, its inputs, and the body up to
// END.
func readTo(in *Interp, c *cursor) error {
	if in.inProcedure() {
		return in.fault(BadContext, "Can't use TO inside a procedure", nil)
	}
	v := c.next()
	if v == nil {
		return in.fault(UnexpectedEnd, "Unexpected end of instructions", nil)
	}
	w, ok := v.(Word)
	if !ok || w.String() == "" || isOperator(w.String()) {
		return in.expected("identifier", v)
	}
	name := w.String()
	if err := in.checkRedefine(name); err != nil {
		return err
	}

	d := &Definition{Arity: -1}
inputs:
	for {
		switch a := c.peek().(type) {
		case Word:
			s := a.String()
			if strings.HasPrefix(s, ":") && len(s) > 1 && len(d.Optional) == 0 && d.Rest == "" {
				d.Inputs = append(d.Inputs, s[1:])
				c.next()
				continue
			}
			if n, ok := ParseNumber(s); ok {
				d.Arity = int(n)
				c.next()
			}
			break inputs
		case *List:
			pn, ok := inputName(a)
			if !ok || d.Rest != "" {
				break inputs
			}
			if len(a.Items) == 1 {
				d.Rest = pn
			} else {
				d.Optional = append(d.Optional, Optional{Name: pn, Default: NewList(a.Items[1:]...)})
			}
			c.next()
		default:
			break inputs
		}
	}

	start := c.pos
	for {
		a := c.next()
		if a == nil {
			return in.fault(UnexpectedEnd, "Expected END", nil)
		}
		if in.keyword(a, "END") {
			break
		}
	}
	d.Body = slices.Clone(c.atoms[start : c.pos-1])
	return in.defineProc(name, d)
}

// inputName returns the variable name of an optional or rest input list.
func inputName(l *List) (string, bool) {
	if len(l.Items) == 0 {
		return "", false
	}
	w, ok := l.Items[0].(Word)
	if !ok {
		return "", false
	}
	s := w.String()
	if !strings.HasPrefix(s, ":") || len(s) < 2 {
		return "", false
	}
	return s[1:], true
}

// definitionFromText builds a definition from the [inputs line...] form used
// by DEFINE and output by TEXT.
func (in *Interp) definitionFromText(v Value) (*Definition, error) {
	l, err := in.toList(v)
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, in.expected("list", v)
	}
	params, err := in.toList(l.Items[0])
	if err != nil {
		return nil, err
	}
	d := &Definition{Arity: -1}
	for _, p := range params.Items {
		switch p := p.(type) {
		case Word:
			if n, ok := p.Number(); ok {
				d.Arity = int(n)
				continue
			}
			d.Inputs = append(d.Inputs, strings.TrimPrefix(p.String(), ":"))
		case *List:
			if len(p.Items) == 0 {
				return nil, in.expected("list", p)
			}
			name := strings.TrimPrefix(Text(p.Items[0]), ":")
			if len(p.Items) == 1 {
				d.Rest = name
			} else {
				d.Optional = append(d.Optional, Optional{Name: name, Default: NewList(p.Items[1:]...)})
			}
		default:
			return nil, in.expected("list", p)
		}
	}
	for _, line := range l.Items[1:] {
		ll, err := in.toList(line)
		if err != nil {
			return nil, err
		}
		atoms, err := instructions(ll)
		if err != nil {
			return nil, in.relocalize(err)
		}
		d.Body = append(d.Body, atoms...)
	}
	return d, nil
}

// definitionList renders a definition in the form output by TEXT.
func definitionList(d *Definition) *List {
	params := []Value{}
	for _, s := range d.Inputs {
		params = append(params, NewWord(s))
	}
	for _, o := range d.Optional {
		params = append(params, NewList(append([]Value{NewWord(o.Name)}, Copy(o.Default).(*List).Items...)...))
	}
	if d.Rest != "" {
		params = append(params, NewList(NewWord(d.Rest)))
	}
	if d.Arity >= 0 {
		params = append(params, NewNumber(float64(d.Arity)))
	}
	r := []Value{NewList(params...)}
	if len(d.Body) > 0 {
		r = append(r, NewList(bodyWords(d.Body)...))
	}
	return NewList(r...)
}

// bodyWords converts body atoms back into list items, rejoining unary minus
// with the word after it.
func bodyWords(atoms []Value) []Value {
	var r []Value
	for i := 0; i < len(atoms); i++ {
		a := atoms[i]
		if isWord(a, unaryMinus) {
			if i+1 < len(atoms) {
				if w, ok := atoms[i+1].(Word); ok {
					r = append(r, NewWord("-"+w.String()))
					i++
					continue
				}
			}
			a = NewWord("-")
		}
		r = append(r, Copy(a))
	}
	return r
}

// definitionText renders a user procedure as TO ... END source.
func definitionText(p *Procedure) string {
	d := p.Def
	var b strings.Builder
	b.WriteString("to ")
	b.WriteString(escapeAny(p.Name, listDelims+"()"+operators))
	for _, s := range d.Inputs {
		b.WriteString(" :")
		b.WriteString(s)
	}
	for _, o := range d.Optional {
		b.WriteString(" [:")
		b.WriteString(o.Name)
		for _, v := range o.Default.Items {
			b.WriteByte(' ')
			b.WriteString(source(v))
		}
		b.WriteByte(']')
	}
	if d.Rest != "" {
		b.WriteString(" [:")
		b.WriteString(d.Rest)
		b.WriteByte(']')
	}
	if d.Arity >= 0 {
		b.WriteByte(' ')
		b.WriteString(FormatNumber(float64(d.Arity)))
	}
	b.WriteByte('\n')
	if len(d.Body) > 0 {
		b.WriteString("  ")
		for i, a := range d.Body {
			if i > 0 && !isWord(d.Body[i-1], unaryMinus) {
				b.WriteByte(' ')
			}
			b.WriteString(atomSource(a))
		}
		b.WriteByte('\n')
	}
	b.WriteString("end")
	return b.String()
}

// atomSource renders a top-level atom so that reading it again reproduces
// it.
func atomSource(v Value) string {
	w, ok := v.(Word)
	if !ok {
		return source(v)
	}
	s := w.String()
	switch {
	case s == unaryMinus:
		return "-"
	case isOperator(s):
		return s
	case w.IsNumber():
		return s
	case s != "" && (s[0] == '"' || s[0] == '\''):
		return s[:1] + escapeAny(s[1:], listDelims+"()")
	}
	return escapeAny(s, listDelims+"()"+operators)
}

// Definition returns the TO ... END text of a user procedure.
func (in *Interp) Definition(name string) (string, bool) {
	p, ok := in.Procedure(name)
	if !ok || p.Primitive() {
		return "", false
	}
	return definitionText(p), true
}

// userProcs returns the user procedures sorted by name.
func (in *Interp) userProcs(buried bool) []*Procedure {
	var r []*Procedure
	for k, p := range in.procs {
		if p.Primitive() || p.Buried != buried || k != fold(p.Name) {
			continue
		}
		r = append(r, p)
	}
	slices.SortFunc(r, func(a, b *Procedure) int { return strings.Compare(fold(a.Name), fold(b.Name)) })
	return r
}

// ProceduresAsText returns the definitions of every user procedure, buried
// or not, separated by blank lines.
func (in *Interp) ProceduresAsText() string {
	procs := append(in.userProcs(false), in.userProcs(true)...)
	slices.SortFunc(procs, func(a, b *Procedure) int { return strings.Compare(fold(a.Name), fold(b.Name)) })
	defs := make([]string, len(procs))
	for i, p := range procs {
		defs[i] = definitionText(p)
	}
	return strings.Join(defs, "\n\n")
}
