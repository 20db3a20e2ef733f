package logo

import "time"

// testFlag is the result of the most recent TEST in a frame.
type testFlag int8

const (
	untested testFlag = iota
	testedTrue
	testedFalse
)

func (in *Interp) initControl() {
	in.define("run", 1, 1, 1, primRun)
	in.define("runresult", 1, 1, 1, primRunResult)
	in.define("repeat", 2, 2, 2, primRepeat)
	in.define("forever", 1, 1, 1, primForever)
	in.define("repcount #", 0, 0, 0, primRepcount)
	in.define("if", 2, 2, 3, primIf)
	in.define("ifelse", 3, 3, 3, primIf)
	in.define("test", 1, 1, 1, primTest)
	in.define("iftrue ift", 1, 1, 1, primIfTest(testedTrue))
	in.define("iffalse iff", 1, 1, 1, primIfTest(testedFalse))
	in.define("stop", 0, 0, 0, primStop)
	in.define("output op", 1, 1, 1, primOutput)
	in.define("catch", 2, 2, 2, primCatch)
	in.define("throw", 1, 1, 2, primThrow).Trailing = true
	in.define("wait", 1, 1, 1, primWait)
	in.define("bye", 0, 0, 0, primBye)
	in.defineNoEval(".maybeoutput", 1, 1, 1, primMaybeOutput)
	in.define("ignore", 1, 1, 1, primIgnore)
	in.define("for", 2, 2, 2, primFor)
	in.defineNoEval("while", 2, 2, 2, primWhile(true, false))
	in.defineNoEval("until", 2, 2, 2, primWhile(false, false))
	in.defineNoEval("do.while", 2, 2, 2, primWhile(true, true))
	in.defineNoEval("do.until", 2, 2, 2, primWhile(false, true))
	in.define("case", 2, 2, 2, primCase)
	in.define("cond", 1, 1, 1, primCond)
}

// loopTick ends a loop iteration: it yields if it is time and stops the loop
// if BYE was requested.
func (in *Interp) loopTick() error {
	in.maybeYield()
	if in.bye.Load() {
		return &Signal{Control: ByeStop}
	}
	return nil
}

func primRun(in *Interp, c *Call) (Value, error) {
	return in.runList(c.Args[0], true)
}

func primRunResult(in *Interp, c *Call) (Value, error) {
	v, err := in.runList(c.Args[0], true)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return NewList(), nil
	}
	return NewList(v), nil
}

func primRepeat(in *Interp, c *Call) (Value, error) {
	n, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	l, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	defer func(r int) { in.repcount = r }(in.repcount)
	for i := 1; i <= n; i++ {
		in.repcount = i
		if _, err := in.runList(l, false); err != nil {
			return nil, err
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func primForever(in *Interp, c *Call) (Value, error) {
	l, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	defer func(r int) { in.repcount = r }(in.repcount)
	for i := 1; ; i++ {
		in.repcount = i
		if _, err := in.runList(l, false); err != nil {
			return nil, err
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
}

func primRepcount(in *Interp, c *Call) (Value, error) {
	return NewNumber(float64(in.repcount)), nil
}

// primIf serves IF and IFELSE. Either outputs the value of the list it runs.
func primIf(in *Interp, c *Call) (Value, error) {
	b, err := in.toBool(c.Args[0])
	if err != nil {
		return nil, err
	}
	if b {
		return in.runList(c.Args[1], true)
	}
	if len(c.Args) > 2 {
		return in.runList(c.Args[2], true)
	}
	return nil, nil
}

func primTest(in *Interp, c *Call) (Value, error) {
	b, err := in.toBool(c.Args[0])
	if err != nil {
		return nil, err
	}
	f := testedFalse
	if b {
		f = testedTrue
	}
	in.tests[len(in.tests)-1] = f
	return nil, nil
}

func primIfTest(want testFlag) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		switch in.tests[len(in.tests)-1] {
		case untested:
			return nil, in.fault(BadContext, "{_PROC_}: Needs TEST first", nil)
		case want:
			return in.runList(c.Args[0], true)
		}
		return nil, nil
	}
}

func primStop(in *Interp, c *Call) (Value, error) {
	if !in.inProcedure() {
		return nil, in.fault(BadContext, "Can only use {name:U} inside a procedure", map[string]any{"name": c.Name})
	}
	return nil, &Signal{Control: OutputStop}
}

func primOutput(in *Interp, c *Call) (Value, error) {
	if !in.inProcedure() {
		return nil, in.fault(BadContext, "Can only use {name:U} inside a procedure", map[string]any{"name": c.Name})
	}
	return nil, &Signal{Control: OutputStop, Result: c.Args[0]}
}

// primCatch runs a list, stopping a THROW of a matching tag. It outputs the
// value thrown, or the value of the list if nothing was.
func primCatch(in *Interp, c *Call) (Value, error) {
	tag, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	v, err := in.runList(c.Args[1], true)
	if err == nil {
		return v, nil
	}
	s, ok := signal(err)
	if !ok || s.Control != ThrowStop || fold(s.Tag) != fold(tag) {
		return nil, err
	}
	return s.Result, nil
}

func primThrow(in *Interp, c *Call) (Value, error) {
	tag, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	return nil, &Signal{Control: ThrowStop, Tag: tag, Result: c.Arg(1)}
}

// primWait pauses for a number of sixtieths of a second. It keeps yielding
// while it waits and ends early on BYE.
func primWait(in *Interp, c *Call) (Value, error) {
	n, err := in.toNumber(c.Args[0])
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(time.Duration(n * float64(time.Second) / 60))
	step := max(in.yieldInterval, time.Millisecond)
	for {
		if err := in.loopTick(); err != nil {
			return nil, err
		}
		left := time.Until(deadline)
		if left <= 0 {
			return nil, nil
		}
		t := time.NewTimer(min(left, step))
		select {
		case <-t.C:
		case <-in.ctx.Done():
			t.Stop()
		}
	}
}

func primBye(in *Interp, c *Call) (Value, error) {
	in.Bye()
	return nil, &Signal{Control: ByeStop}
}

// primMaybeOutput outputs the value of its input if it has one, and stops
// the procedure either way.
func primMaybeOutput(in *Interp, c *Call) (Value, error) {
	v, err := c.Thunks[0]()
	if err != nil {
		return nil, err
	}
	return nil, &Signal{Control: OutputStop, Result: v}
}

func primIgnore(in *Interp, c *Call) (Value, error) {
	return nil, nil
}

// primFor runs a list for each value of a control variable. The control
// list is [var start end] or [var start end step]; start, end, and step
// are evaluated once. The variable is local to the loop.
func primFor(in *Interp, c *Call) (Value, error) {
	ctl, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	body, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	if len(ctl.Items) < 3 {
		return nil, in.expected("list", ctl)
	}
	name, err := in.toText(ctl.Items[0])
	if err != nil {
		return nil, err
	}
	atoms, err := instructions(NewList(ctl.Items[1:]...))
	if err != nil {
		return nil, in.relocalize(err)
	}
	cur := &cursor{atoms: atoms}
	var lim []float64
	for !cur.done() && len(lim) < 3 {
		e, err := in.expression(cur)
		if err != nil {
			return nil, err
		}
		v, err := in.value(e, c.Name)
		if err != nil {
			return nil, err
		}
		n, err := in.toNumber(v)
		if err != nil {
			return nil, err
		}
		lim = append(lim, n)
	}
	if len(lim) < 2 || !cur.done() {
		return nil, in.expected("list", ctl)
	}
	start, end := lim[0], lim[1]
	step := 1.0
	if start > end {
		step = -1
	}
	if len(lim) == 3 {
		step = lim[2]
	}
	if step == 0 {
		return nil, in.expected("number", ctl)
	}

	// The control variable lives in the current frame for the loop only.
	f := in.frames[len(in.frames)-1]
	k := fold(name)
	old, had := f[k]
	defer func() {
		if had {
			f[k] = old
		} else {
			delete(f, k)
		}
	}()
	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		in.bind(name, NewNumber(i))
		if _, err := in.runList(body, false); err != nil {
			return nil, err
		}
		if err := in.loopTick(); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// primWhile builds WHILE, UNTIL, DO.WHILE and DO.UNTIL. The condition is
// evaluated again before every iteration; post-test loops run the body
// once first.
func primWhile(want, post bool) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		cond, bodyThunk := c.Thunks[0], c.Thunks[1]
		if post {
			cond, bodyThunk = c.Thunks[1], c.Thunks[0]
		}
		bv, err := bodyThunk()
		if err != nil {
			return nil, err
		}
		body, err := in.toList(bv)
		if err != nil {
			return nil, err
		}
		for first := true; ; first = false {
			if !post || !first {
				b, err := in.thunkBool(cond)
				if err != nil {
					return nil, err
				}
				if b != want {
					return nil, nil
				}
			}
			if _, err := in.runList(body, false); err != nil {
				return nil, err
			}
			if err := in.loopTick(); err != nil {
				return nil, err
			}
		}
	}
}

// primCase runs the first clause whose list of values contains the input.
// A clause is [[values...] instructions...] or [else instructions...].
func primCase(in *Interp, c *Call) (Value, error) {
	clauses, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	for _, cl := range clauses.Items {
		l, err := in.toList(cl)
		if err != nil {
			return nil, err
		}
		if len(l.Items) == 0 {
			return nil, in.expected("list", l)
		}
		match := in.keyword(l.Items[0], "ELSE")
		if !match {
			vals, err := in.toList(l.Items[0])
			if err != nil {
				return nil, err
			}
			for _, v := range vals.Items {
				if Equal(v, c.Args[0]) {
					match = true
					break
				}
			}
		}
		if match {
			return in.runList(NewList(l.Items[1:]...), true)
		}
	}
	return nil, nil
}

// primCond runs the first clause whose condition is true. A clause is
// [[condition] instructions...] or [else instructions...].
func primCond(in *Interp, c *Call) (Value, error) {
	clauses, err := in.toList(c.Args[0])
	if err != nil {
		return nil, err
	}
	for _, cl := range clauses.Items {
		l, err := in.toList(cl)
		if err != nil {
			return nil, err
		}
		if len(l.Items) == 0 {
			return nil, in.expected("list", l)
		}
		match := in.keyword(l.Items[0], "ELSE")
		if !match {
			v, err := in.runList(l.Items[0], true)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, in.fault(NoOutput, "{_PROC_}: Expected true or false", nil)
			}
			if match, err = in.toBool(v); err != nil {
				return nil, err
			}
		}
		if match {
			return in.runList(NewList(l.Items[1:]...), true)
		}
	}
	return nil, nil
}
