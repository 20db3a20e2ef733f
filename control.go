package logo

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Stop represents the reason for non-local flow control.
type Stop int

// Control flow reasons.
const (
	// NoStop indicates normal execution.
	NoStop Stop = iota
	// OutputStop ends the innermost user procedure, with or without a
	// value. STOP and OUTPUT produce it.
	OutputStop
	// ThrowStop unwinds to the innermost CATCH with a matching tag.
	ThrowStop
	// ByeStop unwinds to the top of the current run.
	ByeStop
)

var stopNames = [...]string{"normal", "output", "throw", "bye"}

func (s Stop) String() string {
	if s < NoStop || s > ByeStop {
		return fmt.Sprintf("Stop(%d)", int(s))
	}
	return stopNames[s]
}

// Signal is a control transfer travelling through the error channel. It is
// not a fault; engine layers intercept the kinds they handle and pass the
// rest upward.
type Signal struct {
	Control Stop
	// Result is the value carried by OUTPUT or THROW, if any.
	Result Value
	// Tag is the THROW tag.
	Tag string
}

func (s *Signal) Error() string {
	if s.Control == ThrowStop {
		return "throw " + s.Tag
	}
	return s.Control.String()
}

// signal returns the control signal in err, if there is one.
func signal(err error) (*Signal, bool) {
	var s *Signal
	ok := errors.As(err, &s)
	return s, ok
}

// execute runs a sequence of statements. Unless result is true, a statement
// that outputs a value is an error; with result, execute outputs the value of
// the last statement.
func (in *Interp) execute(atoms []Value, result bool) (Value, error) {
	c := &cursor{atoms: atoms}
	var last Value
	for !c.done() {
		if in.bye.Load() {
			return nil, &Signal{Control: ByeStop}
		}
		e, err := in.expression(c)
		if err != nil {
			return nil, err
		}
		v, err := e.eval(in)
		if err != nil {
			return nil, err
		}
		if result {
			last = v
			continue
		}
		if v != nil {
			return nil, in.fault(UnexpectedResult, "Don't know what to do with {result}", map[string]any{"result": v})
		}
	}
	return last, nil
}

// runList runs a list, or a word treated as a one-item list, as
// instructions.
func (in *Interp) runList(v Value, result bool) (Value, error) {
	var l *List
	switch v := v.(type) {
	case *List:
		l = v
	case Word:
		l = NewList(v)
	default:
		return nil, in.expected("list", v)
	}
	atoms, err := instructions(l)
	if err != nil {
		return nil, in.relocalize(err)
	}
	return in.execute(atoms, result)
}

// maybeYield yields if the yield interval has elapsed since the last yield.
// Loops call it after each iteration and procedures after their bodies.
func (in *Interp) maybeYield() {
	now := time.Now()
	if now.Sub(in.lastYield) < in.yieldInterval {
		return
	}
	in.lastYield = now
	in.log.Debug("yield", slog.Int("depth", len(in.stack)))
	if in.onYield != nil {
		in.onYield()
	}
	runtime.Gosched()
}
