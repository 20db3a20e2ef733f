package logo

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/zephyrtronium/logo/turtle"
)

// Interp is a Logo interpreter session. It holds the workspace (procedures,
// variables, property lists) and the turtle. An Interp runs one program at a
// time; use a Scheduler to queue programs from several goroutines.
type Interp struct {
	procs map[string]*Procedure
	// frames is the scope chain. frames[0] holds globals and always exists.
	frames []frame
	// tests holds the TEST result of each frame.
	tests  []testFlag
	plists map[string]*plist
	// plistOrder is the creation order of property lists, by folded name.
	plistOrder []string

	// stack is the call stack of procedure names for diagnostics.
	stack []activation
	// repcount is the iteration of the innermost loop, or -1 outside loops.
	repcount int
	// slots holds the inputs of the templates being applied.
	slots [][]Value
	gensym int

	turtle    *turtle.Engine
	stream    Stream
	style     TextStyle
	saver     Saver
	localizer Localizer
	log       *slog.Logger
	rng       *rand.Rand

	bye           atomic.Bool
	ctx           context.Context
	yieldInterval time.Duration
	lastYield     time.Time
	onYield       func()

	maxDepth int
	redefine bool

	width, height float64
	surface       turtle.Surface
	seed          uint64
}

// activation is an entry of the call stack.
type activation struct {
	name string
	user bool
}

// Stream is the text console used by the communication primitives.
type Stream interface {
	// Read prompts for and returns one line of input, without its line
	// ending. It returns io.EOF when no more input is available.
	Read(prompt string) (string, error)
	// Write writes text.
	Write(parts ...string)
	// Clear erases the console.
	Clear()
	// Readback returns the current content of the console.
	Readback() string
	// SetTextStyle changes how subsequently written text looks.
	SetTextStyle(style TextStyle)
}

// TextStyle describes console text.
type TextStyle struct {
	Color turtle.Color
	Size  float64
	Font  string
}

// Saver persists user procedure definitions. Save receives the canonical
// TO ... END text of a procedure each time it is defined; Delete is called
// when one is erased.
type Saver interface {
	Save(ctx context.Context, name, text string) error
	Delete(ctx context.Context, name string) error
}

// Localizer supplies translations. Each method reports false to fall back to
// the default.
type Localizer interface {
	// Message translates message text, which may contain {placeholders}.
	Message(text string) (string, bool)
	// Keyword resolves an upper-cased word to ELSE or END.
	Keyword(word string) (string, bool)
	// Color resolves a color name.
	Color(name string) (turtle.Color, bool)
}

// Option configures an Interp.
type Option func(*Interp)

// WithStream sets the console. The default is a BufferStream with no input.
func WithStream(s Stream) Option {
	return func(in *Interp) { in.stream = s }
}

// WithSurface sets the drawing surface for the turtle.
func WithSurface(s turtle.Surface) Option {
	return func(in *Interp) { in.surface = s }
}

// WithViewport sets the size of the turtle's viewport.
func WithViewport(width, height float64) Option {
	return func(in *Interp) { in.width, in.height = width, height }
}

// WithSaver sets the persistence hook for procedure definitions.
func WithSaver(s Saver) Option {
	return func(in *Interp) { in.saver = s }
}

// WithLocalizer sets the translation hooks.
func WithLocalizer(l Localizer) Option {
	return func(in *Interp) { in.localizer = l }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interp) { in.log = l }
}

// WithYieldInterval sets how long evaluation runs between yields.
func WithYieldInterval(d time.Duration) Option {
	return func(in *Interp) { in.yieldInterval = d }
}

// WithMaxDepth limits the depth of procedure calls.
func WithMaxDepth(n int) Option {
	return func(in *Interp) { in.maxDepth = n }
}

// WithRandomSeed seeds the random number generator.
func WithRandomSeed(seed uint64) Option {
	return func(in *Interp) { in.seed = seed }
}

// WithRedefinePrimitives allows programs to redefine and erase primitives
// without setting REDEFP.
func WithRedefinePrimitives(ok bool) Option {
	return func(in *Interp) { in.redefine = ok }
}

// New creates an interpreter.
func New(opts ...Option) *Interp {
	in := &Interp{
		procs:         make(map[string]*Procedure, 400),
		frames:        []frame{{}},
		tests:         []testFlag{untested},
		plists:        make(map[string]*plist),
		repcount:      -1,
		yieldInterval: 20 * time.Millisecond,
		maxDepth:      10000,
		width:         640,
		height:        480,
		seed:          uint64(time.Now().UnixNano()),
		ctx:           context.Background(),
		style:         TextStyle{Color: turtle.Black, Size: 13, Font: "monospace"},
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.stream == nil {
		in.stream = NewBufferStream(nil)
	}
	if in.log == nil {
		in.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	in.rng = rand.New(rand.NewPCG(in.seed, in.seed>>1|1))
	in.turtle = turtle.New(in.surface, in.width, in.height)

	in.initData()
	in.initCommunication()
	in.initMath()
	in.initWorkspace()
	in.initControl()
	in.initTemplates()
	in.initGraphics()
	return in
}

// Turtle returns the turtle engine.
func (in *Interp) Turtle() *turtle.Engine {
	return in.turtle
}

// Stream returns the console.
func (in *Interp) Stream() Stream {
	return in.stream
}

// Bye asks the running program to stop at its next statement. It is safe to
// call from any goroutine.
func (in *Interp) Bye() {
	in.bye.Store(true)
}

// Run parses and executes a program. A statement that outputs a value which
// nothing consumes is an error. BYE, and cancellation of ctx, end the
// program without an error; in the latter case Run returns ctx.Err().
func (in *Interp) Run(ctx context.Context, text string) error {
	_, err := in.run(ctx, text, false)
	return err
}

// Eval is like Run but outputs the value of the program's last expression.
func (in *Interp) Eval(ctx context.Context, text string) (Value, error) {
	return in.run(ctx, text, true)
}

func (in *Interp) run(ctx context.Context, text string, result bool) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in.bye.Store(false)
	stop := context.AfterFunc(ctx, in.Bye)
	defer stop()
	in.ctx = ctx
	defer func() { in.ctx = context.Background() }()

	start := time.Now()
	atoms, err := Parse(text)
	if err != nil {
		return nil, in.relocalize(err)
	}
	in.lastYield = start
	v, err := in.execute(atoms, result)
	v, err = in.settle(v, err)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	in.log.DebugContext(ctx, "run finished", slog.Duration("took", time.Since(start)), slog.Any("err", err))
	return v, err
}

// settle converts control signals that reach the top of a run into their
// final results.
func (in *Interp) settle(v Value, err error) (Value, error) {
	s, ok := signal(err)
	if !ok {
		return v, err
	}
	switch s.Control {
	case ByeStop:
		return nil, nil
	case OutputStop:
		return nil, in.fault(BadContext, "Can only use {name:U} inside a procedure", map[string]any{"name": "OUTPUT"})
	case ThrowStop:
		if fold(s.Tag) == "error" {
			msg := "Error"
			if s.Result != nil {
				msg = Text(s.Result)
			}
			return nil, in.fault(UserError, "{message}", map[string]any{"message": msg})
		}
		return nil, in.fault(NoCatch, "No CATCH for tag {tag}", map[string]any{"tag": s.Tag})
	}
	return v, err
}

// Snapshot captures the turtle state.
func (in *Interp) Snapshot() turtle.State {
	return in.turtle.Snapshot()
}

// Restore replaces the turtle state with a snapshot.
func (in *Interp) Restore(s turtle.State) {
	in.turtle.Restore(s)
}

// push records a procedure activation on the call stack.
func (in *Interp) push(name string, user bool) {
	in.stack = append(in.stack, activation{name, user})
}

func (in *Interp) pop() {
	in.stack = in.stack[:len(in.stack)-1]
}

// currentProc returns the name of the innermost active procedure.
func (in *Interp) currentProc() string {
	if len(in.stack) == 0 {
		return ""
	}
	return in.stack[len(in.stack)-1].name
}

// currentUserProc returns the name of the innermost active user procedure.
func (in *Interp) currentUserProc() string {
	for i := len(in.stack) - 1; i >= 0; i-- {
		if in.stack[i].user {
			return in.stack[i].name
		}
	}
	return ""
}

// inProcedure reports whether a user procedure is running.
func (in *Interp) inProcedure() bool {
	return in.currentUserProc() != ""
}

// keyword reports whether an atom is the given keyword, ELSE or END, in any
// case or through the localizer.
func (in *Interp) keyword(v Value, kw string) bool {
	w, ok := v.(Word)
	if !ok {
		return false
	}
	up := upper(w.String())
	if up == kw {
		return true
	}
	if in.localizer != nil {
		if k, ok := in.localizer.Keyword(up); ok {
			return k == kw
		}
	}
	return false
}
