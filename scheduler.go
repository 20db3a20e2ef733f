package logo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is the error of futures whose programs never ran because the
// scheduler was closed.
var ErrClosed = errors.New("logo: scheduler closed")

// Scheduler serializes programs submitted from any goroutine onto a single
// interpreter. Programs run one at a time, in submission order. Between
// programs and at the interpreter's yield points, the scheduler also runs
// host callbacks passed to Inspect.
type Scheduler struct {
	in  *Interp
	log *slog.Logger

	// mu guards queue and closed.
	mu     sync.Mutex
	queue  []*request
	closed bool
	// wake has a value whenever queue may be non-empty.
	wake chan struct{}

	inspect chan inspection
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// request is a queued program.
type request struct {
	text   string
	result bool
	f      *Future
}

// inspection is a host callback waiting for a yield point.
type inspection struct {
	fn   func(*Interp)
	done chan struct{}
}

// NewScheduler starts a scheduler that owns in. After this, in must only be
// used through the scheduler.
func NewScheduler(in *Interp) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		in:      in,
		log:     in.log,
		wake:    make(chan struct{}, 1),
		inspect: make(chan inspection),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	in.onYield = s.inspectAll
	go s.loop()
	return s
}

// Submit queues a program to run.
func (s *Scheduler) Submit(text string) *Future {
	return s.submit(text, false)
}

// SubmitEval queues a program whose future receives the value of its last
// expression.
func (s *Scheduler) SubmitEval(text string) *Future {
	return s.submit(text, true)
}

func (s *Scheduler) submit(text string, result bool) *Future {
	f := newFuture()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		f.resolve(nil, ErrClosed)
		return f
	}
	s.queue = append(s.queue, &request{text: text, result: result, f: f})
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return f
}

// Inspect runs fn against the interpreter at the next yield point of the
// running program, or between programs. It never runs concurrently with
// evaluation. Inspect returns once fn has run, or with ctx's error if ctx
// ends first, in which case fn may still run later.
func (s *Scheduler) Inspect(ctx context.Context, fn func(*Interp)) error {
	i := inspection{fn: fn, done: make(chan struct{})}
	select {
	case s.inspect <- i:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-i.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Bye stops the running program.
func (s *Scheduler) Bye() {
	s.in.Bye()
}

// Close stops the running program, fails every queued one with ErrClosed,
// and waits for the scheduler to finish.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	<-s.done
}

// inspectAll runs pending inspections. It is the interpreter's yield hook.
func (s *Scheduler) inspectAll() {
	for {
		select {
		case i := <-s.inspect:
			i.fn(s.in)
			close(i.done)
		default:
			return
		}
	}
}

// next removes the first queued request.
func (s *Scheduler) next() (*request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	r := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return r, true
}

func (s *Scheduler) loop() {
	defer close(s.done)
	for {
		if r, ok := s.next(); ok {
			s.run(r)
			continue
		}
		select {
		case <-s.wake:
		case i := <-s.inspect:
			i.fn(s.in)
			close(i.done)
		case <-s.ctx.Done():
			s.mu.Lock()
			q := s.queue
			s.queue = nil
			s.mu.Unlock()
			for _, r := range q {
				r.f.resolve(nil, ErrClosed)
			}
			return
		}
	}
}

func (s *Scheduler) run(r *request) {
	if s.ctx.Err() != nil {
		r.f.resolve(nil, ErrClosed)
		return
	}
	start := time.Now()
	s.log.DebugContext(s.ctx, "run started", slog.String("id", r.f.ID.String()))
	v, err := s.in.run(s.ctx, r.text, r.result)
	if errors.Is(err, context.Canceled) {
		err = ErrClosed
	}
	s.log.DebugContext(s.ctx, "run done", slog.String("id", r.f.ID.String()), slog.Duration("took", time.Since(start)), slog.Any("err", err))
	r.f.resolve(v, err)
}

// A Future is the eventual result of a submitted program.
type Future struct {
	// ID identifies the program in logs.
	ID uuid.UUID

	done  chan struct{}
	value Value
	err   error
}

func newFuture() *Future {
	return &Future{ID: uuid.New(), done: make(chan struct{})}
}

func (f *Future) resolve(v Value, err error) {
	f.value, f.err = v, err
	close(f.done)
}

// Done returns a channel that is closed when the program finishes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the program finishes or ctx ends, and returns the
// program's result.
func (f *Future) Wait(ctx context.Context) (Value, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
