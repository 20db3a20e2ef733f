package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/zephyrtronium/logo"
	"github.com/zephyrtronium/logo/internal/library"
	"github.com/zephyrtronium/logo/internal/locale"
	"github.com/zephyrtronium/logo/turtle"
)

// session is an interpreter set up from the config, owned by a scheduler.
type session struct {
	log   *slog.Logger
	trace bool
	sched *logo.Scheduler
	lib   *library.Library
	table *locale.Table

	// rec and seen are only touched by the scheduler's goroutine.
	rec  *turtle.Recorder
	seen int
}

// openSession creates an interpreter talking to stream, translates it, and
// loads the procedure library into it.
func openSession(ctx context.Context, e *env, stream logo.Stream) (*session, error) {
	cfg := e.cfg
	s := &session{log: e.log, trace: e.trace, rec: &turtle.Recorder{}}
	opts := []logo.Option{
		logo.WithStream(stream),
		logo.WithSurface(s.rec),
		logo.WithViewport(cfg.Width, cfg.Height),
		logo.WithLogger(e.log),
		logo.WithYieldInterval(cfg.YieldInterval),
		logo.WithMaxDepth(cfg.MaxDepth),
		logo.WithRedefinePrimitives(cfg.RedefinePrimitives),
	}
	if cfg.Locale != "" {
		t, err := locale.Load(cfg.Locale)
		if err != nil {
			return nil, err
		}
		s.table = t
		opts = append(opts, logo.WithLocalizer(t))
	}
	if cfg.Library != "" {
		lib, err := library.Open(ctx, cfg.Library, e.log)
		if err != nil {
			return nil, err
		}
		s.lib = lib
		opts = append(opts, logo.WithSaver(lib))
	}

	in := logo.New(opts...)
	mode, err := cfg.Mode()
	if err != nil {
		s.closeLibrary()
		return nil, err
	}
	in.Turtle().SetMode(mode)
	if s.table != nil {
		if err := s.table.Install(ctx, in); err != nil {
			e.log.WarnContext(ctx, "some procedure names were not translated", slog.String("locale", s.table.Name), slog.Any("err", err))
		}
	}
	if s.lib != nil {
		n, err := s.lib.Load(ctx, in)
		if err != nil {
			s.closeLibrary()
			return nil, fmt.Errorf("failed to load library: %w", err)
		}
		e.log.DebugContext(ctx, "loaded library", slog.String("path", cfg.Library), slog.Int("procedures", n))
	}
	s.sched = logo.NewScheduler(in)
	return s, nil
}

func (s *session) closeLibrary() {
	if s.lib == nil {
		return
	}
	if err := s.lib.Close(); err != nil {
		s.log.Warn("failed to close library", slog.Any("err", err))
	}
}

// Close stops the interpreter and closes the library.
func (s *session) Close() {
	s.sched.Close()
	s.closeLibrary()
}

// run runs a program and waits for it. If ctx ends first, the program is
// stopped and run still waits for it to finish.
func (s *session) run(ctx context.Context, text string) error {
	f := s.sched.Submit(text)
	select {
	case <-f.Done():
	case <-ctx.Done():
		s.sched.Bye()
		<-f.Done()
	}
	_, err := f.Wait(context.Background())
	if serr := s.settle(context.Background()); serr != nil && err == nil {
		err = serr
	}
	return err
}

// settle logs the drawing done since the last call and forgets what a
// clear made invisible.
func (s *session) settle(ctx context.Context) error {
	return s.sched.Inspect(ctx, func(*logo.Interp) {
		if s.trace {
			for _, op := range s.rec.Ops[s.seen:] {
				s.log.DebugContext(ctx, "draw", slog.String("op", op.Kind.String()), slog.Any("detail", op))
			}
		}
		s.rec.Ops = visible(s.rec.Ops)
		s.seen = len(s.rec.Ops)
	})
}

// visible drops the operations before the last clear, keeping the latest
// scale change before it.
func visible(ops []turtle.Op) []turtle.Op {
	last := -1
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == turtle.ClearOp {
			last = i
			break
		}
	}
	if last <= 0 {
		return ops
	}
	var keep []turtle.Op
	for i := last - 1; i >= 0; i-- {
		if ops[i].Kind == turtle.TransformOp {
			keep = append(keep, ops[i])
			break
		}
	}
	return append(keep, ops[last:]...)
}

// writeSVG saves the current drawing.
func (s *session) writeSVG(ctx context.Context, path string) error {
	type drawing struct {
		ops  []turtle.Op
		w, h float64
		bg   turtle.Color
	}
	ch := make(chan drawing, 1)
	err := s.sched.Inspect(ctx, func(in *logo.Interp) {
		d := drawing{ops: slices.Clone(s.rec.Ops), bg: in.Turtle().Background()}
		d.w, d.h = in.Turtle().Size()
		ch <- d
	})
	if err != nil {
		return err
	}
	d := <-ch
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save drawing: %w", err)
	}
	if err := turtle.WriteSVG(f, d.ops, d.w, d.h, d.bg); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to save drawing: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save drawing: %w", err)
	}
	s.log.DebugContext(ctx, "saved drawing", slog.String("path", path), slog.Int("ops", len(d.ops)))
	return nil
}

// names lists procedure names for completion.
func (s *session) names(ctx context.Context) []string {
	ch := make(chan []string, 1)
	err := s.sched.Inspect(ctx, func(in *logo.Interp) {
		ch <- in.ProcedureNames()
	})
	if err != nil {
		return nil
	}
	return <-ch
}
