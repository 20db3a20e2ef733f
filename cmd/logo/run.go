package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Eval  []string
	SVG   string
	Watch bool
}

func newRunCommand() *cobra.Command {
	opts := &RunOptions{}
	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Run Logo programs",
		Long: `Run each file as a Logo program, in order, in one workspace, so that
later files can use procedures defined by earlier ones. Programs read
input from stdin.

With --watch, files are run again whenever they change, until interrupted.`,
		Example: `  logo run shapes.lg --svg shapes.svg
  logo run -e 'repeat 4 [fd 100 rt 90]' --svg square.svg
  logo run --watch spiral.lg --svg spiral.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(opts.Eval) == 0 {
				return errors.New("nothing to run; name a file or use -e")
			}
			if opts.Watch && len(args) == 0 {
				return errors.New("--watch needs files to watch")
			}
			return runPrograms(cmd, args, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.Eval, "eval", "e", nil, "run instructions after the files (repeatable)")
	cmd.Flags().StringVar(&opts.SVG, "svg", "", "save the drawing to an SVG file after each program")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "run files again when they change")
	return cmd
}

func runPrograms(cmd *cobra.Command, files []string, opts *RunOptions) error {
	e := envFrom(cmd.Context())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	c := newConsole(lineScanner{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}, cmd.OutOrStdout(), false)
	s, err := openSession(ctx, e, c)
	if err != nil {
		return err
	}
	defer s.Close()

	var errs []error
	for _, file := range files {
		if ctx.Err() != nil {
			return errors.Join(errs...)
		}
		errs = append(errs, s.runFile(ctx, file, opts.SVG))
	}
	for i, text := range opts.Eval {
		if ctx.Err() != nil {
			return errors.Join(errs...)
		}
		if err := s.runText(ctx, text, opts.SVG); err != nil {
			errs = append(errs, fmt.Errorf("-e #%d: %w", i+1, err))
		}
	}
	if !opts.Watch {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		if err != nil {
			c.Error(err)
		}
	}
	return s.watch(ctx, c, files, opts.SVG)
}

// runFile runs one file.
func (s *session) runFile(ctx context.Context, file, svg string) error {
	text, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	s.log.DebugContext(ctx, "running file", slog.String("file", file))
	if err := s.runText(ctx, string(text), svg); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

// runText runs a program and saves the drawing it leaves, even if the
// program failed.
func (s *session) runText(ctx context.Context, text, svg string) error {
	err := s.run(ctx, text)
	if svg != "" {
		if err := s.writeSVG(context.Background(), svg); err != nil {
			return err
		}
	}
	return err
}

// watch runs files again when they are written, until ctx ends.
func (s *session) watch(ctx context.Context, c *console, files []string, svg string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files rather than write them, so watch the
	// directories.
	want := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		want[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", f, err)
		}
	}

	changed := make(chan string)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		timers := make(map[string]*time.Timer)
		for {
			select {
			case <-egctx.Done():
				for _, t := range timers {
					t.Stop()
				}
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return errors.New("watcher closed")
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !want[event.Name] {
					continue
				}
				if t := timers[event.Name]; t != nil {
					t.Stop()
				}
				name := event.Name
				timers[name] = time.AfterFunc(100*time.Millisecond, func() {
					select {
					case changed <- name:
					case <-egctx.Done():
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return errors.New("watcher closed")
				}
				s.log.ErrorContext(egctx, "watcher error", slog.Any("err", err))
			}
		}
	})
	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case name := <-changed:
				s.log.InfoContext(egctx, "file changed", slog.String("file", name))
				if err := s.runFile(egctx, name, svg); err != nil {
					c.Error(err)
				}
			}
		}
	})
	return eg.Wait()
}
