package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/logo"
)

const (
	prompt     = "? "
	morePrompt = "> "
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Each line runs as soon as it is complete;
a procedure definition runs once its END is typed. Press Ctrl-C to stop a
running program and Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	e := envFrom(cmd.Context())
	ctx := cmd.Context()
	if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		in := lineScanner{in: bufio.NewReader(cmd.InOrStdin())}
		c := newConsole(in, cmd.OutOrStdout(), false)
		return replLoop(ctx, e, c, in)
	}

	if e.cfg.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(e.cfg.HistoryFile), 0o750); err != nil {
			e.log.WarnContext(ctx, "history will not be saved", slog.Any("err", err))
		}
	}
	var s *session
	complete := readline.NewPrefixCompleter(readline.PcItemDynamic(func(string) []string {
		if s == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		return s.names(ctx)
	}))
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     e.cfg.HistoryFile,
		AutoComplete:    complete,
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to start REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	c := newConsole(lineEditor{rl: rl}, rl.Stdout(), true)
	_, _ = fmt.Fprintf(rl.Stdout(), "logo v%s. Ctrl-D or BYE to leave.\n", logo.Version)
	return replLoopWith(ctx, e, c, rl, &s)
}

// replLoop runs a REPL over plain input without line editing.
func replLoop(ctx context.Context, e *env, c *console, in lineReader) error {
	s, err := openSession(ctx, e, c)
	if err != nil {
		return err
	}
	defer s.Close()
	var buf strings.Builder
	for {
		line, err := in.ReadLine("")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if done := s.feed(ctx, c, &buf, line); done {
			break
		}
	}
	if strings.TrimSpace(buf.String()) != "" {
		s.exec(ctx, c, buf.String())
	}
	return nil
}

// replLoopWith runs a REPL with line editing. It publishes the session
// through sp for completion.
func replLoopWith(ctx context.Context, e *env, c *console, rl *readline.Instance, sp **session) error {
	s, err := openSession(ctx, e, c)
	if err != nil {
		return err
	}
	defer s.Close()
	*sp = s

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		done := s.feed(ctx, c, &buf, line)
		if done {
			break
		}
		if buf.Len() > 0 {
			rl.SetPrompt(morePrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
	return nil
}

// feed adds a line to buf and runs buf once it holds complete
// instructions. It reports whether the user asked to leave.
func (s *session) feed(ctx context.Context, c *console, buf *strings.Builder, line string) bool {
	if buf.Len() == 0 && strings.EqualFold(strings.TrimSpace(line), "bye") {
		return true
	}
	buf.WriteString(line)
	buf.WriteByte('\n')
	if pending(buf.String(), s.isEnd) {
		return false
	}
	text := buf.String()
	buf.Reset()
	if strings.TrimSpace(text) != "" {
		s.exec(ctx, c, text)
	}
	return false
}

// exec runs text, stopping it on an interrupt, and shows any error.
func (s *session) exec(ctx context.Context, c *console, text string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()
	if err := s.run(ctx, text); err != nil {
		c.Error(err)
	}
}

// isEnd reports whether a word closes a procedure definition.
func (s *session) isEnd(word string) bool {
	if strings.EqualFold(word, "end") {
		return true
	}
	if s.table == nil {
		return false
	}
	kw, ok := s.table.Keyword(strings.ToUpper(word))
	return ok && kw == "END"
}

// pending reports whether text stops inside a procedure definition, an open
// list, or a continued line, so that more lines are needed to run it.
func pending(text string, isEnd func(string) bool) bool {
	depth, open := 0, 0
	cont := false
	for _, line := range strings.Split(text, "\n") {
		line, _, _ = strings.Cut(line, ";")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cont = strings.HasSuffix(fields[len(fields)-1], "~")
		switch {
		case strings.EqualFold(fields[0], "to"):
			depth++
		case depth > 0 && len(fields) == 1 && isEnd(fields[0]):
			depth--
		}
		open += strings.Count(line, "[") - strings.Count(line, "]")
	}
	return depth > 0 || open > 0 || cont
}
