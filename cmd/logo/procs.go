package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gitlab.com/variadico/lctime"

	"github.com/zephyrtronium/logo/internal/library"
)

// timeFormat is how the procs commands show times. Names of days and months
// follow LC_TIME.
const timeFormat = "%Y-%m-%d %H:%M"

func newProcsCommand() *cobra.Command {
	var erased bool
	cmd := &cobra.Command{
		Use:   "procs",
		Short: "Manage the procedure library",
		Long: `List the procedures kept in the library. Procedures are added to the
library when they are defined in a session that uses it, and removed when
they are erased.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Library) error {
				if erased {
					return listErased(ctx, cmd.OutOrStdout(), lib)
				}
				return listProcs(ctx, cmd.OutOrStdout(), lib)
			})
		},
	}
	cmd.Flags().BoolVar(&erased, "erased", false, "list erased procedures instead, most recent first")

	cmd.AddCommand(&cobra.Command{
		Use:   "show name...",
		Short: "Print procedure definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Library) error {
				for _, name := range args {
					e, err := lib.Get(ctx, name)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), e.Text)
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export file",
		Short: "Write every procedure to a Logo source file",
		Long:  `Write every procedure to a Logo source file that 'logo run' can load. Use - for stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Library) error {
				if args[0] == "-" {
					return exportProcs(ctx, cmd.OutOrStdout(), lib, time.Now())
				}
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := exportProcs(ctx, f, lib, time.Now()); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "erase name...",
		Short: "Remove procedures from the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Library) error {
				var errs []error
				for _, name := range args {
					errs = append(errs, lib.Delete(ctx, name))
				}
				return errors.Join(errs...)
			})
		},
	})
	return cmd
}

// withLibrary opens the configured library for the duration of fn.
func withLibrary(cmd *cobra.Command, fn func(context.Context, *library.Library) error) error {
	e := envFrom(cmd.Context())
	if e.cfg.Library == "" {
		return errors.New("no library configured; set library in logo.yaml, LOGO_LIBRARY, or --library")
	}
	ctx := cmd.Context()
	lib, err := library.Open(ctx, e.cfg.Library, e.log)
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()
	return fn(ctx, lib)
}

func listProcs(ctx context.Context, w io.Writer, lib *library.Library) error {
	entries, err := lib.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(no procedures)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Inputs", "Lines", "Created", "Updated"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, inputs(e.Text), strings.Count(e.Text, "\n") + 1,
			lctime.Strftime(timeFormat, e.Created), lctime.Strftime(timeFormat, e.Updated)})
	}
	t.Render()
	return nil
}

func listErased(ctx context.Context, w io.Writer, lib *library.Library) error {
	erasures, err := lib.Erased(ctx)
	if err != nil {
		return err
	}
	if len(erasures) == 0 {
		_, _ = fmt.Fprintln(w, "(no erased procedures)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Inputs", "Erased"})
	for _, e := range erasures {
		t.AppendRow(table.Row{e.Name, inputs(e.Text), lctime.Strftime(timeFormat, e.Erased)})
	}
	t.Render()
	return nil
}

// inputs returns the input list from the title line of a definition.
func inputs(text string) string {
	title, _, _ := strings.Cut(text, "\n")
	fields := strings.Fields(title)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[2:], " ")
}

func exportProcs(ctx context.Context, w io.Writer, lib *library.Library, now time.Time) error {
	entries, err := lib.List(ctx)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(lctime.Strftime("; Procedure library exported %A, %d %B %Y at %H:%M\n", now))
	fmt.Fprintf(&b, "; %d procedures\n", len(entries))
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}
