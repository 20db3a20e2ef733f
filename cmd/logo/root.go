package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/logo"
	"github.com/zephyrtronium/logo/internal/config"
)

// env is what every command gets from the root command.
type env struct {
	cfg *config.Config
	log *slog.Logger
	// trace logs each drawing operation.
	trace bool
}

type envKey struct{}

func envFrom(ctx context.Context) *env {
	e, _ := ctx.Value(envKey{}).(*env)
	if e == nil {
		panic("logo: command run without config")
	}
	return e
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		trace   bool
	)
	root := &cobra.Command{
		Use:   "logo",
		Short: "Logo interpreter with turtle graphics",
		Long: `logo runs programs in the Logo language, drawing turtle graphics as
they go. With no command, it starts an interactive session.`,
		Version: logo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			if trace {
				level = min(level, slog.LevelDebug)
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if cfg.File != "" {
				log.Debug("using config file", slog.String("path", cfg.File))
			}
			e := &env{cfg: cfg, log: log, trace: trace}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, e))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.New("use 'logo run' to run files")
			}
			return runRepl(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	f := root.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default: ./logo.yaml)")
	f.BoolVar(&trace, "trace", false, "log every drawing operation")
	f.Float64("width", 0, "viewport width")
	f.Float64("height", 0, "viewport height")
	f.String("turtle-mode", "", "boundary policy (wrap|fence|window)")
	f.String("library", "", "SQLite file that keeps procedure definitions")
	f.String("locale", "", "built-in locale name or path of a locale table")
	f.String("history-file", "", "REPL history file")
	f.Duration("yield-interval", 0, "how often a running program lets the host look at it")
	f.Int("max-depth", 0, "deepest allowed procedure nesting")
	f.Bool("redefine-primitives", false, "allow TO and DEFINE to replace primitives")
	f.String("log-level", "", "log level (debug|info|warn|error)")

	_ = root.RegisterFlagCompletionFunc("turtle-mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"wrap", "fence", "window"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newVersionCommand(logo.Version))
	root.AddCommand(newReplCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newProcsCommand())
	return root
}
