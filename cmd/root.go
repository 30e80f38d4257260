package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/wonder/internal/app"
	"github.com/abhisek/wonder/internal/config"
	"github.com/abhisek/wonder/internal/tui"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitInvalid  = 2
	ExitNotFound = 3
	ExitConflict = 4
)

// annotation that marks commands which do not need the engine.
const skipSetup = "wonder/skip-setup"

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own settings; the caller closes the runtime.
func newRootCmd() (*cobra.Command, *runtime) {
	rt := &runtime{v: viper.New()}

	root := &cobra.Command{
		Use:   "wonder",
		Short: "Explore a concept graph and quiz yourself on it",
		Long: "Wonder keeps a graph of concepts and their prerequisites, finds learning paths " +
			"through it, generates quizzes and matches people by shared interests.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return rt.setup(cmd.Context(), cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			noSplash, _ := cmd.Flags().GetBool("no-splash")
			return tui.Run(cmd.Context(), rt.engine, tui.Options{
				QuizCount: rt.cfg.QuizCount,
				Splash:    !noSplash,
			})
		},
	}
	root.Flags().Bool("no-splash", false, "Skip the welcome animation")

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a config file (YAML, TOML or JSON)")
	pf.String("db", "", "Path to the activity journal database (overrides WONDER_DB)")
	pf.String("catalog", "", "YAML catalog to load instead of the built-in one")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	for key, flag := range map[string]string{
		config.KeyConfig:   "config",
		config.KeyDB:       "db",
		config.KeyCatalog:  "catalog",
		config.KeyLogLevel: "log-level",
	} {
		_ = rt.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newConceptCmd(rt),
		newPathCmd(rt),
		newPrereqsCmd(rt),
		newDependentsCmd(rt),
		newSessionCmd(rt),
		newCurriculumCmd(rt),
		newQuizCmd(rt),
		newShareCmd(rt),
		newJournalCmd(rt),
		newVersionCmd(),
	)

	return root, rt
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, rt := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return ExitOK
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitInvalid
	}
	switch app.Classify(err) {
	case app.KindNone:
		return ExitOK
	case app.KindNotFound:
		return ExitNotFound
	case app.KindInvalid:
		return ExitInvalid
	case app.KindConflict:
		return ExitConflict
	default:
		return ExitInternal
	}
}

// usageError marks bad command-line input.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exactArgs is cobra.ExactArgs with errors mapped to ExitInvalid.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}
