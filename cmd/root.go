// Package cmd implements the crewplan CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/filelock"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "crewplan",
	Short: "Schedule and visualize crew tasks on a timeline",
	Long: `crewplan manages a small crew's schedule: tasks with nested subtasks,
owned by team members, laid out on a Gantt-style timeline and a
day-by-day view. Run crewplan without arguments to open the live timeline.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		noColor := flagNoColor || os.Getenv("NO_COLOR") != ""
		if !noColor && termenv.NewOutput(os.Stdout).ColorProfile() == termenv.Ascii {
			noColor = true
		}
		if noColor {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to crewplan directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("CREWPLAN_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, errKind(cliErr), cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, "internal", err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the crewplan directory from --dir or upward search.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	return config.FindDir(".")
}

// loadConfig resolves and loads the project config.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

// loadView loads the config, registry, and a plan snapshot for reads.
func loadView() (*config.Config, *member.Registry, plan.View, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, plan.View{}, err
	}
	reg := cfg.Registry()
	store, err := plan.Load(cfg.PlanPath(), reg)
	if err != nil {
		return nil, nil, plan.View{}, err
	}
	return cfg, reg, store.Snapshot(), nil
}

// withPlan runs a mutation against the locked plan file. The store's
// change notification marks the plan dirty; the file is flushed back only
// after a committed mutation, so a rejected operation leaves it untouched.
func withPlan(fn func(cfg *config.Config, reg *member.Registry, store *plan.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unlock, err := filelock.Lock(cfg.LockPath())
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	reg := cfg.Registry()
	store, err := plan.Load(cfg.PlanPath(), reg)
	if err != nil {
		return err
	}

	dirty := false
	store.Subscribe(func() { dirty = true })

	if err := fn(cfg, reg, store); err != nil {
		return err
	}

	if dirty {
		if err := plan.Save(cfg.PlanPath(), store.Snapshot()); err != nil {
			return fmt.Errorf("writing plan: %w", err)
		}
	}
	return nil
}

// errKind maps an error code to its envelope family.
func errKind(e *clierr.Error) string {
	switch {
	case e.IsValidation():
		return "validation"
	case e.IsNotFound():
		return "not_found"
	case e.Code == clierr.InternalError:
		return "internal"
	}
	return ""
}

// outputFormat returns the active output format for the current flags.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// parseID parses a numeric id argument.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, clierr.Newf(clierr.InvalidTaskID, "invalid id %q", s).
			WithDetails(map[string]any{"input": s})
	}
	return id, nil
}

// invalidDate wraps a time parse failure as a structured error.
func invalidDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s: %v", field, err).
		WithDetails(map[string]any{"field": field, "input": input})
}
