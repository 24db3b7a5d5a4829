package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

var addCmd = &cobra.Command{
	Use:     "add [NAME]",
	Aliases: []string{"create"},
	Short:   "Add a new task",
	Long: `Adds a task to the plan with the given name, owner, and interval.

Name can be provided as a positional argument or via --name flag.
Start and end use the YYYY-MM-DDTHH:MM format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("name", "", "task name (alternative to positional argument)")
	addCmd.Flags().String("owner", "", "owner member id (default from config)")
	addCmd.Flags().String("start", "", "start time (YYYY-MM-DDTHH:MM)")
	addCmd.Flags().String("end", "", "end time (YYYY-MM-DDTHH:MM)")
	addCmd.Flags().String("notes", "", "free-form markdown notes")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "assignee":
			name = "owner"
		case "description":
			name = "notes"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withPlan(func(cfg *config.Config, _ *member.Registry, store *plan.Store) error {
		name, err := resolveName(cmd, args)
		if err != nil {
			return err
		}
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			owner = cfg.Defaults.Owner
		}

		iv, err := intervalFromFlags(cmd)
		if err != nil {
			return err
		}

		t, err := store.AddTask(name, owner, iv)
		if err != nil {
			return err
		}

		notes, _ := cmd.Flags().GetString("notes")
		if notes != "" {
			t, err = store.EditTask(t.ID, plan.TaskPatch{Notes: &notes})
			if err != nil {
				return err
			}
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Name)
		output.Messagef(os.Stdout, "  Owner: %s | %s", t.Owner, t.Interval)
		return nil
	})
}

// resolveName returns the name from the positional argument or --name flag.
func resolveName(cmd *cobra.Command, args []string) (string, error) {
	name, _ := cmd.Flags().GetString("name")
	if len(args) == 1 {
		if name != "" {
			return "", clierr.New(clierr.EmptyName, "name given both as argument and --name")
		}
		name = args[0]
	}
	if name == "" {
		return "", clierr.New(clierr.EmptyName, "task name is required")
	}
	return name, nil
}

// intervalFromFlags parses the required --start/--end pair.
func intervalFromFlags(cmd *cobra.Command) (interval.Interval, error) {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	if start == "" || end == "" {
		return interval.Interval{}, clierr.New(clierr.InvalidDate,
			"--start and --end are required (YYYY-MM-DDTHH:MM)")
	}
	return interval.Parse(start, end)
}
