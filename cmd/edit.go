package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task",
	Long: `Edits fields of an existing task. Only the given flags change;
everything else is kept. Shrinking the interval below an existing
subtask is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("name", "", "new task name")
	editCmd.Flags().String("owner", "", "new owner member id")
	editCmd.Flags().String("start", "", "new start time (YYYY-MM-DDTHH:MM)")
	editCmd.Flags().String("end", "", "new end time (YYYY-MM-DDTHH:MM)")
	editCmd.Flags().String("notes", "", "new markdown notes")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withPlan(func(_ *config.Config, _ *member.Registry, store *plan.Store) error {
		patch, err := taskPatchFromFlags(cmd, store, id)
		if err != nil {
			return err
		}

		t, err := store.EditTask(id, patch)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Name)
		return nil
	})
}

// taskPatchFromFlags builds a patch from the changed flags. A start or
// end alone is combined with the task's current opposite endpoint.
func taskPatchFromFlags(cmd *cobra.Command, store *plan.Store, id int) (plan.TaskPatch, error) {
	var patch plan.TaskPatch

	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		patch.Name = &v
	}
	if cmd.Flags().Changed("owner") {
		v, _ := cmd.Flags().GetString("owner")
		patch.Owner = &v
	}
	if cmd.Flags().Changed("notes") {
		v, _ := cmd.Flags().GetString("notes")
		patch.Notes = &v
	}

	if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
		cur, ok := store.Snapshot().Task(id)
		if !ok {
			// Let EditTask produce the canonical not-found error.
			return patch, nil
		}
		start, end := cur.Start, cur.End
		var err error
		if cmd.Flags().Changed("start") {
			v, _ := cmd.Flags().GetString("start")
			if start, err = interval.ParseTime(v); err != nil {
				return plan.TaskPatch{}, invalidDate("start", v, err)
			}
		}
		if cmd.Flags().Changed("end") {
			v, _ := cmd.Flags().GetString("end")
			if end, err = interval.ParseTime(v); err != nil {
				return plan.TaskPatch{}, invalidDate("end", v, err)
			}
		}
		iv, err := interval.New(start, end)
		if err != nil {
			return plan.TaskPatch{}, err
		}
		patch.Interval = &iv
	}

	return patch, nil
}
