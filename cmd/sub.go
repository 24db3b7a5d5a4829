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

var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage subtasks",
	Long: `Adds, edits, and deletes subtasks. A subtask's interval must lie
fully within its parent task's interval; out-of-bounds intervals are
rejected, not clamped.`,
}

var subAddCmd = &cobra.Command{
	Use:   "add TASKID NAME",
	Short: "Add a subtask under a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubAdd,
}

var subEditCmd = &cobra.Command{
	Use:   "edit TASKID SUBID",
	Short: "Edit a subtask",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubEdit,
}

var subDeleteCmd = &cobra.Command{
	Use:     "delete TASKID SUBID",
	Aliases: []string{"rm"},
	Short:   "Delete a subtask",
	Args:    cobra.ExactArgs(2),
	RunE:    runSubDelete,
}

func init() {
	for _, c := range []*cobra.Command{subAddCmd, subEditCmd} {
		c.Flags().String("owner", "", "owner member id")
		c.Flags().String("start", "", "start time (YYYY-MM-DDTHH:MM)")
		c.Flags().String("end", "", "end time (YYYY-MM-DDTHH:MM)")
		c.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
			if name == "assignee" {
				name = "owner"
			}
			return pflag.NormalizedName(name)
		})
	}
	subEditCmd.Flags().String("name", "", "new subtask name")
	subDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	subCmd.AddCommand(subAddCmd, subEditCmd, subDeleteCmd)
	rootCmd.AddCommand(subCmd)
}

func runSubAdd(cmd *cobra.Command, args []string) error {
	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	return withPlan(func(cfg *config.Config, _ *member.Registry, store *plan.Store) error {
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			// Subtasks default to the parent task's owner, not the
			// config default.
			if t, ok := store.Snapshot().Task(taskID); ok {
				owner = t.Owner
			} else {
				owner = cfg.Defaults.Owner
			}
		}

		iv, err := intervalFromFlags(cmd)
		if err != nil {
			return err
		}

		st, err := store.AddSubtask(taskID, name, owner, iv)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, st)
		}
		output.Messagef(os.Stdout, "Added subtask #%d under task #%d: %s", st.ID, taskID, st.Name)
		return nil
	})
}

func runSubEdit(cmd *cobra.Command, args []string) error {
	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	subID, err := parseID(args[1])
	if err != nil {
		return err
	}

	return withPlan(func(_ *config.Config, _ *member.Registry, store *plan.Store) error {
		patch, err := subtaskPatchFromFlags(cmd, store, taskID, subID)
		if err != nil {
			return err
		}

		st, err := store.EditSubtask(taskID, subID, patch)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, st)
		}
		output.Messagef(os.Stdout, "Updated subtask #%d: %s", st.ID, st.Name)
		return nil
	})
}

func runSubDelete(cmd *cobra.Command, args []string) error {
	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	subID, err := parseID(args[1])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	return withPlan(func(_ *config.Config, _ *member.Registry, store *plan.Store) error {
		t, ok := store.Snapshot().Task(taskID)
		if !ok {
			return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", taskID).
				WithDetails(map[string]any{"id": taskID})
		}
		st, ok := t.Subtask(subID)
		if !ok {
			return clierr.Newf(clierr.SubtaskNotFound,
				"subtask not found: #%d under task #%d", subID, taskID).
				WithDetails(map[string]any{"task_id": taskID, "subtask_id": subID})
		}

		if !yes {
			if err := confirm("Delete subtask #" + args[1] + " (" + st.Name + ")"); err != nil {
				return err
			}
		}

		if err := store.DeleteSubtask(taskID, subID); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"deleted": subID, "taskId": taskID})
		}
		output.Messagef(os.Stdout, "Deleted subtask #%d: %s", st.ID, st.Name)
		return nil
	})
}

// subtaskPatchFromFlags builds a patch from the changed flags, combining
// a lone --start or --end with the current opposite endpoint.
func subtaskPatchFromFlags(cmd *cobra.Command, store *plan.Store, taskID, subID int) (plan.SubtaskPatch, error) {
	var patch plan.SubtaskPatch

	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		patch.Name = &v
	}
	if cmd.Flags().Changed("owner") {
		v, _ := cmd.Flags().GetString("owner")
		patch.Owner = &v
	}

	if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
		t, ok := store.Snapshot().Task(taskID)
		if !ok {
			return patch, nil // EditSubtask reports the canonical error
		}
		cur, ok := t.Subtask(subID)
		if !ok {
			return patch, nil
		}
		start, end := cur.Start, cur.End
		var err error
		if cmd.Flags().Changed("start") {
			v, _ := cmd.Flags().GetString("start")
			if start, err = interval.ParseTime(v); err != nil {
				return plan.SubtaskPatch{}, invalidDate("start", v, err)
			}
		}
		if cmd.Flags().Changed("end") {
			v, _ := cmd.Flags().GetString("end")
			if end, err = interval.ParseTime(v); err != nil {
				return plan.SubtaskPatch{}, invalidDate("end", v, err)
			}
		}
		iv, err := interval.New(start, end)
		if err != nil {
			return plan.SubtaskPatch{}, err
		}
		patch.Interval = &iv
	}

	return patch, nil
}
