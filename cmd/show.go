package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task including subtasks and rendered notes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	_, reg, view, err := loadView()
	if err != nil {
		return err
	}

	t, ok := view.Task(id)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
			WithDetails(map[string]any{"id": id})
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, []plan.Task{t})
		return nil
	}

	output.TaskDetail(os.Stdout, t, reg)

	if t.Notes != "" {
		rendered, err := glamour.Render(t.Notes, "auto")
		if err != nil {
			// Fall back to the raw notes rather than failing the command.
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, t.Notes)
			return nil
		}
		fmt.Fprint(os.Stdout, rendered)
	}
	return nil
}
