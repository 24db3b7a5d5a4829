package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Deletes a task and all of its subtasks. Prompts for confirmation
in interactive mode unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	return withPlan(func(_ *config.Config, _ *member.Registry, store *plan.Store) error {
		t, ok := store.Snapshot().Task(id)
		if !ok {
			return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
				WithDetails(map[string]any{"id": id})
		}

		if !yes {
			prompt := fmt.Sprintf("Delete task #%d (%s)", t.ID, t.Name)
			if n := len(t.Subtasks); n > 0 {
				prompt = fmt.Sprintf("%s and %d subtask(s)", prompt, n)
			}
			if err := confirm(prompt); err != nil {
				return err
			}
		}

		if err := store.DeleteTask(id); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"deleted": id})
		}
		output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Name)
		return nil
	})
}

// confirm asks for interactive confirmation on stdin. Non-TTY callers
// must pass --yes instead.
func confirm(prompt string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s? [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return clierr.New(clierr.ConfirmationReq, "confirmation aborted")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	}
	return &clierr.SilentError{Code: 1}
}
