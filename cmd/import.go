package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/filelock"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
	"github.com/crewtide/crewplan/internal/schedule"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a plan from CSV",
	Long: `Replaces the current plan with the tasks from an exported CSV file.
The whole file is validated before anything is written: a bad row
leaves the existing plan untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	rows, err := schedule.ReadCSV(f)
	if err != nil {
		return err
	}
	tasks, err := schedule.Tasks(rows)
	if err != nil {
		return err
	}

	unlock, err := filelock.Lock(cfg.LockPath())
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	reg := cfg.Registry()
	store, err := plan.Hydrate(reg, tasks)
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		cur, err := plan.Load(cfg.PlanPath(), reg)
		if err == nil && cur.Snapshot().Len() > 0 {
			prompt := fmt.Sprintf("Replace %d existing tasks with %d imported tasks",
				cur.Snapshot().Len(), len(tasks))
			if err := confirm(prompt); err != nil {
				return err
			}
		}
	}

	if err := plan.Save(cfg.PlanPath(), store.Snapshot()); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"imported": len(tasks)})
	}
	output.Messagef(os.Stdout, "Imported %d tasks from %s", len(tasks), args[0])
	return nil
}
