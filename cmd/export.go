package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/schedule"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan as CSV",
	Long: `Flattens the plan into CSV rows: one row per task, followed by one
row per subtask. The same plan always produces the identical file, and
an exported file re-imports without loss.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to FILE instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	_, _, view, err := loadView()
	if err != nil {
		return err
	}

	rows := schedule.Rows(view)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, rows)
	}

	dest, _ := cmd.Flags().GetString("output")
	if dest == "" {
		return schedule.WriteCSV(os.Stdout, rows)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()
	if err := schedule.WriteCSV(f, rows); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	output.Messagef(os.Stderr, "Exported %d rows to %s", len(rows), dest)
	return nil
}
