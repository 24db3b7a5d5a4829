package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/schedule"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show the day-by-day breakdown",
	Long: `Groups the schedule by calendar day: each day lists the active team
and every task or subtask touching it. With --from/--to, every day in
the range is shown, including empty ones.`,
	RunE: runDays,
}

func init() {
	daysCmd.Flags().String("from", "", "range start (YYYY-MM-DD)")
	daysCmd.Flags().String("to", "", "range end (YYYY-MM-DD)")
	rootCmd.AddCommand(daysCmd)
}

func runDays(cmd *cobra.Command, _ []string) error {
	_, reg, view, err := loadView()
	if err != nil {
		return err
	}

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	var buckets []schedule.DayBucket
	switch {
	case fromStr == "" && toStr == "":
		buckets = schedule.Project(view, reg)
	case fromStr != "" && toStr != "":
		from, err := date.Parse(fromStr)
		if err != nil {
			return invalidDate("from", fromStr, err)
		}
		to, err := date.Parse(toStr)
		if err != nil {
			return invalidDate("to", toStr, err)
		}
		buckets, err = schedule.ProjectRange(view, reg, from, to)
		if err != nil {
			return err
		}
	default:
		return clierr.New(clierr.InvalidRange, "--from and --to must be given together")
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, buckets)
	case output.FormatCompact:
		output.DayCompact(os.Stdout, buckets)
	default:
		output.DayView(os.Stdout, buckets, reg)
	}
	return nil
}
