package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/schedule"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks and their subtasks with optional filtering and sorting.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().String("owner", "", "filter by owner member id (tasks or subtasks)")
	listCmd.Flags().String("day", "", "filter by calendar day (YYYY-MM-DD)")
	listCmd.Flags().StringP("search", "s", "", "search task and subtask names (case-insensitive)")
	listCmd.Flags().String("sort", "id", "sort field ("+strings.Join(schedule.SortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	_, reg, view, err := loadView()
	if err != nil {
		return err
	}

	owner, _ := cmd.Flags().GetString("owner")
	dayStr, _ := cmd.Flags().GetString("day")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	if !slices.Contains(schedule.SortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidStatus, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(schedule.SortFields(), ", "))
	}
	if owner != "" && !reg.Has(owner) {
		if _, err := reg.Lookup(owner); err != nil {
			return err
		}
	}

	filter := schedule.FilterOptions{Owner: owner, Search: search}
	if dayStr != "" {
		d, err := date.Parse(dayStr)
		if err != nil {
			return invalidDate("day", dayStr, err)
		}
		filter.Day = &d
	}

	tasks := schedule.Filter(view, filter)
	schedule.Sort(tasks, sortBy, reverse, reg)
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks, reg)
	}
	return nil
}
