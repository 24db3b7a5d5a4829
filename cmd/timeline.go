package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/schedule"
	"github.com/crewtide/crewplan/internal/watcher"
)

var timelineCmd = &cobra.Command{
	Use:     "timeline",
	Aliases: []string{"gantt"},
	Short:   "Render the timeline",
	Long: `Renders the Gantt-style timeline: per owner, overlapping items stack
into separate lanes so nothing collides.

Use --watch to keep the display live-updating. The chart re-renders
whenever the plan file changes on disk. Press Ctrl+C to stop.`,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().BoolP("watch", "w", false, "live-update on plan file changes")
	timelineCmd.Flags().Int("width", 0, "bar canvas width in characters")
	timelineCmd.Flags().Bool("subtasks", false, "render sub-timelines under tasks with subtasks")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	subs, _ := cmd.Flags().GetBool("subtasks")
	watch, _ := cmd.Flags().GetBool("watch")
	opts := output.GanttOptions{Width: width, ShowSubtasks: subs}

	if err := renderTimeline(cfg, opts); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	w, err := watcher.New([]string{cfg.Dir()}, func() {
		fmt.Print("\033[H\033[2J") // clear screen before re-render
		if err := renderTimeline(cfg, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	w.Run(ctx, func(err error) {
		fmt.Fprintln(os.Stderr, "watch error:", err)
	})
	return nil
}

func renderTimeline(cfg *config.Config, opts output.GanttOptions) error {
	reg := cfg.Registry()
	_, _, view, err := loadView()
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, schedule.Compute(view, reg))
	}
	output.Gantt(os.Stdout, view, reg, opts)
	return nil
}
