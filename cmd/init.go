package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a new crewplan project",
	Long: `Creates a crewplan directory with a default config and an empty plan.
DIR defaults to ./crewplan. Use --seed to start from the demo schedule.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "crewplan", "project name")
	initCmd.Flags().Bool("seed", false, "pre-populate the plan with the demo schedule")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := filepath.Join(".", config.DefaultDir)
	if len(args) == 1 {
		dir = args[0]
	}
	name, _ := cmd.Flags().GetString("name")
	seed, _ := cmd.Flags().GetBool("seed")

	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}

	store := plan.NewStore(cfg.Registry())
	if seed {
		store, err = plan.Seed(cfg.Registry())
		if err != nil {
			return err
		}
	}
	if err := plan.Save(cfg.PlanPath(), store.Snapshot()); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"dir":   cfg.Dir(),
			"name":  cfg.Project.Name,
			"tasks": store.Len(),
		})
	}
	output.Messagef(os.Stdout, "Initialized crewplan project %q in %s", cfg.Project.Name, cfg.Dir())
	if seed {
		output.Messagef(os.Stdout, "  Seeded %d demo tasks", store.Len())
	}
	return nil
}
