package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/filelock"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/material"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

var materialCmd = &cobra.Command{
	Use:     "material",
	Aliases: []string{"mat"},
	Short:   "Track materials for tasks",
	Long: `Tracks the materials tasks need through a pipeline:
Needed, Ordered, Onsite, On Hand. Each material is tied to a task and
carries a needed-by deadline, defaulting to the task's start.`,
}

var materialAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a material",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialAdd,
}

var materialListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List materials grouped by status",
	RunE:    runMaterialList,
}

var materialMoveCmd = &cobra.Command{
	Use:   "move ID",
	Short: "Advance a material to the next status",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialMove,
}

var materialDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a material",
	Args:    cobra.ExactArgs(1),
	RunE:    runMaterialDelete,
}

func init() {
	materialAddCmd.Flags().IntP("task", "t", 0, "task id the material is for (required)")
	materialAddCmd.Flags().IntP("qty", "q", 1, "quantity")
	materialAddCmd.Flags().String("unit", "pcs", "unit of measure")
	materialAddCmd.Flags().String("needed-by", "", "deadline (YYYY-MM-DDTHH:MM, default task start)")
	materialAddCmd.Flags().Bool("delivered", false, "get delivered instead of pick-up")
	materialAddCmd.Flags().String("responsible", "", "responsible member id")
	materialAddCmd.Flags().String("supplier", "", "supplier name")
	_ = materialAddCmd.MarkFlagRequired("task")

	materialListCmd.Flags().String("status", "", "show only one pipeline status")
	materialDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	materialCmd.AddCommand(materialAddCmd, materialListCmd, materialMoveCmd, materialDeleteCmd)
	rootCmd.AddCommand(materialCmd)
}

// withMaterials runs a mutation against the locked materials file.
func withMaterials(fn func(cfg *config.Config, view plan.View, store *material.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unlock, err := filelock.Lock(cfg.LockPath())
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	reg := cfg.Registry()
	planStore, err := plan.Load(cfg.PlanPath(), reg)
	if err != nil {
		return err
	}
	store, err := material.Load(cfg.MaterialsPath(), reg)
	if err != nil {
		return err
	}

	if err := fn(cfg, planStore.Snapshot(), store); err != nil {
		return err
	}

	return material.Save(cfg.MaterialsPath(), store.Snapshot())
}

func runMaterialAdd(cmd *cobra.Command, args []string) error {
	return withMaterials(func(_ *config.Config, view plan.View, store *material.Store) error {
		taskID, _ := cmd.Flags().GetInt("task")
		t, ok := view.Task(taskID)
		if !ok {
			return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", taskID).
				WithDetails(map[string]any{"id": taskID})
		}

		neededBy := t.Start
		if s, _ := cmd.Flags().GetString("needed-by"); s != "" {
			var err error
			if neededBy, err = interval.ParseTime(s); err != nil {
				return invalidDate("needed-by", s, err)
			}
		}

		qty, _ := cmd.Flags().GetInt("qty")
		unit, _ := cmd.Flags().GetString("unit")
		delivered, _ := cmd.Flags().GetBool("delivered")
		responsible, _ := cmd.Flags().GetString("responsible")
		supplier, _ := cmd.Flags().GetString("supplier")

		delivery := material.DeliveryPickup
		if delivered {
			delivery = material.DeliveryDelivered
		}

		m, err := store.Add(material.Material{
			Name:        args[0],
			TaskID:      taskID,
			NeededBy:    neededBy,
			Quantity:    qty,
			Unit:        unit,
			Delivery:    delivery,
			Responsible: responsible,
			Supplier:    supplier,
		})
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, m)
		}
		output.Messagef(os.Stdout, "Added material #%d: %d %s %s (for task #%d)",
			m.ID, m.Quantity, m.Unit, m.Name, m.TaskID)
		return nil
	})
}

func runMaterialList(cmd *cobra.Command, _ []string) error {
	cfg, reg, view, err := loadView()
	if err != nil {
		return err
	}
	store, err := material.Load(cfg.MaterialsPath(), reg)
	if err != nil {
		return err
	}

	items := store.Snapshot()
	if status, _ := cmd.Flags().GetString("status"); status != "" {
		filtered := items[:0]
		found := false
		for _, s := range material.Statuses() {
			if s == status {
				found = true
			}
		}
		if !found {
			return clierr.Newf(clierr.InvalidStatus, "invalid status %q", status).
				WithDetails(map[string]any{"status": status, "allowed": material.Statuses()})
		}
		for _, m := range items {
			if m.Status == status {
				filtered = append(filtered, m)
			}
		}
		items = filtered
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, items)
	}
	output.MaterialBoard(os.Stdout, items, view, reg)
	return nil
}

func runMaterialMove(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withMaterials(func(_ *config.Config, _ plan.View, store *material.Store) error {
		m, err := store.Advance(id)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, m)
		}
		output.Messagef(os.Stdout, "Material #%d is now %s", m.ID, m.Status)
		return nil
	})
}

func runMaterialDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	return withMaterials(func(_ *config.Config, _ plan.View, store *material.Store) error {
		if !yes {
			if err := confirm("Delete material #" + args[0]); err != nil {
				return err
			}
		}
		if err := store.Delete(id); err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"deleted": id})
		}
		output.Messagef(os.Stdout, "Deleted material #%d", id)
		return nil
	})
}
