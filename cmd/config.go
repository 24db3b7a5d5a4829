package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify project configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved project directory",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"project.name": {
			get:      func(c *config.Config) any { return c.Project.Name },
			set:      func(c *config.Config, v string) error { c.Project.Name = v; return nil },
			writable: true,
		},
		"project.description": {
			get:      func(c *config.Config) any { return c.Project.Description },
			set:      func(c *config.Config, v string) error { c.Project.Description = v; return nil },
			writable: true,
		},
		"plan_file": {
			get: func(c *config.Config) any { return c.PlanFile },
		},
		"materials_file": {
			get: func(c *config.Config) any { return c.MaterialsFile },
		},
		"members": {
			get: func(c *config.Config) any { return c.Members },
		},
		"defaults.owner": {
			get: func(c *config.Config) any { return c.Defaults.Owner },
			set: func(c *config.Config, v string) error {
				if _, err := c.Registry().Lookup(v); err != nil {
					return err
				}
				c.Defaults.Owner = v
				return nil
			},
			writable: true,
		},
		"tui.show_subtasks": {
			get: func(c *config.Config) any { return c.TUI.ShowSubtasks },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidStatus,
						"invalid tui.show_subtasks %q: must be true or false", v)
				}
				c.TUI.ShowSubtasks = b
				return nil
			},
			writable: true,
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"project.name",
		"project.description",
		"plan_file",
		"materials_file",
		"members",
		"defaults.owner",
		"tui.show_subtasks",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-22s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidStatus, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidStatus, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidStatus, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"dir": cfg.Dir()})
	}
	fmt.Fprintln(os.Stdout, cfg.Dir())
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []member.Member:
		parts := make([]string, len(v))
		for i, m := range v {
			parts[i] = m.ID
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
