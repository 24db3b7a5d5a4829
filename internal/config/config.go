package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/member"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no crewplan project found (run 'crewplan init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents a crewplan project configuration.
type Config struct {
	Version       int             `yaml:"version"`
	Project       ProjectConfig   `yaml:"project"`
	PlanFile      string          `yaml:"plan_file"`
	MaterialsFile string          `yaml:"materials_file"`
	Members       []member.Member `yaml:"members"`
	Defaults      DefaultsConfig  `yaml:"defaults"`
	TUI           TUIConfig       `yaml:"tui,omitempty"`

	// dir is the absolute path to the crewplan directory (not serialized).
	dir string `yaml:"-"`
}

// ProjectConfig holds project metadata.
type ProjectConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Owner string `yaml:"owner"`
}

// TUIConfig holds timeline TUI display settings.
type TUIConfig struct {
	ShowSubtasks bool `yaml:"show_subtasks,omitempty"`
}

// Dir returns the absolute path to the crewplan directory.
func (c *Config) Dir() string {
	return c.dir
}

// PlanPath returns the absolute path to the plan file.
func (c *Config) PlanPath() string {
	return filepath.Join(c.dir, c.PlanFile)
}

// MaterialsPath returns the absolute path to the materials file.
func (c *Config) MaterialsPath() string {
	return filepath.Join(c.dir, c.MaterialsFile)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LockPath returns the path of the advisory lock guarding plan mutations.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, ".lock")
}

// SetDir sets the crewplan directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// NewDefault creates a Config with default values and the built-in roster.
func NewDefault(name string) *Config {
	return &Config{
		Version:       CurrentVersion,
		Project:       ProjectConfig{Name: name},
		PlanFile:      DefaultPlanFile,
		MaterialsFile: DefaultMaterialsFile,
		Members:       append([]member.Member{}, member.Defaults...),
		Defaults:      DefaultsConfig{Owner: DefaultOwner},
	}
}

// Registry builds the process-wide member registry from the configured
// roster. Loaded once at startup and treated as read-only afterwards.
func (c *Config) Registry() *member.Registry {
	return member.NewRegistry(c.Members)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Project.Name == "" {
		return fmt.Errorf("%w: project.name is required", ErrInvalid)
	}
	if c.PlanFile == "" {
		return fmt.Errorf("%w: plan_file is required", ErrInvalid)
	}
	if c.MaterialsFile == "" {
		return fmt.Errorf("%w: materials_file is required", ErrInvalid)
	}
	if len(c.Members) == 0 {
		return fmt.Errorf("%w: at least 1 member is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Members))
	for _, m := range c.Members {
		if m.ID == "" {
			return fmt.Errorf("%w: member id is required", ErrInvalid)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate member id %q", ErrInvalid, m.ID)
		}
		seen[m.ID] = true
		if m.Label == "" {
			return fmt.Errorf("%w: member %q label is required", ErrInvalid, m.ID)
		}
		if m.Color == "" {
			return fmt.Errorf("%w: member %q color is required", ErrInvalid, m.ID)
		}
	}
	if !seen[c.Defaults.Owner] {
		return fmt.Errorf("%w: default owner %q not in members list", ErrInvalid, c.Defaults.Owner)
	}
	return nil
}

// Init creates a new crewplan project in the given directory with default
// settings. It creates the directory and config file.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.PlanAlreadyExists,
			"crewplan project already exists at %s", absDir)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating crewplan directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given crewplan directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a crewplan directory
// containing config.yml. Returns the absolute path to the directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the crewplan directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.PlanNotFound,
				"no crewplan project found (run 'crewplan init' to create one)")
		}
		dir = parent
	}
}
