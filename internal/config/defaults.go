// Package config handles crewplan project configuration.
package config

const (
	// DefaultDir is the default crewplan directory name.
	DefaultDir = "crewplan"
	// DefaultPlanFile is the default plan file name within the directory.
	DefaultPlanFile = "plan.json"
	// DefaultMaterialsFile is the default materials file name.
	DefaultMaterialsFile = "materials.json"
	// DefaultOwner is the default owner id for new tasks.
	DefaultOwner = "crew"

	// ConfigFileName is the name of the config file within the crewplan directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)
