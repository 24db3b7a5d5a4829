package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crewtide/crewplan/internal/member"
)

const fileMode = 0o600

// Load reads the plan file and hydrates a store from it. A missing file
// yields an empty store so a fresh board works without an explicit save.
func Load(path string, reg *member.Registry) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // plan path from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(reg), nil
		}
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Hydrate(reg, tasks)
}

// Save writes the snapshot to the plan file as an ordered list of task
// records, the shape external collaborators hydrate from.
func Save(path string, v View) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Tasks); err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), fileMode)
}
