package material

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crewtide/crewplan/internal/member"
)

const fileMode = 0o600

// Load reads the materials file and hydrates a store. A missing file
// yields an empty store.
func Load(path string, reg *member.Registry) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // materials path from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(reg), nil
		}
		return nil, fmt.Errorf("reading materials file: %w", err)
	}

	var items []Material
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Hydrate(reg, items)
}

// Save writes the materials to disk as an ordered JSON list.
func Save(path string, items []Material) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("marshaling materials: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), fileMode)
}
