// Package member holds the process-wide team member registry. Members are
// an enumerated set loaded once at startup; Gantt coloring and owner
// validation are always resolved against this registry, never free text.
package member

import (
	"strings"

	"github.com/crewtide/crewplan/internal/clierr"
)

// Member is an assignable identity with a fixed display color.
type Member struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Color string `yaml:"color" json:"color"` // hex, e.g. "#2E89CD"
}

// Defaults is the built-in crew roster written by init.
var Defaults = []Member{
	{ID: "christian", Label: "Christian", Color: "#2E89CD"},
	{ID: "jordan", Label: "Jordan", Color: "#722C79"},
	{ID: "crew", Label: "Crew", Color: "#C62F69"},
}

// Registry is a read-only, ordered member lookup table.
type Registry struct {
	members []Member
	byID    map[string]int
}

// NewRegistry builds a Registry from an ordered member list.
func NewRegistry(members []Member) *Registry {
	r := &Registry{
		members: append([]Member{}, members...),
		byID:    make(map[string]int, len(members)),
	}
	for i, m := range r.members {
		r.byID[m.ID] = i
	}
	return r
}

// DefaultRegistry returns a Registry over the built-in roster.
func DefaultRegistry() *Registry {
	return NewRegistry(Defaults)
}

// Lookup returns the member with the given id.
func (r *Registry) Lookup(id string) (Member, error) {
	if i, ok := r.byID[id]; ok {
		return r.members[i], nil
	}
	return Member{}, clierr.Newf(clierr.MemberNotFound,
		"unknown team member %q (valid: %s)", id, strings.Join(r.IDs(), ", ")).
		WithDetails(map[string]any{"id": id, "valid": r.IDs()})
}

// Has reports whether the registry contains the given id.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Index returns the position of id in roster order, or -1.
func (r *Registry) Index(id string) int {
	if i, ok := r.byID[id]; ok {
		return i
	}
	return -1
}

// Members returns the roster in configured order.
func (r *Registry) Members() []Member {
	return append([]Member{}, r.members...)
}

// IDs returns the member ids in configured order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.members))
	for i, m := range r.members {
		ids[i] = m.ID
	}
	return ids
}

// Label returns the display label for id, falling back to the id itself
// so that renders never fail on a stale plan file.
func (r *Registry) Label(id string) string {
	if i, ok := r.byID[id]; ok {
		return r.members[i].Label
	}
	return id
}

// Color returns the display color for id, or empty when unknown.
func (r *Registry) Color(id string) string {
	if i, ok := r.byID[id]; ok {
		return r.members[i].Color
	}
	return ""
}
