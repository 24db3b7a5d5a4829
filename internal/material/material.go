// Package material tracks the materials a plan's tasks need: what to
// buy, where it is in the pipeline, and who is responsible for it.
package material

import (
	"strings"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
)

// Status pipeline, in order. Advance moves a material one step right.
const (
	StatusNeeded  = "Needed"
	StatusOrdered = "Ordered"
	StatusOnsite  = "Onsite"
	StatusOnHand  = "On Hand"
)

// Delivery methods.
const (
	DeliveryPickup    = "Pick-up"
	DeliveryDelivered = "Get Delivered"
)

// Statuses returns the pipeline stages in display order.
func Statuses() []string {
	return []string{StatusNeeded, StatusOrdered, StatusOnsite, StatusOnHand}
}

// Material is one tracked item, tied to the task that needs it.
type Material struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	TaskID      int           `json:"taskId"`
	NeededBy    interval.Time `json:"neededBy"`
	Status      string        `json:"status"`
	Quantity    int           `json:"quantity"`
	Unit        string        `json:"unit"`
	Delivery    string        `json:"deliveryMethod"`
	Responsible string        `json:"responsibleId,omitempty"`
	Supplier    string        `json:"supplier,omitempty"`
}

// Store owns the ordered material collection.
type Store struct {
	items  []*Material
	nextID int
	reg    *member.Registry
}

// NewStore creates an empty material store.
func NewStore(reg *member.Registry) *Store {
	return &Store{nextID: 1, reg: reg}
}

// Hydrate rebuilds a store from persisted records.
func Hydrate(reg *member.Registry, items []Material) (*Store, error) {
	s := NewStore(reg)
	for _, m := range items {
		if err := s.validate(m); err != nil {
			return nil, err
		}
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
		c := m
		s.items = append(s.items, &c)
	}
	return s, nil
}

// Snapshot returns a copy of all materials in stored order.
func (s *Store) Snapshot() []Material {
	out := make([]Material, len(s.items))
	for i, m := range s.items {
		out[i] = *m
	}
	return out
}

// Add validates and appends a material, filling defaults: status Needed,
// quantity 1, delivery Pick-up.
func (s *Store) Add(m Material) (Material, error) {
	if m.Status == "" {
		m.Status = StatusNeeded
	}
	if m.Quantity == 0 {
		m.Quantity = 1
	}
	if m.Delivery == "" {
		m.Delivery = DeliveryPickup
	}
	if err := s.validate(m); err != nil {
		return Material{}, err
	}
	m.ID = s.nextID
	s.nextID++
	s.items = append(s.items, &m)
	return m, nil
}

// Advance moves a material to the next pipeline stage.
func (s *Store) Advance(id int) (Material, error) {
	m := s.find(id)
	if m == nil {
		return Material{}, errNotFound(id)
	}
	next, ok := nextStatus(m.Status)
	if !ok {
		return Material{}, clierr.Newf(clierr.InvalidStatus,
			"material #%d is already %s", id, m.Status).
			WithDetails(map[string]any{"id": id, "status": m.Status})
	}
	m.Status = next
	return *m, nil
}

// Delete removes a material.
func (s *Store) Delete(id int) error {
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return errNotFound(id)
}

// ByStatus groups the snapshot into pipeline columns, stored order kept
// within each column.
func (s *Store) ByStatus() map[string][]Material {
	groups := make(map[string][]Material)
	for _, m := range s.items {
		groups[m.Status] = append(groups[m.Status], *m)
	}
	return groups
}

func (s *Store) find(id int) *Material {
	for _, m := range s.items {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Store) validate(m Material) error {
	if strings.TrimSpace(m.Name) == "" {
		return clierr.New(clierr.EmptyName, "material name is required")
	}
	if m.Quantity < 1 {
		return clierr.Newf(clierr.InvalidStatus, "quantity must be >= 1, got %d", m.Quantity)
	}
	if !validStatus(m.Status) {
		return clierr.Newf(clierr.InvalidStatus, "invalid status %q", m.Status).
			WithDetails(map[string]any{"status": m.Status, "allowed": Statuses()})
	}
	if m.Delivery != DeliveryPickup && m.Delivery != DeliveryDelivered {
		return clierr.Newf(clierr.InvalidStatus, "invalid delivery method %q", m.Delivery)
	}
	if m.Responsible != "" {
		if _, err := s.reg.Lookup(m.Responsible); err != nil {
			return err
		}
	}
	return nil
}

func errNotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.MaterialNotFound, "material not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}

func validStatus(status string) bool {
	for _, s := range Statuses() {
		if s == status {
			return true
		}
	}
	return false
}

func nextStatus(status string) (string, bool) {
	all := Statuses()
	for i, s := range all[:len(all)-1] {
		if s == status {
			return all[i+1], true
		}
	}
	return "", false
}
