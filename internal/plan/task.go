// Package plan owns the task/subtask schedule: the aggregate store, its
// CRUD operations and invariants, and the persisted plan file format.
package plan

import (
	"github.com/crewtide/crewplan/internal/interval"
)

// Subtask is a scheduled unit of work nested under exactly one task.
// Its interval must lie fully inside the parent task's interval.
type Subtask struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"ownerId"`
	interval.Interval
}

// Task is a top-level scheduled unit of work with an owner, an interval,
// and an ordered sequence of subtasks. Subtask order is insertion order;
// derived views re-sort by interval start for rendering.
type Task struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"ownerId"`
	interval.Interval
	Notes    string    `json:"notes,omitempty"`
	Subtasks []Subtask `json:"subtasks"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Subtasks = append([]Subtask{}, t.Subtasks...)
	return c
}

// Subtask returns the subtask with the given id and whether it exists.
func (t Task) Subtask(id int) (Subtask, bool) {
	for _, st := range t.Subtasks {
		if st.ID == id {
			return st, true
		}
	}
	return Subtask{}, false
}

// View is an immutable, defensively copied snapshot of the store. Derived
// views (day projection, timeline layout, export) consume only Views, so
// they can never mutate store state.
type View struct {
	Tasks []Task
}

// Task returns the task with the given id and whether it exists.
func (v View) Task(id int) (Task, bool) {
	for _, t := range v.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Len returns the number of tasks in the view.
func (v View) Len() int { return len(v.Tasks) }
