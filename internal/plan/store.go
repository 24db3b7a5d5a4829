package plan

import (
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
)

// Store is the aggregate root for the schedule. All mutations go through
// its CRUD operations, each applied all-or-nothing: a rejected edit
// leaves the prior state fully intact. After every committed mutation the
// store fires its change subscribers.
//
// Tasks are held as an arena indexed by id; subtasks are value records
// owned by their task, so deleting a task is a single removal and no
// orphan subtask can ever exist.
type Store struct {
	tasks  []*Task
	nextID int
	reg    *member.Registry
	subs   []func()
}

// NewStore creates an empty store bound to a member registry.
func NewStore(reg *member.Registry) *Store {
	return &Store{nextID: 1, reg: reg}
}

// Hydrate builds a store from persisted task records, re-validating every
// invariant so a hand-edited plan file cannot smuggle in inconsistent
// state. Ids must be unique across tasks and subtasks; the id generator
// resumes above the highest seen id.
func Hydrate(reg *member.Registry, tasks []Task) (*Store, error) {
	s := NewStore(reg)
	seen := make(map[int]bool)
	for _, t := range tasks {
		if err := validateItem("task", t.Name, t.Owner, t.Interval, reg); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, errDuplicateID(t.ID)
		}
		seen[t.ID] = true
		for _, st := range t.Subtasks {
			if err := validateItem("subtask", st.Name, st.Owner, st.Interval, reg); err != nil {
				return nil, err
			}
			if !t.Interval.Contains(st.Interval) {
				return nil, errContainment(t.Interval, st.Interval)
			}
			if seen[st.ID] {
				return nil, errDuplicateID(st.ID)
			}
			seen[st.ID] = true
			if st.ID >= s.nextID {
				s.nextID = st.ID + 1
			}
		}
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
		c := t.Clone()
		if c.Subtasks == nil {
			c.Subtasks = []Subtask{}
		}
		s.tasks = append(s.tasks, &c)
	}
	return s, nil
}

// Subscribe registers a callback fired after every committed mutation.
func (s *Store) Subscribe(fn func()) {
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn()
	}
}

// Snapshot returns an immutable deep copy of all tasks in stored order.
func (s *Store) Snapshot() View {
	tasks := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		tasks[i] = t.Clone()
	}
	return View{Tasks: tasks}
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) find(id int) *Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddTask validates and appends a new task, returning the created record.
func (s *Store) AddTask(name, owner string, iv interval.Interval) (Task, error) {
	if err := validateItem("task", name, owner, iv, s.reg); err != nil {
		return Task{}, err
	}
	t := &Task{
		ID:       s.nextID,
		Name:     name,
		Owner:    owner,
		Interval: iv,
		Subtasks: []Subtask{},
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.notify()
	return t.Clone(), nil
}

// TaskPatch carries the fields of an edit; nil fields are left unchanged.
type TaskPatch struct {
	Name     *string
	Owner    *string
	Interval *interval.Interval
	Notes    *string
}

// EditTask applies a patch to a task atomically. Shrinking the interval
// below any existing subtask is rejected, not clamped.
func (s *Store) EditTask(id int, patch TaskPatch) (Task, error) {
	t := s.find(id)
	if t == nil {
		return Task{}, errTaskNotFound(id)
	}

	candidate := t.Clone()
	if patch.Name != nil {
		candidate.Name = *patch.Name
	}
	if patch.Owner != nil {
		candidate.Owner = *patch.Owner
	}
	if patch.Interval != nil {
		candidate.Interval = *patch.Interval
	}
	if patch.Notes != nil {
		candidate.Notes = *patch.Notes
	}

	if err := validateItem("task", candidate.Name, candidate.Owner, candidate.Interval, s.reg); err != nil {
		return Task{}, err
	}
	for _, st := range candidate.Subtasks {
		if !candidate.Interval.Contains(st.Interval) {
			return Task{}, errContainment(candidate.Interval, st.Interval)
		}
	}

	*t = candidate
	s.notify()
	return t.Clone(), nil
}

// DeleteTask removes a task and all of its subtasks.
func (s *Store) DeleteTask(id int) error {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.notify()
			return nil
		}
	}
	return errTaskNotFound(id)
}

// AddSubtask validates and appends a subtask under the given task.
func (s *Store) AddSubtask(taskID int, name, owner string, iv interval.Interval) (Subtask, error) {
	t := s.find(taskID)
	if t == nil {
		return Subtask{}, errTaskNotFound(taskID)
	}
	if err := validateItem("subtask", name, owner, iv, s.reg); err != nil {
		return Subtask{}, err
	}
	if !t.Interval.Contains(iv) {
		return Subtask{}, errContainment(t.Interval, iv)
	}
	st := Subtask{
		ID:       s.nextID,
		Name:     name,
		Owner:    owner,
		Interval: iv,
	}
	s.nextID++
	t.Subtasks = append(t.Subtasks, st)
	s.notify()
	return st, nil
}

// SubtaskPatch carries the fields of a subtask edit; nil fields are kept.
type SubtaskPatch struct {
	Name     *string
	Owner    *string
	Interval *interval.Interval
}

// EditSubtask applies a patch to a subtask atomically, re-checking
// containment against the parent task.
func (s *Store) EditSubtask(taskID, subtaskID int, patch SubtaskPatch) (Subtask, error) {
	t := s.find(taskID)
	if t == nil {
		return Subtask{}, errTaskNotFound(taskID)
	}
	idx := -1
	for i, st := range t.Subtasks {
		if st.ID == subtaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Subtask{}, errSubtaskNotFound(taskID, subtaskID)
	}

	candidate := t.Subtasks[idx]
	if patch.Name != nil {
		candidate.Name = *patch.Name
	}
	if patch.Owner != nil {
		candidate.Owner = *patch.Owner
	}
	if patch.Interval != nil {
		candidate.Interval = *patch.Interval
	}

	if err := validateItem("subtask", candidate.Name, candidate.Owner, candidate.Interval, s.reg); err != nil {
		return Subtask{}, err
	}
	if !t.Interval.Contains(candidate.Interval) {
		return Subtask{}, errContainment(t.Interval, candidate.Interval)
	}

	t.Subtasks[idx] = candidate
	s.notify()
	return candidate, nil
}

// DeleteSubtask removes a subtask from its parent task.
func (s *Store) DeleteSubtask(taskID, subtaskID int) error {
	t := s.find(taskID)
	if t == nil {
		return errTaskNotFound(taskID)
	}
	for i, st := range t.Subtasks {
		if st.ID == subtaskID {
			t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
			s.notify()
			return nil
		}
	}
	return errSubtaskNotFound(taskID, subtaskID)
}
