package plan

import (
	"strings"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
)

// errTaskNotFound returns the structured error for a missing task id.
func errTaskNotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}

// errSubtaskNotFound returns the structured error for a missing subtask id.
func errSubtaskNotFound(taskID, subtaskID int) *clierr.Error {
	return clierr.Newf(clierr.SubtaskNotFound,
		"subtask not found: #%d under task #%d", subtaskID, taskID).
		WithDetails(map[string]any{"task_id": taskID, "subtask_id": subtaskID})
}

// errContainment returns the structured error for a subtask interval
// escaping its parent task's bounds.
func errContainment(parent, sub interval.Interval) *clierr.Error {
	return clierr.Newf(clierr.ContainmentViolation,
		"subtask interval %s must lie within task interval %s", sub, parent).
		WithDetails(map[string]any{
			"task_start":    parent.Start.String(),
			"task_end":      parent.End.String(),
			"subtask_start": sub.Start.String(),
			"subtask_end":   sub.End.String(),
		})
}

// errDuplicateID returns the structured error for an id appearing twice
// in a hydrated document. Lookup, edit, and layout ordering all assume
// one record per id.
func errDuplicateID(id int) *clierr.Error {
	return clierr.Newf(clierr.InvalidImport,
		"duplicate id #%d: ids must be unique across tasks and subtasks", id).
		WithDetails(map[string]any{"id": id})
}

// validateName rejects empty or whitespace-only names.
func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return clierr.Newf(clierr.EmptyName, "%s name is required", kind).
			WithDetails(map[string]any{"field": "name"})
	}
	return nil
}

// validateItem checks the shared task/subtask invariants: non-empty name,
// known owner, valid interval.
func validateItem(kind, name, owner string, iv interval.Interval, reg *member.Registry) error {
	if err := validateName(kind, name); err != nil {
		return err
	}
	if _, err := reg.Lookup(owner); err != nil {
		return err
	}
	return iv.Validate()
}
