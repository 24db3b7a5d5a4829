package schedule

import (
	"sort"
	"strings"

	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

// FilterOptions narrows a task listing.
type FilterOptions struct {
	Owner  string     // tasks or subtasks owned by this member
	Day    *date.Date // tasks touching this calendar day
	Search string     // case-insensitive match on task/subtask names
}

// Filter returns the tasks matching all set options, stored order kept.
func Filter(v plan.View, opts FilterOptions) []plan.Task {
	var out []plan.Task
	for _, t := range v.Tasks {
		if opts.Owner != "" && !ownedBy(t, opts.Owner) {
			continue
		}
		if opts.Day != nil && !t.Interval.OverlapsDate(*opts.Day) {
			continue
		}
		if opts.Search != "" && !matches(t, opts.Search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func ownedBy(t plan.Task, owner string) bool {
	if t.Owner == owner {
		return true
	}
	for _, st := range t.Subtasks {
		if st.Owner == owner {
			return true
		}
	}
	return false
}

func matches(t plan.Task, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Name), needle) {
		return true
	}
	for _, st := range t.Subtasks {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			return true
		}
	}
	return false
}

// SortFields lists the valid --sort field names.
func SortFields() []string {
	return []string{"id", "name", "owner", "start", "end"}
}

// Sort sorts tasks by the given field. Owner order follows the roster,
// not the alphabet.
func Sort(tasks []plan.Task, field string, reverse bool, reg *member.Registry) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if reverse {
			// Swap the operands instead of negating: negation would
			// report ties as less in both directions and break
			// stability.
			a, b = b, a
		}
		return compareTasks(a, b, field, reg)
	})
}

func compareTasks(a, b plan.Task, field string, reg *member.Registry) bool {
	switch field {
	case "name":
		return a.Name < b.Name
	case "owner":
		return reg.Index(a.Owner) < reg.Index(b.Owner)
	case "start":
		if !a.Start.Equal(b.Start.Time) {
			return a.Start.Before(b.Start.Time)
		}
		return a.ID < b.ID
	case "end":
		if !a.End.Equal(b.End.Time) {
			return a.End.Before(b.End.Time)
		}
		return a.ID < b.ID
	default:
		return a.ID < b.ID
	}
}
