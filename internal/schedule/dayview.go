// Package schedule derives the read-side views of a plan snapshot: the
// day-by-day projection, the conflict-aware timeline layout, and the
// tabular export. Every function here is a pure function of a plan.View,
// so a view can be recomputed after any committed mutation without
// touching store state.
package schedule

import (
	"sort"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

// DayItem is one entry in a day bucket: a task, or one of its subtasks.
type DayItem struct {
	Task    plan.Task     `json:"task"`
	Subtask *plan.Subtask `json:"subtask,omitempty"`
}

// DayBucket groups everything touching one calendar date.
type DayBucket struct {
	Date    date.Date       `json:"date"`
	Members []member.Member `json:"members"`
	Items   []DayItem       `json:"items"`
}

// Project returns one bucket per calendar date touched by any task or
// subtask, in chronological order. A multi-day task appears in every
// bucket it spans.
func Project(v plan.View, reg *member.Registry) []DayBucket {
	touched := make(map[string]date.Date)
	for _, t := range v.Tasks {
		for _, d := range t.Interval.Days() {
			touched[d.String()] = d
		}
	}

	days := make([]date.Date, 0, len(touched))
	for _, d := range touched {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Time.Before(days[j].Time) })

	buckets := make([]DayBucket, 0, len(days))
	for _, d := range days {
		buckets = append(buckets, bucketFor(v, reg, d))
	}
	return buckets
}

// ProjectRange returns a bucket for every date in [from, to], including
// empty days, enabling bounded scrolling without recomputing history.
func ProjectRange(v plan.View, reg *member.Registry, from, to date.Date) ([]DayBucket, error) {
	if from.After(to) {
		return nil, clierr.Newf(clierr.InvalidRange,
			"range start %s is after end %s", from, to).
			WithDetails(map[string]any{"from": from.String(), "to": to.String()})
	}
	days := from.Range(to)
	buckets := make([]DayBucket, 0, len(days))
	for _, d := range days {
		buckets = append(buckets, bucketFor(v, reg, d))
	}
	return buckets, nil
}

// bucketFor collects the items overlapping one date. Tasks are ordered by
// interval start then id; each task precedes its own subtasks, which keep
// stored order. Containment guarantees a subtask never touches a day its
// parent does not.
func bucketFor(v plan.View, reg *member.Registry, d date.Date) DayBucket {
	tasks := make([]plan.Task, 0, len(v.Tasks))
	for _, t := range v.Tasks {
		if t.Interval.OverlapsDate(d) {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].Start.Equal(tasks[j].Start.Time) {
			return tasks[i].Start.Before(tasks[j].Start.Time)
		}
		return tasks[i].ID < tasks[j].ID
	})

	bucket := DayBucket{Date: d}
	active := make(map[string]bool)
	for _, t := range tasks {
		bucket.Items = append(bucket.Items, DayItem{Task: t})
		active[t.Owner] = true
		for i := range t.Subtasks {
			st := t.Subtasks[i]
			if !st.Interval.OverlapsDate(d) {
				continue
			}
			bucket.Items = append(bucket.Items, DayItem{Task: t, Subtask: &st})
			active[st.Owner] = true
		}
	}

	// Roster order keeps the member list deterministic.
	for _, m := range reg.Members() {
		if active[m.ID] {
			bucket.Members = append(bucket.Members, m)
		}
	}
	return bucket
}
