package schedule

import (
	"sort"

	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

// Span is one placed bar on the timeline. SubtaskID is zero for task
// spans. Spans are the stable coordinates rendering collaborators bind
// hover/zoom/pan handlers to, so identical store content must always
// produce identical spans.
type Span struct {
	TaskID    int    `json:"taskId"`
	SubtaskID int    `json:"subtaskId,omitempty"`
	Name      string `json:"name"`
	Owner     string `json:"ownerId"`
	LaneIndex int    `json:"lane"`
	interval.Interval
}

// Lane is an ordered run of non-overlapping spans sharing a visual row.
type Lane []Span

// OwnerLanes holds the stacked lanes for a single member.
type OwnerLanes struct {
	Member member.Member `json:"member"`
	Lanes  []Lane        `json:"lanes"`
}

// Layout is the Gantt-ready arrangement: per owner, in roster order, the
// minimum set of lanes such that simultaneous items stack instead of
// colliding.
type Layout struct {
	Owners []OwnerLanes `json:"owners"`
}

// Compute assigns every task to a lane under its owner using greedy
// minimum-lane interval scheduling: items sorted by start (id as
// tie-break) go into the first lane whose last end does not overlap, or
// open a new lane. The strict sort makes the result deterministic.
func Compute(v plan.View, reg *member.Registry) Layout {
	byOwner := make(map[string][]plan.Task)
	for _, t := range v.Tasks {
		byOwner[t.Owner] = append(byOwner[t.Owner], t)
	}

	var layout Layout
	for _, m := range reg.Members() {
		tasks := byOwner[m.ID]
		if len(tasks) == 0 {
			continue
		}
		spans := make([]Span, len(tasks))
		for i, t := range tasks {
			spans[i] = Span{TaskID: t.ID, Name: t.Name, Owner: t.Owner, Interval: t.Interval}
		}
		layout.Owners = append(layout.Owners, OwnerLanes{
			Member: m,
			Lanes:  packLanes(spans),
		})
	}
	return layout
}

// SubtaskLanes lays out one task's subtasks for a sub-timeline, using the
// same greedy assignment and ordering rules as the owner lanes.
func SubtaskLanes(t plan.Task) []Lane {
	if len(t.Subtasks) == 0 {
		return nil
	}
	spans := make([]Span, len(t.Subtasks))
	for i, st := range t.Subtasks {
		spans[i] = Span{
			TaskID:    t.ID,
			SubtaskID: st.ID,
			Name:      st.Name,
			Owner:     st.Owner,
			Interval:  st.Interval,
		}
	}
	return packLanes(spans)
}

// packLanes runs the greedy lane assignment over spans. The classic
// minimum-lane interval scheduling greedy is optimal in lane count.
func packLanes(spans []Span) []Lane {
	sort.SliceStable(spans, func(i, j int) bool {
		if !spans[i].Start.Equal(spans[j].Start.Time) {
			return spans[i].Start.Before(spans[j].Start.Time)
		}
		return spanID(spans[i]) < spanID(spans[j])
	})

	var lanes []Lane
	var lastEnd []interval.Time
	for _, sp := range spans {
		placed := false
		for li := range lanes {
			// Half-open intervals: a lane ending exactly at the span's
			// start can take it.
			if !lastEnd[li].After(sp.Start.Time) {
				sp.LaneIndex = li
				lanes[li] = append(lanes[li], sp)
				lastEnd[li] = sp.End
				placed = true
				break
			}
		}
		if !placed {
			sp.LaneIndex = len(lanes)
			lanes = append(lanes, Lane{sp})
			lastEnd = append(lastEnd, sp.End)
		}
	}
	return lanes
}

// spanID is the sort tie-break: the subtask id when present, else the
// task id. Ids are unique across both, so ordering is total.
func spanID(sp Span) int {
	if sp.SubtaskID != 0 {
		return sp.SubtaskID
	}
	return sp.TaskID
}

// Bounds returns the earliest start and latest end across the view, for
// scaling renders. ok is false for an empty view.
func Bounds(v plan.View) (start, end interval.Time, ok bool) {
	for _, t := range v.Tasks {
		if !ok || t.Start.Before(start.Time) {
			start = t.Start
		}
		if !ok || t.End.After(end.Time) {
			end = t.End
		}
		ok = true
	}
	return start, end, ok
}
