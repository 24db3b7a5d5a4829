package schedule

import (
	"reflect"
	"testing"

	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

func iv(t *testing.T, start, end string) interval.Interval {
	t.Helper()
	parsed, err := interval.Parse(start, end)
	if err != nil {
		t.Fatalf("interval.Parse(%q, %q): %v", start, end, err)
	}
	return parsed
}

func task(t *testing.T, id int, name, owner, start, end string, subs ...plan.Subtask) plan.Task {
	t.Helper()
	return plan.Task{
		ID: id, Name: name, Owner: owner,
		Interval: iv(t, start, end),
		Subtasks: subs,
	}
}

func TestComputeStacksOverlapsIntoLanes(t *testing.T) {
	reg := member.DefaultRegistry()
	// Two overlapping crew tasks plus one that fits after the first.
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Flagstone pathway", "crew", "2025-01-06T08:00", "2025-01-07T16:00"),
		task(t, 2, "Plant pond area", "crew", "2025-01-06T08:00", "2025-01-07T16:00"),
		task(t, 3, "Cleanup", "crew", "2025-01-07T16:00", "2025-01-07T17:00"),
	}}

	layout := Compute(v, reg)
	if len(layout.Owners) != 1 {
		t.Fatalf("owners: got %d, want 1", len(layout.Owners))
	}
	ol := layout.Owners[0]
	if ol.Member.ID != "crew" {
		t.Errorf("owner: got %s, want crew", ol.Member.ID)
	}
	if len(ol.Lanes) != 2 {
		t.Fatalf("lanes: got %d, want 2", len(ol.Lanes))
	}

	// Task 1 and the touching task 3 share lane 0; task 2 spills to lane 1.
	lane0 := taskIDs(ol.Lanes[0])
	lane1 := taskIDs(ol.Lanes[1])
	if !reflect.DeepEqual(lane0, []int{1, 3}) {
		t.Errorf("lane 0: got %v, want [1 3]", lane0)
	}
	if !reflect.DeepEqual(lane1, []int{2}) {
		t.Errorf("lane 1: got %v, want [2]", lane1)
	}
}

func TestComputeNoLaneOverlaps(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "A", "jordan", "2025-01-08T08:00", "2025-01-09T17:00"),
		task(t, 2, "B", "jordan", "2025-01-08T09:00", "2025-01-08T12:00"),
		task(t, 3, "C", "jordan", "2025-01-08T13:00", "2025-01-08T17:00"),
		task(t, 4, "D", "jordan", "2025-01-09T08:00", "2025-01-10T12:00"),
		task(t, 5, "E", "jordan", "2025-01-10T13:00", "2025-01-10T17:00"),
	}}

	layout := Compute(v, reg)
	for _, ol := range layout.Owners {
		for li, lane := range ol.Lanes {
			for i := 1; i < len(lane); i++ {
				if lane[i-1].Interval.Overlaps(lane[i].Interval) {
					t.Errorf("lane %d: spans %d and %d overlap", li, lane[i-1].TaskID, lane[i].TaskID)
				}
				if lane[i].LaneIndex != li {
					t.Errorf("span %d: lane index %d, want %d", lane[i].TaskID, lane[i].LaneIndex, li)
				}
			}
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		// Identical intervals force the id tie-break.
		task(t, 2, "Second", "crew", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 1, "First", "crew", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 3, "Third", "christian", "2025-01-06T09:00", "2025-01-06T11:00"),
	}}

	first := Compute(v, reg)
	for range 10 {
		if got := Compute(v, reg); !reflect.DeepEqual(got, first) {
			t.Fatal("identical input produced a different layout")
		}
	}

	// Owners come out in roster order regardless of task order.
	if first.Owners[0].Member.ID != "christian" || first.Owners[1].Member.ID != "crew" {
		t.Errorf("owner order: got %s, %s", first.Owners[0].Member.ID, first.Owners[1].Member.ID)
	}
	// Equal starts: lower id wins lane 0.
	if got := first.Owners[1].Lanes[0][0].TaskID; got != 1 {
		t.Errorf("lane 0 head: got task %d, want 1", got)
	}
}

func TestComputeSkipsIdleOwners(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Solo", "jordan", "2025-01-06T08:00", "2025-01-06T12:00"),
	}}

	layout := Compute(v, reg)
	if len(layout.Owners) != 1 || layout.Owners[0].Member.ID != "jordan" {
		t.Errorf("idle owners should be omitted: %+v", layout.Owners)
	}
}

func TestSubtaskLanes(t *testing.T) {
	parent := task(t, 1, "Install cabinets", "christian", "2025-01-06T08:00", "2025-01-06T16:00",
		plan.Subtask{ID: 2, Name: "Measure", Owner: "christian", Interval: iv(t, "2025-01-06T08:00", "2025-01-06T10:00")},
		plan.Subtask{ID: 3, Name: "Level", Owner: "jordan", Interval: iv(t, "2025-01-06T09:00", "2025-01-06T11:00")},
		plan.Subtask{ID: 4, Name: "Mount", Owner: "christian", Interval: iv(t, "2025-01-06T10:00", "2025-01-06T12:00")},
	)

	lanes := SubtaskLanes(parent)
	if len(lanes) != 2 {
		t.Fatalf("lanes: got %d, want 2", len(lanes))
	}
	if got := subtaskIDs(lanes[0]); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Errorf("lane 0: got %v, want [2 4]", got)
	}
	if got := subtaskIDs(lanes[1]); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("lane 1: got %v, want [3]", got)
	}

	if got := SubtaskLanes(task(t, 9, "Bare", "crew", "2025-01-06T08:00", "2025-01-06T12:00")); got != nil {
		t.Errorf("no subtasks: got %v, want nil", got)
	}
}

func TestBounds(t *testing.T) {
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Mid", "crew", "2025-01-07T08:00", "2025-01-07T12:00"),
		task(t, 2, "Early", "crew", "2025-01-06T07:00", "2025-01-06T09:00"),
		task(t, 3, "Late", "jordan", "2025-01-09T08:00", "2025-01-10T17:00"),
	}}

	start, end, ok := Bounds(v)
	if !ok {
		t.Fatal("Bounds: ok=false for non-empty view")
	}
	if start.String() != "2025-01-06T07:00" || end.String() != "2025-01-10T17:00" {
		t.Errorf("bounds: got %s – %s", start, end)
	}

	if _, _, ok := Bounds(plan.View{}); ok {
		t.Error("Bounds of empty view: want ok=false")
	}
}

func taskIDs(lane Lane) []int {
	ids := make([]int, len(lane))
	for i, sp := range lane {
		ids[i] = sp.TaskID
	}
	return ids
}

func subtaskIDs(lane Lane) []int {
	ids := make([]int, len(lane))
	for i, sp := range lane {
		ids[i] = sp.SubtaskID
	}
	return ids
}
