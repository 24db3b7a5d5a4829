package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

func TestProjectMultiDayTaskAppearsEachDay(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Paver installation", "jordan", "2025-01-06T08:00", "2025-01-08T12:00"),
	}}

	buckets := Project(v, reg)
	want := []string{"2025-01-06", "2025-01-07", "2025-01-08"}
	if len(buckets) != len(want) {
		t.Fatalf("buckets: got %d, want %d", len(buckets), len(want))
	}
	for i, b := range buckets {
		if b.Date.String() != want[i] {
			t.Errorf("bucket %d: got %s, want %s", i, b.Date, want[i])
		}
		if len(b.Items) != 1 || b.Items[0].Task.ID != 1 {
			t.Errorf("bucket %s: got items %+v", b.Date, b.Items)
		}
	}
}

func TestProjectSkipsEmptyDays(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Demolition", "crew", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 2, "Final walkthrough", "jordan", "2025-01-10T13:00", "2025-01-10T17:00"),
	}}

	buckets := Project(v, reg)
	if len(buckets) != 2 {
		t.Fatalf("buckets: got %d, want 2", len(buckets))
	}
	if buckets[0].Date.String() != "2025-01-06" || buckets[1].Date.String() != "2025-01-10" {
		t.Errorf("dates: got %s, %s", buckets[0].Date, buckets[1].Date)
	}
}

func TestProjectOrdersTasksAndAttachesSubtasks(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 3, "Later task", "crew", "2025-01-06T10:00", "2025-01-06T12:00"),
		task(t, 1, "Cabinets", "christian", "2025-01-06T08:00", "2025-01-06T16:00",
			plan.Subtask{ID: 2, Name: "Measure", Owner: "jordan", Interval: iv(t, "2025-01-06T08:00", "2025-01-06T09:00")},
		),
	}}

	buckets := Project(v, reg)
	if len(buckets) != 1 {
		t.Fatalf("buckets: got %d, want 1", len(buckets))
	}
	b := buckets[0]

	// Task 1 starts first, its subtask follows it, task 3 comes after.
	if len(b.Items) != 3 {
		t.Fatalf("items: got %d, want 3", len(b.Items))
	}
	if b.Items[0].Task.ID != 1 || b.Items[0].Subtask != nil {
		t.Errorf("item 0: got %+v", b.Items[0])
	}
	if b.Items[1].Subtask == nil || b.Items[1].Subtask.ID != 2 {
		t.Errorf("item 1: got %+v", b.Items[1])
	}
	if b.Items[2].Task.ID != 3 || b.Items[2].Subtask != nil {
		t.Errorf("item 2: got %+v", b.Items[2])
	}

	// Members in roster order: christian, jordan, crew all active.
	ids := make([]string, len(b.Members))
	for i, m := range b.Members {
		ids[i] = m.ID
	}
	want := []string{"christian", "jordan", "crew"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("members: got %v, want %v", ids, want)
		}
	}
}

func TestProjectSubtaskOnlyOnDaysItTouches(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Paver installation", "jordan", "2025-01-06T08:00", "2025-01-08T17:00",
			plan.Subtask{ID: 2, Name: "Base prep", Owner: "jordan", Interval: iv(t, "2025-01-07T08:00", "2025-01-07T12:00")},
		),
	}}

	buckets := Project(v, reg)
	if len(buckets) != 3 {
		t.Fatalf("buckets: got %d, want 3", len(buckets))
	}
	for _, b := range buckets {
		hasSub := false
		for _, item := range b.Items {
			if item.Subtask != nil {
				hasSub = true
			}
		}
		wantSub := b.Date.String() == "2025-01-07"
		if hasSub != wantSub {
			t.Errorf("bucket %s: subtask present=%v, want %v", b.Date, hasSub, wantSub)
		}
	}
}

func TestProjectRangeIncludesEmptyDays(t *testing.T) {
	reg := member.DefaultRegistry()
	v := plan.View{Tasks: []plan.Task{
		task(t, 1, "Demolition", "crew", "2025-01-07T08:00", "2025-01-07T12:00"),
	}}

	buckets, err := ProjectRange(v, reg,
		date.New(2025, time.January, 6), date.New(2025, time.January, 8))
	if err != nil {
		t.Fatalf("ProjectRange: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("buckets: got %d, want 3", len(buckets))
	}
	if len(buckets[0].Items) != 0 || len(buckets[2].Items) != 0 {
		t.Error("empty days should carry no items")
	}
	if len(buckets[1].Items) != 1 {
		t.Errorf("middle day items: got %d, want 1", len(buckets[1].Items))
	}
}

func TestProjectRangeRejectsInvertedRange(t *testing.T) {
	reg := member.DefaultRegistry()

	_, err := ProjectRange(plan.View{}, reg,
		date.New(2025, time.January, 8), date.New(2025, time.January, 6))
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		t.Fatalf("want *clierr.Error, got %v", err)
	}
	if cliErr.Code != clierr.InvalidRange {
		t.Errorf("code: got %s, want %s", cliErr.Code, clierr.InvalidRange)
	}
}
