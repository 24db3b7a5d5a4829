package schedule

import (
	"testing"
	"time"

	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

func filterView(t *testing.T) plan.View {
	t.Helper()
	return plan.View{Tasks: []plan.Task{
		task(t, 1, "Install cabinets", "christian", "2025-01-06T08:00", "2025-01-06T16:00",
			plan.Subtask{ID: 2, Name: "Leveling pass", Owner: "jordan", Interval: iv(t, "2025-01-06T09:00", "2025-01-06T11:00")},
		),
		task(t, 3, "Demolition", "crew", "2025-01-07T08:00", "2025-01-07T12:00"),
		task(t, 4, "Trashcan pad leveling", "jordan", "2025-01-09T08:00", "2025-01-10T12:00"),
	}}
}

func TestFilterByOwner(t *testing.T) {
	v := filterView(t)

	tests := []struct {
		owner string
		want  []int
	}{
		{"christian", []int{1}},
		// Subtask ownership counts: task 1 has a jordan subtask.
		{"jordan", []int{1, 4}},
		{"crew", []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			got := Filter(v, FilterOptions{Owner: tt.owner})
			checkTaskIDs(t, got, tt.want)
		})
	}
}

func TestFilterByDay(t *testing.T) {
	v := filterView(t)

	tests := []struct {
		day  date.Date
		want []int
	}{
		{date.New(2025, time.January, 6), []int{1}},
		{date.New(2025, time.January, 9), []int{4}},
		{date.New(2025, time.January, 10), []int{4}},
		{date.New(2025, time.January, 8), nil},
	}
	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			d := tt.day
			got := Filter(v, FilterOptions{Day: &d})
			checkTaskIDs(t, got, tt.want)
		})
	}
}

func TestFilterBySearch(t *testing.T) {
	v := filterView(t)

	tests := []struct {
		search string
		want   []int
	}{
		{"demo", []int{3}},
		{"DEMO", []int{3}},
		// Matches task 4's name and task 1's subtask name.
		{"leveling", []int{1, 4}},
		{"nothing here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Filter(v, FilterOptions{Search: tt.search})
			checkTaskIDs(t, got, tt.want)
		})
	}
}

func TestFilterCombinesOptions(t *testing.T) {
	v := filterView(t)
	d := date.New(2025, time.January, 6)

	got := Filter(v, FilterOptions{Owner: "jordan", Day: &d})
	checkTaskIDs(t, got, []int{1})

	got = Filter(v, FilterOptions{Owner: "jordan", Search: "demo"})
	checkTaskIDs(t, got, nil)
}

func TestSortByOwnerFollowsRoster(t *testing.T) {
	reg := member.DefaultRegistry()
	tasks := []plan.Task{
		task(t, 1, "A", "crew", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 2, "B", "jordan", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 3, "C", "christian", "2025-01-06T08:00", "2025-01-06T12:00"),
	}

	Sort(tasks, "owner", false, reg)
	checkTaskIDs(t, tasks, []int{3, 2, 1})

	Sort(tasks, "owner", true, reg)
	checkTaskIDs(t, tasks, []int{1, 2, 3})
}

func TestSortReverseKeepsTieOrder(t *testing.T) {
	reg := member.DefaultRegistry()
	tasks := []plan.Task{
		task(t, 1, "Leveling", "crew", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 2, "Leveling", "crew", "2025-01-07T08:00", "2025-01-07T12:00"),
		task(t, 3, "Leveling", "crew", "2025-01-08T08:00", "2025-01-08T12:00"),
		task(t, 4, "Demolition", "crew", "2025-01-09T08:00", "2025-01-09T12:00"),
	}

	// Equal names are ties: reversing must move "Demolition" ahead while
	// keeping the tied tasks in stored order.
	Sort(tasks, "name", true, reg)
	checkTaskIDs(t, tasks, []int{1, 2, 3, 4})

	Sort(tasks, "name", false, reg)
	checkTaskIDs(t, tasks, []int{4, 1, 2, 3})
}

func TestSortByStartBreaksTiesByID(t *testing.T) {
	reg := member.DefaultRegistry()
	tasks := []plan.Task{
		task(t, 5, "Later", "crew", "2025-01-07T08:00", "2025-01-07T12:00"),
		task(t, 4, "Tie B", "crew", "2025-01-06T08:00", "2025-01-06T12:00"),
		task(t, 2, "Tie A", "crew", "2025-01-06T08:00", "2025-01-06T10:00"),
	}

	Sort(tasks, "start", false, reg)
	checkTaskIDs(t, tasks, []int{2, 4, 5})
}

func checkTaskIDs(t *testing.T, tasks []plan.Task, want []int) {
	t.Helper()
	if len(tasks) != len(want) {
		t.Fatalf("tasks: got %d, want %d", len(tasks), len(want))
	}
	for i, task := range tasks {
		if task.ID != want[i] {
			t.Errorf("task %d: got id %d, want %d", i, task.ID, want[i])
		}
	}
}
