package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crewtide/crewplan/internal/plan"
	"github.com/crewtide/crewplan/internal/schedule"
)

// TaskCompact renders tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []plan.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
		for _, st := range t.Subtasks {
			fmt.Fprintf(w, "  #%d %s %s %s..%s\n",
				st.ID, strings.ReplaceAll(st.Name, " ", "_"), st.Owner,
				st.Start, st.End)
		}
	}
}

// DayCompact renders day buckets one line per item.
func DayCompact(w io.Writer, buckets []schedule.DayBucket) {
	for _, b := range buckets {
		ids := make([]string, len(b.Members))
		for i, m := range b.Members {
			ids[i] = m.ID
		}
		fmt.Fprintf(w, "%s team:%s\n", b.Date, strings.Join(ids, ","))
		for _, item := range b.Items {
			if item.Subtask != nil {
				fmt.Fprintf(w, "  sub #%d %s\n", item.Subtask.ID, item.Subtask.Name)
				continue
			}
			fmt.Fprintf(w, "  task #%d %s\n", item.Task.ID, item.Task.Name)
		}
	}
}

func formatTaskLine(t plan.Task) string {
	return fmt.Sprintf("#%d %s %s %s..%s",
		t.ID, strings.ReplaceAll(t.Name, " ", "_"), t.Owner, t.Start, t.End)
}
