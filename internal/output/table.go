package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
	"github.com/crewtide/crewplan/internal/schedule"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subMark     = "└ "

	colorEnabled = true
)

// DisableColor strips all styling from table and gantt output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	colorEnabled = false
}

// ownerStyle returns a foreground style in the member's display color.
func ownerStyle(reg *member.Registry, id string) lipgloss.Style {
	if !colorEnabled {
		return lipgloss.NewStyle()
	}
	if c := reg.Color(id); c != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return lipgloss.NewStyle()
}

// barStyle returns a background style in the member's display color,
// used for gantt bars.
func barStyle(reg *member.Registry, id string) lipgloss.Style {
	if !colorEnabled {
		return lipgloss.NewStyle()
	}
	if c := reg.Color(id); c != "" {
		return lipgloss.NewStyle().Background(lipgloss.Color(c)).Foreground(lipgloss.Color("255"))
	}
	return lipgloss.NewStyle()
}

// TaskTable renders tasks (with their subtasks indented) as a table.
func TaskTable(w io.Writer, tasks []plan.Task, reg *member.Registry) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, ownerW, nameW := 4, 7, 6
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		ownerW = max(ownerW, len(reg.Label(t.Owner))+pad)
		nameW = max(nameW, min(len(t.Name)+pad, 52)) //nolint:mnd // max name column width
		for _, st := range t.Subtasks {
			idW = max(idW, len(strconv.Itoa(st.ID))+pad)
			ownerW = max(ownerW, len(reg.Label(st.Owner))+pad)
			nameW = max(nameW, min(len(st.Name)+len(subMark)+pad, 52)) //nolint:mnd // max name column width
		}
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-16s  %-16s",
		idW, "ID", nameW, "NAME", ownerW, "OWNER", "START", "END")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		printTaskRow(w, reg, t.ID, t.Name, t.Owner, t.Start.Display(), t.End.Display(), idW, nameW, ownerW, false)
		for _, st := range t.Subtasks {
			printTaskRow(w, reg, st.ID, st.Name, st.Owner, st.Start.Display(), st.End.Display(), idW, nameW, ownerW, true)
		}
	}
}

func printTaskRow(w io.Writer, reg *member.Registry, id int, name, owner, start, end string, idW, nameW, ownerW int, sub bool) {
	display := name
	if sub {
		display = subMark + name
	}
	maxName := nameW - 2
	if len(display) > maxName {
		display = display[:maxName-3] + "..."
	}
	row := fmt.Sprintf("%-*d %s %s %-16s  %-16s",
		idW, id,
		padRight(display, nameW),
		padRight(ownerStyle(reg, owner).Render(reg.Label(owner)), ownerW),
		start, end)
	fmt.Fprintln(w, strings.TrimRight(row, " "))
}

// TaskDetail renders a single task with full detail. Notes are rendered
// separately by the caller (markdown).
func TaskDetail(w io.Writer, t plan.Task, reg *member.Registry) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Name)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Owner", ownerStyle(reg, t.Owner).Render(reg.Label(t.Owner)))
	printField(w, "Start", t.Start.Display())
	printField(w, "End", t.End.Display())

	if len(t.Subtasks) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Subtasks"))
	for _, st := range t.Subtasks {
		fmt.Fprintf(w, "  %s#%d %s  %s  %s\n",
			subMark, st.ID, st.Name,
			ownerStyle(reg, st.Owner).Render(reg.Label(st.Owner)),
			st.Interval.String())
	}
}

// DayView renders the day-by-day projection: one section per date with
// the active roster and the items touching that day.
func DayView(w io.Writer, buckets []schedule.DayBucket, reg *member.Registry) {
	if len(buckets) == 0 {
		fmt.Fprintln(os.Stderr, "No scheduled days.")
		return
	}

	for i, b := range buckets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := b.Date.Format("Monday, 02 Jan 2006")
		fmt.Fprintln(w, titleStyle.Render(heading))
		if len(b.Members) > 0 {
			labels := make([]string, len(b.Members))
			for j, m := range b.Members {
				labels[j] = ownerStyle(reg, m.ID).Render(m.Label)
			}
			fmt.Fprintln(w, "Team: "+strings.Join(labels, ", "))
		}
		if len(b.Items) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  (nothing scheduled)"))
			continue
		}
		for _, item := range b.Items {
			if item.Subtask != nil {
				st := item.Subtask
				fmt.Fprintf(w, "    %s%s  %s  %s\n", subMark, st.Name,
					ownerStyle(reg, st.Owner).Render(reg.Label(st.Owner)),
					st.Interval.String())
				continue
			}
			fmt.Fprintf(w, "  #%-3d %s  %s  %s\n", item.Task.ID, item.Task.Name,
				ownerStyle(reg, item.Task.Owner).Render(reg.Label(item.Task.Owner)),
				item.Task.Interval.String())
		}
	}
}

func printField(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%-10s %s\n", name+":", value)
}

// padRight pads a possibly-styled string to the given display width.
// ANSI escape sequences do not count toward the width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
