package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/crewtide/crewplan/internal/date"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
	"github.com/crewtide/crewplan/internal/schedule"
)

const defaultGanttWidth = 72

// GanttOptions controls timeline rendering.
type GanttOptions struct {
	Width        int  // bar canvas width in cells; 0 uses the default
	ShowSubtasks bool // render a sub-timeline under tasks that have subtasks
}

// Gantt renders the timeline layout as stacked, owner-colored bars. It
// consumes only layout spans, so the same store content always renders
// the same chart.
func Gantt(w io.Writer, v plan.View, reg *member.Registry, opts GanttOptions) {
	start, end, ok := schedule.Bounds(v)
	if !ok {
		fmt.Fprintln(os.Stderr, "Nothing scheduled.")
		return
	}

	width := opts.Width
	if width <= 0 {
		width = defaultGanttWidth
	}
	scale := newScale(start, end, width)

	fmt.Fprintln(w, headerStyle.Render(scale.axisLabels()))
	fmt.Fprintln(w, dimStyle.Render(scale.axisRuler()))

	layout := schedule.Compute(v, reg)
	for _, ol := range layout.Owners {
		fmt.Fprintln(w, titleStyle.Render(ownerStyle(reg, ol.Member.ID).Render(ol.Member.Label)))
		for _, lane := range ol.Lanes {
			fmt.Fprintln(w, "  "+scale.renderLane(lane, reg))
		}
		if opts.ShowSubtasks {
			renderSubtimelines(w, v, ol, scale, reg)
		}
	}
}

func renderSubtimelines(w io.Writer, v plan.View, ol schedule.OwnerLanes, sc scale, reg *member.Registry) {
	for _, lane := range ol.Lanes {
		for _, sp := range lane {
			t, ok := v.Task(sp.TaskID)
			if !ok || len(t.Subtasks) == 0 {
				continue
			}
			fmt.Fprintln(w, dimStyle.Render("  └ "+t.Name))
			for _, subLane := range schedule.SubtaskLanes(t) {
				fmt.Fprintln(w, "    "+sc.renderLane(subLane, reg))
			}
		}
	}
}

// scale maps wall-clock instants to canvas columns.
type scale struct {
	start time.Time
	total time.Duration
	width int
}

func newScale(start, end interval.Time, width int) scale {
	return scale{start: start.Time, total: end.Sub(start.Time), width: width}
}

func (s scale) col(t time.Time) int {
	c := int(float64(s.width) * float64(t.Sub(s.start)) / float64(s.total))
	if c < 0 {
		c = 0
	}
	if c > s.width {
		c = s.width
	}
	return c
}

// renderLane draws one lane: spans are non-overlapping and ordered, so
// the line is gaps and bars walked left to right.
func (s scale) renderLane(lane schedule.Lane, reg *member.Registry) string {
	var b strings.Builder
	cursor := 0
	for _, sp := range lane {
		from := s.col(sp.Start.Time)
		to := s.col(sp.End.Time)
		if to <= from {
			to = from + 1
		}
		if from < cursor {
			from = cursor
		}
		if from > cursor {
			b.WriteString(strings.Repeat(" ", from-cursor))
		}
		b.WriteString(barStyle(reg, sp.Owner).Render(fitLabel(sp.Name, to-from)))
		cursor = to
	}
	return b.String()
}

// fitLabel truncates or pads a name to exactly width cells. Truncation
// is rune-aware so multi-byte names never get cut mid-rune.
func fitLabel(name string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(name)
	if len(runes) > width {
		if width == 1 {
			return string(runes[:1])
		}
		return string(runes[:width-1]) + "…"
	}
	return name + strings.Repeat(" ", width-len(runes))
}

// axisLabels places day labels (MM-DD) at each day boundary that fits.
func (s scale) axisLabels() string {
	canvas := []rune(strings.Repeat(" ", s.width))
	for _, d := range s.days() {
		at := s.col(s.dayStart(d))
		label := d.Format("01-02")
		if at+len(label) > s.width {
			break
		}
		if at > 0 && canvas[at-1] != ' ' {
			continue
		}
		copy(canvas[at:], []rune(label))
	}
	return "  " + string(canvas)
}

// axisRuler draws the scale line with a tick at each day boundary.
func (s scale) axisRuler() string {
	canvas := []rune(strings.Repeat("╌", s.width))
	for _, d := range s.days() {
		at := s.col(s.dayStart(d))
		if at < s.width {
			canvas[at] = '┊'
		}
	}
	return "  " + string(canvas)
}

func (s scale) days() []date.Date {
	endT := s.start.Add(s.total)
	var days []date.Date
	for d := date.Of(s.start); d.Time.Before(endT); d = d.Next() {
		days = append(days, d)
	}
	return days
}

func (s scale) dayStart(d date.Date) time.Time {
	if d.Time.Before(s.start) {
		return s.start
	}
	return d.Time
}
