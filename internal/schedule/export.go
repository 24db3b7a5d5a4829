package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/plan"
)

// Row is one line of the tabular export: a task row (subtask fields
// empty) or a subtask row. Owners are exported by id so the sequence
// round-trips byte-identically.
type Row struct {
	TaskID      int    `json:"taskId"`
	TaskName    string `json:"taskName"`
	SubtaskID   int    `json:"subtaskId,omitempty"`
	SubtaskName string `json:"subtaskName,omitempty"`
	Owner       string `json:"ownerId"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Header is the CSV header row, in contract field order.
var Header = []string{"TaskID", "TaskName", "SubtaskID", "SubtaskName", "Owner", "Start", "End"}

// Rows flattens the view: one row per task followed immediately by one
// row per subtask of that task, everything in stored order. Same input
// always yields the identical sequence.
func Rows(v plan.View) []Row {
	var rows []Row
	for _, t := range v.Tasks {
		rows = append(rows, Row{
			TaskID:   t.ID,
			TaskName: t.Name,
			Owner:    t.Owner,
			Start:    t.Start.String(),
			End:      t.End.String(),
		})
		for _, st := range t.Subtasks {
			rows = append(rows, Row{
				TaskID:      t.ID,
				TaskName:    t.Name,
				SubtaskID:   st.ID,
				SubtaskName: st.Name,
				Owner:       st.Owner,
				Start:       st.Start.String(),
				End:         st.End.String(),
			})
		}
	}
	return rows
}

// WriteCSV writes the header plus rows to w.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.TaskID),
			r.TaskName,
			idField(r.SubtaskID),
			r.SubtaskName,
			r.Owner,
			r.Start,
			r.End,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func idField(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

// ReadCSV parses an exported file back into rows, verifying the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, clierr.Newf(clierr.InvalidImport, "parsing CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, clierr.New(clierr.InvalidImport, "empty CSV file")
	}
	if len(records[0]) != len(Header) {
		return nil, clierr.Newf(clierr.InvalidImport,
			"unexpected header: want %d fields, got %d", len(Header), len(records[0]))
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, clierr.Newf(clierr.InvalidImport, "row %d: %v", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	taskID, err := strconv.Atoi(rec[0])
	if err != nil {
		return Row{}, fmt.Errorf("invalid task id %q", rec[0])
	}
	row := Row{
		TaskID:      taskID,
		TaskName:    rec[1],
		SubtaskName: rec[3],
		Owner:       rec[4],
		Start:       rec[5],
		End:         rec[6],
	}
	if rec[2] != "" {
		subID, err := strconv.Atoi(rec[2])
		if err != nil {
			return Row{}, fmt.Errorf("invalid subtask id %q", rec[2])
		}
		row.SubtaskID = subID
	}
	return row, nil
}

// Tasks reassembles rows into task records: a row without a subtask id
// opens a task, subtask rows attach to the most recent task row.
func Tasks(rows []Row) ([]plan.Task, error) {
	var tasks []plan.Task
	for _, r := range rows {
		iv, err := interval.Parse(r.Start, r.End)
		if err != nil {
			return nil, err
		}
		if r.SubtaskID == 0 {
			tasks = append(tasks, plan.Task{
				ID:       r.TaskID,
				Name:     r.TaskName,
				Owner:    r.Owner,
				Interval: iv,
				Subtasks: []plan.Subtask{},
			})
			continue
		}
		if len(tasks) == 0 || tasks[len(tasks)-1].ID != r.TaskID {
			return nil, clierr.Newf(clierr.InvalidImport,
				"subtask row #%d references task #%d out of order", r.SubtaskID, r.TaskID)
		}
		last := &tasks[len(tasks)-1]
		last.Subtasks = append(last.Subtasks, plan.Subtask{
			ID:       r.SubtaskID,
			Name:     r.SubtaskName,
			Owner:    r.Owner,
			Interval: iv,
		})
	}
	return tasks, nil
}
