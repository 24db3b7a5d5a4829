package interval

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/date"
)

func mustParse(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := Parse(start, end)
	if err != nil {
		t.Fatalf("Parse(%q, %q): %v", start, end, err)
	}
	return iv
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-01-06T08:00", false},
		{"2025-12-31T23:59", false},
		{"2025-01-06 08:00", true},
		{"2025-01-06", true},
		{"08:00", true},
		{"", true},
		{"2025-01-06T08:00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTime(%q): want error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime(%q): %v", tt.input, err)
			}
			if got.String() != tt.input {
				t.Errorf("round trip: got %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestNewRejectsInvalidSpans(t *testing.T) {
	at := At(2025, time.January, 6, 8, 0)

	tests := []struct {
		name  string
		start Time
		end   Time
	}{
		{"zero length", at, at},
		{"inverted", At(2025, time.January, 6, 12, 0), at},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.start, tt.end)
			var cliErr *clierr.Error
			if !errors.As(err, &cliErr) {
				t.Fatalf("New: want *clierr.Error, got %v", err)
			}
			if cliErr.Code != clierr.InvalidInterval {
				t.Errorf("code: got %s, want %s", cliErr.Code, clierr.InvalidInterval)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := mustParse(t, "2025-01-06T08:00", "2025-01-06T12:00")

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", a, true},
		{"partial", mustParse(t, "2025-01-06T10:00", "2025-01-06T14:00"), true},
		{"contained", mustParse(t, "2025-01-06T09:00", "2025-01-06T10:00"), true},
		{"touching end", mustParse(t, "2025-01-06T12:00", "2025-01-06T14:00"), false},
		{"touching start", mustParse(t, "2025-01-06T06:00", "2025-01-06T08:00"), false},
		{"disjoint", mustParse(t, "2025-01-07T08:00", "2025-01-07T12:00"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps: got %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (symmetric): got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	parent := mustParse(t, "2025-01-06T08:00", "2025-01-06T16:00")

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", parent, true},
		{"inside", mustParse(t, "2025-01-06T09:00", "2025-01-06T10:30"), true},
		{"flush start", mustParse(t, "2025-01-06T08:00", "2025-01-06T10:00"), true},
		{"flush end", mustParse(t, "2025-01-06T14:00", "2025-01-06T16:00"), true},
		{"starts before", mustParse(t, "2025-01-06T07:00", "2025-01-06T08:30"), false},
		{"ends after", mustParse(t, "2025-01-06T15:00", "2025-01-06T17:00"), false},
		{"disjoint", mustParse(t, "2025-01-07T08:00", "2025-01-07T09:00"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parent.Contains(tt.other); got != tt.want {
				t.Errorf("Contains: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{"same day", "2025-01-06T08:00", "2025-01-06T17:00", []string{"2025-01-06"}},
		{"three days", "2025-01-06T08:00", "2025-01-08T12:00", []string{"2025-01-06", "2025-01-07", "2025-01-08"}},
		{"ends at midnight", "2025-01-06T08:00", "2025-01-07T00:00", []string{"2025-01-06"}},
		{"crosses midnight", "2025-01-06T22:00", "2025-01-07T02:00", []string{"2025-01-06", "2025-01-07"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := mustParse(t, tt.start, tt.end)
			days := iv.Days()
			if len(days) != len(tt.want) {
				t.Fatalf("Days: got %d days, want %d", len(days), len(tt.want))
			}
			for i, d := range days {
				if d.String() != tt.want[i] {
					t.Errorf("day %d: got %s, want %s", i, d, tt.want[i])
				}
			}
		})
	}
}

func TestOverlapsDate(t *testing.T) {
	iv := mustParse(t, "2025-01-06T22:00", "2025-01-07T02:00")

	tests := []struct {
		day  date.Date
		want bool
	}{
		{date.New(2025, time.January, 5), false},
		{date.New(2025, time.January, 6), true},
		{date.New(2025, time.January, 7), true},
		{date.New(2025, time.January, 8), false},
	}
	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			if got := iv.OverlapsDate(tt.day); got != tt.want {
				t.Errorf("OverlapsDate(%s): got %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestTimeJSONRoundTrip(t *testing.T) {
	iv := mustParse(t, "2025-01-06T08:00", "2025-01-06T12:00")

	data, err := json.Marshal(iv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"start":"2025-01-06T08:00","end":"2025-01-06T12:00"}`
	if string(data) != want {
		t.Errorf("marshal: got %s, want %s", data, want)
	}

	var back Interval
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Start.Equal(iv.Start.Time) || !back.End.Equal(iv.End.Time) {
		t.Errorf("round trip: got %v, want %v", back, iv)
	}
}

func TestTimeUnmarshalRejectsBadFormat(t *testing.T) {
	var tm Time
	if err := json.Unmarshal([]byte(`"2025-01-06 08:00"`), &tm); err == nil {
		t.Error("unmarshal with space separator: want error")
	}
}
