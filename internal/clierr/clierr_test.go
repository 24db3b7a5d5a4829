package clierr

import "testing"

func TestErrorFamilies(t *testing.T) {
	tests := []struct {
		code       string
		validation bool
		notFound   bool
	}{
		{InvalidInterval, true, false},
		{EmptyName, true, false},
		{ContainmentViolation, true, false},
		{MemberNotFound, true, false},
		{InvalidDate, true, false},
		{InvalidImport, true, false},
		{TaskNotFound, false, true},
		{SubtaskNotFound, false, true},
		{MaterialNotFound, false, true},
		{PlanNotFound, false, true},
		{PlanAlreadyExists, false, false},
		{ConfirmationReq, false, false},
		{InternalError, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e := New(tt.code, "x")
			if got := e.IsValidation(); got != tt.validation {
				t.Errorf("IsValidation: got %v, want %v", got, tt.validation)
			}
			if got := e.IsNotFound(); got != tt.notFound {
				t.Errorf("IsNotFound: got %v, want %v", got, tt.notFound)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if got := New(InternalError, "x").ExitCode(); got != 2 {
		t.Errorf("internal exit code: got %d, want 2", got)
	}
	if got := New(TaskNotFound, "x").ExitCode(); got != 1 {
		t.Errorf("not-found exit code: got %d, want 1", got)
	}
}

func TestWithDetails(t *testing.T) {
	e := Newf(TaskNotFound, "task not found: #%d", 7).
		WithDetails(map[string]any{"id": 7})
	if e.Error() != "task not found: #7" {
		t.Errorf("message: got %q", e.Error())
	}
	if e.Details["id"] != 7 {
		t.Errorf("details: got %v", e.Details)
	}
}
