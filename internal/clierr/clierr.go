// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for script consumption.
package clierr

import (
	"fmt"
	"strconv"
)

// Error code constants — uppercase, underscore-separated, stable across minor versions.
//
// The validation family (INVALID_INTERVAL, EMPTY_NAME, CONTAINMENT_VIOLATION,
// MEMBER_NOT_FOUND) covers caller-input problems; the not-found family
// (TASK_NOT_FOUND, SUBTASK_NOT_FOUND) covers dangling references.
const (
	TaskNotFound         = "TASK_NOT_FOUND"
	SubtaskNotFound      = "SUBTASK_NOT_FOUND"
	MemberNotFound       = "MEMBER_NOT_FOUND"
	MaterialNotFound     = "MATERIAL_NOT_FOUND"
	PlanNotFound         = "PLAN_NOT_FOUND"
	PlanAlreadyExists    = "PLAN_ALREADY_EXISTS"
	InvalidInterval      = "INVALID_INTERVAL"
	EmptyName            = "EMPTY_NAME"
	ContainmentViolation = "CONTAINMENT_VIOLATION"
	InvalidDate          = "INVALID_DATE"
	InvalidTaskID        = "INVALID_TASK_ID"
	InvalidStatus        = "INVALID_STATUS"
	InvalidRange         = "INVALID_RANGE"
	InvalidImport        = "INVALID_IMPORT"
	ConfirmationReq      = "CONFIRMATION_REQUIRED"
	InternalError        = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// IsValidation reports whether the error is a caller-input validation failure.
func (e *Error) IsValidation() bool {
	switch e.Code {
	case InvalidInterval, EmptyName, ContainmentViolation, MemberNotFound,
		InvalidDate, InvalidTaskID, InvalidStatus, InvalidRange, InvalidImport:
		return true
	}
	return false
}

// IsNotFound reports whether the error references a missing entity.
func (e *Error) IsNotFound() bool {
	switch e.Code {
	case TaskNotFound, SubtaskNotFound, MaterialNotFound, PlanNotFound:
		return true
	}
	return false
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// SilentError signals an exit code without additional output.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
