package app

import (
	"errors"
	"strings"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "save"},
			expected: "save",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/path/file.txt"},
			expected: "open /path/file.txt",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "save", Target: "/path/file.txt", Context: "write", Err: errors.New("disk full")},
			expected: "save /path/file.txt (write): disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewOperationError("open", "/x", inner).WithContext("load")

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	if err.Context != "load" {
		t.Errorf("expected context 'load', got '%s'", err.Context)
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil Unwrap on nil receiver")
	}
}

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{"component only", &ComponentError{Component: "draw"}, "draw"},
		{"with action", &ComponentError{Component: "draw", Action: "run"}, "draw: run"},
		{"with error", &ComponentError{Component: "resize", Err: errors.New("boom")}, "resize: boom"},
		{"full", NewComponentError("cursor", "run", errors.New("boom")), "cursor: run: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", got, tt.expected)
			}
		})
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := NewRecoveredPanicError("kaboom", "")
	if err.Error() != "panic: kaboom" {
		t.Errorf("Error() = '%s'", err.Error())
	}

	withStack := NewRecoveredPanicError(42, "goroutine 1")
	if !strings.HasPrefix(withStack.Error(), "panic: 42\n") {
		t.Errorf("expected stack after value, got '%s'", withStack.Error())
	}

	wrapped := NewComponentError("draw", "run", withStack)
	var perr *RecoveredPanicError
	if !errors.As(wrapped, &perr) || perr.Value != 42 {
		t.Error("expected errors.As to find the panic")
	}
}

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "backend", Err: inner}

	if err.Error() != "init backend: no tty" {
		t.Errorf("Error() = '%s'", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	if list.HasErrors() || list.AsError() != nil {
		t.Fatal("expected empty list")
	}

	list.Add(nil)
	if list.Len() != 0 {
		t.Errorf("expected nil to be ignored, got %d", list.Len())
	}

	first := errors.New("first")
	list.Add(first)
	if list.Error() != "first" {
		t.Errorf("Error() = '%s'", list.Error())
	}

	list.Add(ErrAlreadyRunning)
	if list.Error() != "2 errors: first: first" {
		t.Errorf("Error() = '%s'", list.Error())
	}

	err := list.AsError()
	if !errors.Is(err, first) || !errors.Is(err, ErrAlreadyRunning) {
		t.Error("expected errors.Is to see every collected error")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "x") != nil {
		t.Error("expected nil for nil error")
	}

	inner := errors.New("denied")
	err := WrapError(inner, "opening %s", "a.log")
	if err.Error() != "opening a.log: denied" {
		t.Errorf("Error() = '%s'", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error")
	}
}
