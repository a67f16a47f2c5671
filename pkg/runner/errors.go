package runner

import (
	"errors"
	"fmt"

	"github.com/pressctl/pressctl/pkg/process"
)

// FatalError is the typed condition a handler raises to abort the
// invocation. The pipeline boundary prints it and exits with status 1.
type FatalError struct {
	Message string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FatalError) Unwrap() error { return e.Err }

// Fatalf builds a FatalError from a format string.
func Fatalf(format string, args ...any) error {
	return &FatalError{Message: fmt.Sprintf(format, args...)}
}

// WarningError is the typed condition a handler raises to report a
// problem without terminating: it prints, and the process continues
// toward exit 0 unless a later fatal condition occurs.
type WarningError struct {
	Message string
}

func (e *WarningError) Error() string { return e.Message }

// Warnf builds a WarningError from a format string.
func Warnf(format string, args ...any) error {
	return &WarningError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps a pipeline error to the process exit status: 0 on nil,
// a delegated subprocess's own status, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *process.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
