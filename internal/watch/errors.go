package watch

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a watch failure for exit-status and logging purposes.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindProcessTable means the system process table could not be
	// enumerated or measured at all.
	ErrorKindProcessTable
	// ErrorKindEnvironment means the target's environment could not be
	// captured. The kill is not attempted in that case.
	ErrorKindEnvironment
	// ErrorKindTermination means signal delivery failed for a reason other
	// than the process already being gone.
	ErrorKindTermination
	// ErrorKindSpawn means the relaunch command could not be executed.
	ErrorKindSpawn
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindProcessTable:
		return "process table unavailable"
	case ErrorKindEnvironment:
		return "environment unavailable"
	case ErrorKindTermination:
		return "termination failed"
	case ErrorKindSpawn:
		return "spawn failed"
	default:
		return "unknown error"
	}
}

// Error wraps a failure with its kind and the process it concerns, if known.
type Error struct {
	Kind ErrorKind
	Op   string // "locate", "measure", "environ", "terminate", "relaunch"
	PID  int32  // 0 when not tied to a single process
	Err  error
}

func (e *Error) Error() string {
	if e.PID != 0 {
		return fmt.Sprintf("%s failed for PID %d: %s: %v", e.Op, e.PID, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s failed: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a categorized watch error.
func NewError(kind ErrorKind, op string, pid int32, err error) *Error {
	return &Error{Kind: kind, Op: op, PID: pid, Err: err}
}

// KindOf extracts the error kind, or ErrorKindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorKindUnknown
}
