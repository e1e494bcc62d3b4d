package generator

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by Generate matches exactly one of
// these with errors.Is.
var (
	ErrPromptNotFound        = errors.New("prompt not found")
	ErrDirectoryCreateFailed = errors.New("directory create failed")
	ErrWriteFailed           = errors.New("write failed")
)

// Phase is the pipeline step in which a generation failed.
type Phase int

const (
	// PhaseRead covers resolving and reading the prompt document.
	PhaseRead Phase = iota
	// PhaseLayout covers creating output directories.
	PhaseLayout
	// PhaseWrite covers rendering and writing artifacts.
	PhaseWrite
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case PhaseRead:
		return "read"
	case PhaseLayout:
		return "layout"
	case PhaseWrite:
		return "write"
	default:
		return "unknown"
	}
}

// class returns the sentinel error for the phase.
func (p Phase) class() error {
	switch p {
	case PhaseRead:
		return ErrPromptNotFound
	case PhaseLayout:
		return ErrDirectoryCreateFailed
	default:
		return ErrWriteFailed
	}
}

// GenerationError describes a failed generation run.
type GenerationError struct {
	Phase Phase  // Step that failed
	Path  string // File or directory involved
	RunID string // Generate run the failure belongs to; empty from Prepare
	Err   error  // Underlying error
}

func newError(phase Phase, path string, err error) *GenerationError {
	return &GenerationError{Phase: phase, Path: path, Err: err}
}

// Error implements the error interface. The run ID, when set, is appended so
// the message can be matched against the run's debug log lines.
func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", e.Phase.class(), e.Path, e.Err)
	if e.RunID != "" {
		msg += fmt.Sprintf(" (run %s)", e.RunID)
	}
	return msg
}

// withRun stamps err with runID when it is a *GenerationError.
func withRun(err error, runID string) error {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		genErr.RunID = runID
	}
	return err
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's phase.
func (e *GenerationError) Is(target error) bool {
	return target == e.Phase.class()
}
