package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field is still invalid after the
	// configured number of prompts.
	ErrTooManyAttempts = errors.New("tui: too many invalid answers")
	// ErrSubmitFailed wraps the form-level message shown when the submitter
	// reports an error.
	ErrSubmitFailed = errors.New("tui: submission failed")
)
