package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrQuit is returned when the user leaves the session without a
	// successful submission.
	ErrQuit = errors.New("tui: quit without submitting")
)
