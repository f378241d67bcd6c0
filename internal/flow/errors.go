package flow

import "errors"

var (
	// ErrEmptySelection blocks Start when no pillar is selected. Its text
	// is shown to the respondent as-is.
	ErrEmptySelection = errors.New("Please choose Full scan or select at least one pillar.")

	// ErrInvalidAction is returned for actions that make no sense in the
	// current mode or cursor position.
	ErrInvalidAction = errors.New("action not available here")

	// ErrUnknownQuestion is returned when an answer names a question that
	// is not on screen.
	ErrUnknownQuestion = errors.New("question is not the current question")

	// ErrSessionClosed is returned by a Session after Close.
	ErrSessionClosed = errors.New("session closed")
)
