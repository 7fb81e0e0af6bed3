package interview

import (
	"errors"

	"github.com/prepdesk/interviewd/internal/question"
)

var (
	// ErrSessionNotFound means the session id is unknown to the registry.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionAlreadyCompleted means a mutating call hit a terminal
	// session. Surfaced to callers as a conflict.
	ErrSessionAlreadyCompleted = errors.New("session already completed")

	// ErrSessionNotCompleted means a report was requested for a session
	// that is still active.
	ErrSessionNotCompleted = errors.New("session not completed")

	// ErrSubmissionSuperseded means a concurrent submission advanced the
	// session while this answer's evaluation was in flight. The racing
	// answer was recorded; this one was not.
	ErrSubmissionSuperseded = errors.New("submission superseded by a concurrent answer")

	// ErrInsufficientQuestions re-exports the bank error so callers of this
	// package see the whole taxonomy in one place.
	ErrInsufficientQuestions = question.ErrInsufficientQuestions
)
