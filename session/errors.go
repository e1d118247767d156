package session

import "errors"

var (
	ErrAccessDenied       = errors.New("contest access denied")
	ErrNotConfirmed       = errors.New("confirmation declined")
	ErrNavigationInFlight = errors.New("another problem switch is in progress")
	ErrExecutionInFlight  = errors.New("another run or submit is in progress")
	ErrNoTestCases        = errors.New("problem has no test cases to run")
	ErrNoProblemReady     = errors.New("no problem is ready")
	ErrProblemNotFound    = errors.New("problem not found in contest")
	ErrNoNextProblem      = errors.New("already at the last problem")
	ErrSuperseded         = errors.New("superseded by a newer problem selection")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionClosed      = errors.New("session closed")
	ErrLanguageRequired   = errors.New("language is required")
	ErrInvalidPane        = errors.New("invalid pane")
)

// NotConfirmedError 用户拒绝确认, Prompt 为展示给用户的提示
type NotConfirmedError struct {
	Prompt string
}

func (e *NotConfirmedError) Error() string {
	return ErrNotConfirmed.Error() + ": " + e.Prompt
}

func (e *NotConfirmedError) Unwrap() error {
	return ErrNotConfirmed
}
