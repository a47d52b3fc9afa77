package submission

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"Backend-Retreat-Survey/src/models"
	"Backend-Retreat-Survey/src/services/survey"
)

var (
	// ErrValidation: the answers do not pass the validator.
	ErrValidation = errors.New("survey answers are not valid")
	// ErrIntegrity: definition and persistence configuration disagree.
	ErrIntegrity = errors.New("survey configuration integrity error")
	// ErrRemote: the sink failed; retrying with the same answers is safe.
	ErrRemote = errors.New("survey submission could not be stored")
)

const (
	MsgSubmitFailed   = "We couldn't submit your answers. Please try again in a moment."
	MsgSubmitInFlight = "Your answers are already being submitted."
	MsgFixErrors      = "Please correct the highlighted answers before submitting."
)

type ValidationFailedError struct {
	Errors models.ValidationErrors
}

func (e *ValidationFailedError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("survey answers are not valid: %s", strings.Join(keys, ", "))
}

func (e *ValidationFailedError) Is(target error) bool { return target == ErrValidation }

// RemoteError wraps a sink failure with the phase it happened in.
type RemoteError struct {
	Phase string
	Err   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// UserMessage is the single message shown to the respondent for a failed
// submit. Details stay in the logs.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return MsgFixErrors
	case errors.Is(err, survey.ErrSubmitInFlight):
		return MsgSubmitInFlight
	default:
		return MsgSubmitFailed
	}
}
