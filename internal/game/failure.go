// internal/game/failure.go
//
// Failure values returned by the game API client.
//
// Context
// -------
// Every call either succeeds or returns a *Failure.  Handlers branch on the
// Reason (for example, an expired key sends the visitor back to login) and
// show Message to the player.  Transport problems are folded into the same
// shape so callers never inspect net/http errors directly.

package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// FailureReason classifies a failed call.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonNotAuthenticated   FailureReason = "NOT_AUTHENTICATED"
	ReasonAPIKeyExpired      FailureReason = "API_KEY_EXPIRED"
	ReasonInvalidCredentials FailureReason = "INVALID_CREDENTIALS"
	ReasonNotFound           FailureReason = "NOT_FOUND"
	ReasonUnavailable        FailureReason = "UNAVAILABLE"
	ReasonUnknown            FailureReason = "UNKNOWN"
)

// Error codes carried in the API's error envelope.
const (
	codeUserNotAuthenticated  = 1000
	codeAuthenticationExpired = 1001
	codeInvalidCredentials    = 1002
)

// reasonForCode maps an envelope error code to a FailureReason.
func reasonForCode(code int) FailureReason {
	switch code {
	case codeUserNotAuthenticated:
		return ReasonNotAuthenticated
	case codeAuthenticationExpired:
		return ReasonAPIKeyExpired
	case codeInvalidCredentials:
		return ReasonInvalidCredentials
	default:
		return ReasonUnknown
	}
}

// Failure is the error type returned by Client.
type Failure struct {
	Reason    FailureReason
	Message   string
	RequestID uuid.UUID // zero when the API did not answer
	Err       error     // transport or decode cause, if any
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("game api: %s: %s (cause: %v)", f.Reason, f.Message, f.Err)
	}
	return fmt.Sprintf("game api: %s: %s", f.Reason, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// ReasonOf returns the failure reason carried by err.  nil yields ReasonNone;
// errors that are not a *Failure yield ReasonUnknown.
func ReasonOf(err error) FailureReason {
	if err == nil {
		return ReasonNone
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonUnknown
}

// MessageOf returns the player-facing message carried by err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
