package planets

import (
	"net/http"

	"github.com/yanizio/stellar-dominion/internal/view"
)

// redirectError ends a request with a 303.  It is terminal: the handler
// writes nothing else.
type redirectError struct {
	location string
	reason   string
}

func (e *redirectError) Error() string { return "redirect to " + e.location + " (" + e.reason + ")" }

func toLogin(reason string) error {
	return &redirectError{location: view.LoginPath, reason: reason}
}

// statusError ends a request with status and {"message"}.
type statusError struct {
	status  int
	message string
	cause   error
}

func (e *statusError) Error() string { return http.StatusText(e.status) + ": " + e.message }
func (e *statusError) Unwrap() error { return e.cause }

func notFound(message string, cause error) error {
	return &statusError{status: http.StatusNotFound, message: message, cause: cause}
}
