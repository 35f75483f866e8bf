// internal/view/respond.go
//
// Response writers shared by components.
//
// Context
// -------
// Game pages hand a plain view model to the client as JSON.  This file owns
// the three ways a handler ends a request:
//
//   - JSON          – status + encoded view model.
//   - Message       – status + {"message": ...}, used for 4xx/5xx outcomes.
//   - ToLogin       – 303 See Other to LoginPath, counted by reason.
//
// Encoding failures are logged through the request logger; by then the
// status line is already on the wire, so nothing else can be done.

package view

import (
	"encoding/json"
	"net/http"

	"github.com/yanizio/stellar-dominion/internal/logger"
	"github.com/yanizio/stellar-dominion/internal/metrics"
)

// LoginPath is where visitors without a usable session are sent.
const LoginPath = "/login"

// Redirect reasons, used as the session_redirects_total label.
const (
	ReasonNoSession    = "no_session"
	ReasonNoCredential = "no_credential"
	ReasonKeyExpired   = "key_expired"
	ReasonLoggedOut    = "logged_out"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Errorw("response encode failed", "err", err)
	}
}

// messageBody is the error payload shape.
type messageBody struct {
	Message string `json:"message"`
}

// Message writes {"message": msg} with the given status.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, messageBody{Message: msg})
}

// ToLogin ends the request with a 303 to LoginPath.
func ToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	SeeOther(w, r, LoginPath, reason)
}

// SeeOther ends the request with a 303 to location and records reason.
func SeeOther(w http.ResponseWriter, r *http.Request, location, reason string) {
	metrics.SessionRedirectsTotal.WithLabelValues(reason).Inc()
	logger.FromContext(r.Context()).Debugw("redirect", "location", location, "reason", reason)
	http.Redirect(w, r, location, http.StatusSeeOther)
}
