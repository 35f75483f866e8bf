package view

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "No such planet")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["message"] != "No such planet" {
		t.Fatalf("body = %s (%v)", rec.Body.String(), err)
	}
}

func TestToLogin(t *testing.T) {
	rec := httptest.NewRecorder()
	ToLogin(rec, httptest.NewRequest(http.MethodGet, "/planets/x/buildings", nil), ReasonNoSession)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != LoginPath {
		t.Fatalf("code = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
}
