package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the wire shape every REST endpoint answers with:
// {success, data} on success, {success:false, error} on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteSuccess(w http.ResponseWriter, status int, data any) error {
	return WriteJSON(w, status, &Envelope{Success: true, Data: data})
}

func WriteError(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, &Envelope{Success: false, Code: code, Error: message})
}

// WriteServerError distinguishes deadline expiry, which the fetch-timeout
// middleware produces on slow list queries, from genuine server faults.
func WriteServerError(w http.ResponseWriter, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return WriteError(w, http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "request timed out")
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error")
}

// WriteValidationErrors reports field-level violations alongside the error
// envelope so forms can highlight the offending inputs.
func WriteValidationErrors(w http.ResponseWriter, code string, errs map[string]string) error {
	return WriteJSON(w, http.StatusUnprocessableEntity, &Envelope{
		Success: false,
		Code:    code,
		Error:   "validation failed",
		Data:    errs,
	})
}
