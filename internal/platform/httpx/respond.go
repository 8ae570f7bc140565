// Package httpx provides JSON request/response utilities. Every response
// body follows the envelope {success, message?, data?, errors?}.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform JSON response body.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK sends a 200 success envelope with data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created sends a 201 success envelope with a message and data.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Message sends a 200 success envelope with a message and optional data.
func Message(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail sends a failure envelope with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

// FailFields sends a 422 failure envelope carrying field-level errors.
func FailFields(w http.ResponseWriter, message string, fields map[string]string) {
	write(w, http.StatusUnprocessableEntity, Envelope{Success: false, Message: message, Errors: fields})
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
