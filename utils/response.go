package utils

import (
	"encoding/json"
	"net/http"
)

// Response helpers producing the API's fixed envelopes: successes are
// {message?, <key>: payload}, errors are {message, jwtError?}.

// RespondSuccess writes a 200 envelope. key/data may be empty to send a
// message-only body.
func RespondSuccess(w http.ResponseWriter, message, key string, data interface{}) {
	body := map[string]interface{}{}
	if message != "" {
		body["message"] = message
	}
	if key != "" {
		body[key] = data
	}
	writeJSON(w, http.StatusOK, body)
}

// RespondCreated is RespondSuccess with a 201 status.
func RespondCreated(w http.ResponseWriter, message, key string, data interface{}) {
	body := map[string]interface{}{}
	if message != "" {
		body["message"] = message
	}
	if key != "" {
		body[key] = data
	}
	writeJSON(w, http.StatusCreated, body)
}

// RespondJSON writes an arbitrary 200 payload without the envelope.
func RespondJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, message, "Invalid data!")
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	respondError(w, http.StatusUnauthorized, message, "Unauthorized")
}

func RespondNotFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, message, "Not found!")
}

func RespondConflict(w http.ResponseWriter, message string) {
	respondError(w, http.StatusConflict, message, "Conflict!")
}

// RespondInternalError is the catch-all 500 envelope. jwtError is only
// set by the auth middleware for expired sessions.
func RespondInternalError(w http.ResponseWriter, message, jwtError string) {
	if message == "" {
		message = "Oops! Something went wrong!"
	}
	body := map[string]interface{}{"message": message}
	if jwtError != "" {
		body["jwtError"] = jwtError
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

func respondError(w http.ResponseWriter, status int, message, fallback string) {
	if message == "" {
		message = fallback
	}
	writeJSON(w, status, map[string]interface{}{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
