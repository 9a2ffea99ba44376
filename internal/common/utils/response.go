// internal/common/utils/response.go
// Standardized API responses ensure consistency across all endpoints

package utils

import (
	"encoding/json"
	"net/http"
)

// Response statuses callers branch on. Every endpoint reports one of these in
// the body so clients do not have to rely on the HTTP status alone.
const (
	StatusOK        = "ok"
	StatusInvalid   = "invalid"
	StatusNotFound  = "not_found"
	StatusForbidden = "forbidden"
	StatusConflict  = "conflict"
	StatusError     = "error"
)

// Response is the standard API response structure
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithJSON sends a JSON response with the specified status code and payload
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","message":"Error marshaling JSON"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithData sends a success response with data
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, Response{
		Status: StatusOK,
		Data:   data,
	})
}

// RespondWithMessage sends a success response carrying only a message
func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Response{
		Status:  StatusOK,
		Message: message,
	})
}

// RespondWithError sends a failure response with the given body status
func RespondWithError(w http.ResponseWriter, code int, status, message string) {
	RespondWithJSON(w, code, Response{
		Status:  status,
		Message: message,
	})
}

// RespondInternalError sends a generic internal-error response. The underlying
// error is never placed in the body; callers log it instead.
func RespondInternalError(w http.ResponseWriter) {
	RespondWithError(w, http.StatusInternalServerError, StatusError, "Internal server error")
}
