package identity

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the envelope every HTTP response uses.
type JSONResponse struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries the machine-readable error code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, JSONResponse{Code: "ok", Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, JSONResponse{
		Code:  code,
		Error: &ErrorDetail{Code: code, Message: message},
	})
}

// respondServiceError maps domain errors onto HTTP statuses. Anything not
// recognized is an internal error and keeps its message out of the body.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrInvalidAccessToken):
		respondError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
	case errors.Is(err, ErrEmailTaken):
		respondError(w, http.StatusConflict, "email_taken", "primary email already registered")
	case errors.Is(err, ErrMissingEmail), errors.Is(err, ErrMissingPassword):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// respondStatus renders a flow Status for token consumption endpoints.
func respondStatus(w http.ResponseWriter, st Status, okData any) {
	switch st {
	case StatusOK:
		respondData(w, http.StatusOK, okData)
	case StatusShowForm:
		writeJSON(w, http.StatusOK, JSONResponse{Code: string(StatusShowForm)})
	case StatusExpired:
		respondError(w, http.StatusGone, string(StatusExpired), "token expired")
	default:
		respondError(w, http.StatusNotFound, string(StatusNotFound), "token not found")
	}
}
