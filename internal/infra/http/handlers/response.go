package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError maps the error taxonomy onto HTTP statuses. Technical
// errors stay generic on the wire; details are already in the log.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		writeErrorResponse(w, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	if techErr, ok := err.(*usecase.TechnicalError); ok {
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, "internal error")
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}

func domainStatus(code string) int {
	switch code {
	case "CAPTCHA_FAILED":
		return http.StatusForbidden
	case "RATE_LIMIT_EXCEEDED":
		return http.StatusTooManyRequests
	case "INVALID_CREDENTIALS", "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "NOT_FOUND":
		return http.StatusNotFound
	case "EMAIL_EXISTS":
		return http.StatusConflict
	default: // VALIDATION_ERROR, INVALID_CODE, CODE_EXPIRED, INVALID_STATUS, EMPTY_NOTE
		return http.StatusBadRequest
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First hop is the client.
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
