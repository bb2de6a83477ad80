// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"personal-site/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers already sent; nothing left to do but log
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// Status maps a domain error onto its HTTP status code. Unclassified
// errors are internal.
func Status(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, entity.ErrStoreConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DomainError classifies err with Status and writes it with SafeError.
func DomainError(w http.ResponseWriter, err error) {
	SafeError(w, Status(err), err)
}

// SafeError sanitizes error messages before returning them to users.
// Errors classified by the domain taxonomy are safe to echo; anything
// unclassified is returned as "internal server error" with the detail
// logged for debugging.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	// 5xx は常に内部エラーとして扱う
	if code < 500 && isSafe(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// isSafe reports whether the error carries only user-facing detail.
func isSafe(err error) bool {
	for _, sentinel := range []error{
		entity.ErrInvalidInput,
		entity.ErrInvalidCredentials,
		entity.ErrForbidden,
		entity.ErrNotFound,
		entity.ErrAccountExists,
		entity.ErrStoreConflict,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
