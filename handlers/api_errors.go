package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/galeria-app/galeriabackend/apperrors"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeNotFound is the single shape used for both "does not exist" and
// "exists but forbidden", so the response never reveals whether a
// private resource exists.
func writeNotFound(w http.ResponseWriter) {
	WriteAPIError(w, http.StatusNotFound, "not_found", "the requested resource was not found")
}

// WriteDomainError translates a taxonomy error into the API response.
// Every handler funnels service errors through here so the mapping,
// including the private-resource obfuscation, stays consistent.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrUnauthorized):
		writeNotFound(w)
	case errors.Is(err, apperrors.ErrWrongPassword),
		errors.Is(err, apperrors.ErrNoPasswordSet),
		errors.Is(err, apperrors.ErrInvalidCredential):
		// one detail for every credential failure mode
		WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
	case errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrExpired),
		errors.Is(err, apperrors.ErrRevoked):
		WriteAPIError(w, http.StatusUnauthorized, "invalid_token", "the presented token is not valid")
	case errors.Is(err, apperrors.ErrConflict):
		WriteAPIError(w, http.StatusConflict, "conflict", "a conflicting resource already exists")
	case errors.Is(err, apperrors.ErrCycleRejected):
		WriteAPIError(w, http.StatusBadRequest, "cycle_rejected", "the move would make a folder its own ancestor")
	case errors.Is(err, apperrors.ErrRetryExhausted):
		WriteAPIError(w, http.StatusServiceUnavailable, "retry_exhausted", "could not allocate a unique link, try again")
	default:
		log.Printf("internal error: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "an internal error occurred")
	}
}
