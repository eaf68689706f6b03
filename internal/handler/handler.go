package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure can't be reported.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeFieldErrors writes a validation failure with per-field messages.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string, logger zerolog.Logger) {
	logger.Debug().Int("fields", len(fields)).Msg("form validation failed")
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrCodeValidationFailed,
		Message: model.ErrFixFormErrors.Message,
		Fields:  fields,
	})
}

// writeDomainError maps a domain error to its HTTP status.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeProductNotFound, model.ErrCodeCheckoutNotFound:
		status = http.StatusNotFound
	case model.ErrCodeCheckoutProcessing:
		status = http.StatusConflict
	case model.ErrCodeCatalogUnavailable:
		status = http.StatusBadGateway
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// decodeJSON decodes a request body, reporting malformed JSON as a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}
