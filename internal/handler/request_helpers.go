package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/pawprintgames/gachapet/internal/logger"
)

// PlayerIDHeader carries the authenticated player identity. Authentication
// itself happens upstream; the engine trusts the header.
const PlayerIDHeader = "X-Player-ID"

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetPlayerID extracts the player identity header. If it is missing an error
// response has already been written and the handler should return.
func GetPlayerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID := r.Header.Get(PlayerIDHeader)
	if playerID == "" {
		logger.FromContext(r.Context()).Warn("Missing player ID header", "path", r.URL.Path)
		respondError(w, http.StatusBadRequest, ErrMsgMissingPlayerHeader)
		return "", false
	}
	if _, err := uuid.Parse(playerID); err != nil {
		logger.FromContext(r.Context()).Warn("Malformed player ID header", "path", r.URL.Path)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return "", false
	}
	return playerID, true
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the HTTP response has already been written and the
// handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetQueryParam retrieves a required query parameter. If ok is false the
// HTTP response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}
