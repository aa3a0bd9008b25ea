package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/store"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode to the buffer first; headers are already sent so an encode
	// failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Failed to "+opName, "error", err)
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrCharacterUnknown):
		return http.StatusBadRequest, ErrMsgCharacterUnknownError
	case errors.Is(err, domain.ErrCharacterNotOwned):
		return http.StatusBadRequest, ErrMsgCharacterNotOwnedErr
	case errors.Is(err, domain.ErrCharacterBusy):
		return http.StatusConflict, ErrMsgCharacterBusyError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrInsufficientDuplicates):
		return http.StatusBadRequest, ErrMsgNotEnoughDuplicatesErr
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusBadRequest, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrQuestIncomplete):
		return http.StatusBadRequest, ErrMsgQuestIncompleteError
	case errors.Is(err, domain.ErrWeeklyLimitReached):
		return http.StatusBadRequest, ErrMsgWeeklyLimitError
	case errors.Is(err, domain.ErrItemUnknown):
		return http.StatusBadRequest, ErrMsgItemUnknownError
	case errors.Is(err, domain.ErrSlotBusy):
		return http.StatusConflict, ErrMsgSlotBusyError
	case errors.Is(err, domain.ErrSlotIdle):
		return http.StatusBadRequest, ErrMsgSlotIdleError
	case errors.Is(err, domain.ErrSlotNotComplete):
		return http.StatusBadRequest, ErrMsgSlotNotCompleteError
	case errors.Is(err, domain.ErrNoDice):
		return http.StatusBadRequest, ErrMsgNoDiceError
	case errors.Is(err, domain.ErrSkinUnknown):
		return http.StatusBadRequest, ErrMsgSkinUnknownError
	case errors.Is(err, domain.ErrSkinNotOwned):
		return http.StatusBadRequest, ErrMsgSkinNotOwnedError
	case errors.Is(err, store.ErrVersionConflict):
		metrics.StoreConflictsTotal.Inc()
		return http.StatusConflict, ErrMsgConflictError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
