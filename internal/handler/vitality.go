package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/progress"
	"github.com/pawprintgames/gachapet/internal/vitality"
)

// VitalityHandler bundles the HP and tap endpoints
type VitalityHandler struct {
	service vitality.Service
	tracker *progress.Tracker
}

// NewVitalityHandler creates a VitalityHandler
func NewVitalityHandler(service vitality.Service, tracker *progress.Tracker) *VitalityHandler {
	return &VitalityHandler{service: service, tracker: tracker}
}

// WriteVitalityRequest represents a direct HP write from the client session.
// Values outside the valid range are clamped, not rejected.
type WriteVitalityRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	HP          int    `json:"hp"`
	TapCount    int    `json:"tap_count" validate:"gte=0"`
}

// TapRequest represents one tap on the active character
type TapRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
}

// HandleGet returns the character's vitality with healing credited
func (h *VitalityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	characterID, ok := GetQueryParam(r, w, "character_id")
	if !ok {
		return
	}

	v, err := h.service.Read(r.Context(), playerID, characterID)
	if err != nil {
		respondServiceError(w, r, "get vitality", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: v})
}

// HandleWrite persists a session's HP snapshot
func (h *VitalityHandler) HandleWrite(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	var req WriteVitalityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Write vitality"); err != nil {
		return
	}

	v, err := h.service.Write(r.Context(), playerID, req.CharacterID, req.HP, req.TapCount)
	if err != nil {
		respondServiceError(w, r, "write vitality", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: v})
}

// HandleTap records one tap, advancing the HP-loss odometer
func (h *VitalityHandler) HandleTap(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	var req TapRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record tap"); err != nil {
		return
	}

	result, err := h.service.RecordTap(r.Context(), playerID, req.CharacterID)
	if err != nil {
		respondServiceError(w, r, "record tap", err)
		return
	}

	h.tracker.Track(r.Context(), playerID, domain.EventTap, 1)
	respondJSON(w, http.StatusOK, DataResponse{Data: result})
}
