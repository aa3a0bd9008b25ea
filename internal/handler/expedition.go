package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/expedition"
	"github.com/pawprintgames/gachapet/internal/progress"
)

// ExpeditionHandler bundles the expedition slot endpoints
type ExpeditionHandler struct {
	service expedition.Service
	tracker *progress.Tracker
}

// NewExpeditionHandler creates an ExpeditionHandler
func NewExpeditionHandler(service expedition.Service, tracker *progress.Tracker) *ExpeditionHandler {
	return &ExpeditionHandler{service: service, tracker: tracker}
}

// StartExpeditionRequest represents an expedition start request
type StartExpeditionRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	Tier        string `json:"tier" validate:"required"`
}

// slotParam parses the {slot} URL parameter. If ok is false the response has
// already been written.
func slotParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil || slot < 0 || slot >= domain.ExpeditionSlotCount {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return 0, false
	}
	return slot, true
}

// HandleGetSlots returns all slots with lazy maturation applied
func (h *ExpeditionHandler) HandleGetSlots(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}

	slots, err := h.service.Slots(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "get expeditions", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: slots})
}

// HandleStart dispatches a character on an expedition
func (h *ExpeditionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	slot, ok := slotParam(w, r)
	if !ok {
		return
	}
	var req StartExpeditionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start expedition"); err != nil {
		return
	}

	view, err := h.service.Start(r.Context(), playerID, slot, req.CharacterID, req.Tier)
	if err != nil {
		respondServiceError(w, r, "start expedition", err)
		return
	}
	respondJSON(w, http.StatusCreated, DataResponse{Message: "Expedition started", Data: view})
}

// HandlePreview returns the reward a slot would pay if collected now
func (h *ExpeditionHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	slot, ok := slotParam(w, r)
	if !ok {
		return
	}

	reward, err := h.service.Preview(r.Context(), playerID, slot)
	if err != nil {
		respondServiceError(w, r, "preview expedition", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: map[string]int{"reward": reward}})
}

// HandleCollect pays out a matured expedition and frees the slot
func (h *ExpeditionHandler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	slot, ok := slotParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.Collect(r.Context(), playerID, slot)
	if err != nil {
		respondServiceError(w, r, "collect expedition", err)
		return
	}

	h.tracker.Track(r.Context(), playerID, domain.EventExpeditionCollect, 1)
	respondJSON(w, http.StatusOK, DataResponse{Message: "Expedition collected", Data: result})
}
