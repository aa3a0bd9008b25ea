package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/collection"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/progress"
)

// CollectionHandler bundles the collection and skin endpoints
type CollectionHandler struct {
	service collection.Service
	tracker *progress.Tracker
}

// NewCollectionHandler creates a CollectionHandler
func NewCollectionHandler(service collection.Service, tracker *progress.Tracker) *CollectionHandler {
	return &CollectionHandler{service: service, tracker: tracker}
}

// SelectCharacterRequest represents a character selection request
type SelectCharacterRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
}

// EquipSkinRequest represents a skin equip request. An empty skin ID
// unequips the character's current skin.
type EquipSkinRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	SkinID      string `json:"skin_id"`
}

// HandleGet returns the owned set and selected character
func (h *CollectionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "get collection", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: c})
}

// HandleSelect sets the active character
func (h *CollectionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	var req SelectCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Select character"); err != nil {
		return
	}

	c, err := h.service.Select(r.Context(), playerID, req.CharacterID)
	if err != nil {
		respondServiceError(w, r, "select character", err)
		return
	}

	h.tracker.Track(r.Context(), playerID, domain.EventCharacterSelect, 1)
	respondJSON(w, http.StatusOK, DataResponse{Message: "Character selected", Data: c})
}

// HandleGetSkins returns owned and equipped skins
func (h *CollectionHandler) HandleGetSkins(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}

	skins, err := h.service.GetSkins(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "get skins", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: skins})
}

// HandleEquipSkin equips or unequips a skin on an owned character
func (h *CollectionHandler) HandleEquipSkin(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerID(w, r)
	if !ok {
		return
	}
	var req EquipSkinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip skin"); err != nil {
		return
	}

	skins, err := h.service.EquipSkin(r.Context(), playerID, req.CharacterID, req.SkinID)
	if err != nil {
		respondServiceError(w, r, "equip skin", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: "Skin equipped", Data: skins})
}
