package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/enhance"
	"github.com/pawprintgames/gachapet/internal/progress"
)

// EnhanceRequest represents an enhancement attempt
type EnhanceRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
}

// HandleEnhance spends duplicates to raise a character's enhancement level
func HandleEnhance(enhanceService enhance.Service, tracker *progress.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}
		var req EnhanceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Enhance character"); err != nil {
			return
		}

		result, err := enhanceService.Enhance(r.Context(), playerID, req.CharacterID)
		if err != nil {
			respondServiceError(w, r, "enhance character", err)
			return
		}

		if result.Status == enhance.StatusEnhanced {
			tracker.Track(r.Context(), playerID, domain.EventEnhance, 1)
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleGetStats returns a character's derived stats at its current level
func HandleGetStats(enhanceService enhance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		stats, err := enhanceService.Stats(r.Context(), playerID, characterID)
		if err != nil {
			respondServiceError(w, r, "get stats", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: stats})
	}
}

// HandleGetEnhancement returns a character's enhancement level and duplicates
func HandleGetEnhancement(enhanceService enhance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		e, err := enhanceService.Get(r.Context(), playerID, characterID)
		if err != nil {
			respondServiceError(w, r, "get enhancement", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: e})
	}
}
