package handler

import (
	"context"
	"net/http"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/gacha"
	"github.com/pawprintgames/gachapet/internal/logger"
	"github.com/pawprintgames/gachapet/internal/progress"
)

// TutorialTargeter points the tutorial equip step at a rolled character
type TutorialTargeter interface {
	SetTarget(ctx context.Context, playerID, characterID string) error
}

// RollResponse represents a gacha roll response
type RollResponse struct {
	Message string            `json:"message"`
	Result  *gacha.RollResult `json:"result"`
}

// HandleRoll performs one paid gacha roll
func HandleRoll(gachaService gacha.Service, tracker *progress.Tracker, tutorial TutorialTargeter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		result, err := gachaService.Roll(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "roll gacha", err)
			return
		}

		tracker.Track(r.Context(), playerID, domain.EventGachaRoll, 1)
		if result.New && tutorial != nil {
			if err := tutorial.SetTarget(r.Context(), playerID, result.Character.ID); err != nil {
				logger.FromContext(r.Context()).Error("Failed to set tutorial target", "error", err)
			}
		}

		msg := "Duplicate converted"
		if result.New {
			msg = "New character!"
		}
		respondJSON(w, http.StatusCreated, RollResponse{Message: msg, Result: result})
	}
}
