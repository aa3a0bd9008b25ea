package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/achievement"
)

// ClaimAchievementRequest represents an achievement claim request
type ClaimAchievementRequest struct {
	AchievementID string `json:"achievement_id" validate:"required"`
}

// HandleGetAchievements returns all achievements with unlock and claim state
func HandleGetAchievements(achievementService achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		views, err := achievementService.List(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get achievements", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: views})
	}
}

// HandleClaimAchievement claims an unlocked achievement's reward
func HandleClaimAchievement(achievementService achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}
		var req ClaimAchievementRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim achievement"); err != nil {
			return
		}

		result, err := achievementService.Claim(r.Context(), playerID, req.AchievementID)
		if err != nil {
			respondServiceError(w, r, "claim achievement", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "Achievement claimed", Data: result})
	}
}
