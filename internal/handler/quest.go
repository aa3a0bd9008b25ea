package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/quest"
)

// ClaimQuestRequest represents a quest claim request
type ClaimQuestRequest struct {
	Cycle string `json:"cycle" validate:"required,oneof=daily weekly"`
	Index int    `json:"index" validate:"gte=0"`
}

// HandleGetQuests returns daily and weekly quest progress
func HandleGetQuests(questService quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		progress, err := questService.Progress(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get quests", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

// HandleClaimQuest claims a completed quest's reward
func HandleClaimQuest(questService quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}
		var req ClaimQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim quest"); err != nil {
			return
		}

		result, err := questService.Claim(r.Context(), playerID, quest.CycleKind(req.Cycle), req.Index)
		if err != nil {
			respondServiceError(w, r, "claim quest", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "Quest claimed", Data: result})
	}
}
