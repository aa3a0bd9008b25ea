package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/tutorial"
)

// HandleGetTutorial returns the tutorial step machine state
func HandleGetTutorial(tutorialService tutorial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		state, err := tutorialService.Get(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get tutorial", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: state})
	}
}

// HandleAdvanceTutorial acknowledges the current informational step
func HandleAdvanceTutorial(tutorialService tutorial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		state, err := tutorialService.Acknowledge(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "advance tutorial", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: state})
	}
}
