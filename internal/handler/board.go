package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/board"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/progress"
)

// HandleGetBoard returns the maze board, generating tiles on first read
func HandleGetBoard(boardService board.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		b, err := boardService.Get(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get board", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: b})
	}
}

// HandleRollBoard consumes one die and advances the board marker
func HandleRollBoard(boardService board.Service, tracker *progress.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		result, err := boardService.Roll(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "roll board", err)
			return
		}

		tracker.Track(r.Context(), playerID, domain.EventBoardRoll, 1)
		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}
