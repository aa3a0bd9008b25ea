package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/wallet"
)

// HandleGetWallet returns the player's currency balances
func HandleGetWallet(walletService wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		balance, err := walletService.Get(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get wallet", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: balance})
	}
}
