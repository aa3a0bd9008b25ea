package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/shop"
)

// BuyItemRequest represents a shop purchase request
type BuyItemRequest struct {
	ItemKey string `json:"item_key" validate:"required"`
}

// HandleGetCatalog returns the shop catalog with this week's remaining caps
func HandleGetCatalog(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		items, err := shopService.Catalog(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get catalog", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// HandleBuyItem purchases one unit of a shop item
func HandleBuyItem(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}
		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		result, err := shopService.Buy(r.Context(), playerID, req.ItemKey)
		if err != nil {
			respondServiceError(w, r, "buy item", err)
			return
		}
		respondJSON(w, http.StatusCreated, DataResponse{Message: "Purchase complete", Data: result})
	}
}
