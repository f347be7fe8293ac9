package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/middleware"
	"vlady-store/services"
)

// WishlistController handles the per-user wishlist.
type WishlistController struct {
	wishlist *services.WishlistService
	log      *slog.Logger
}

// NewWishlistController creates a WishlistController.
func NewWishlistController(wishlist *services.WishlistService, log *slog.Logger) *WishlistController {
	return &WishlistController{wishlist: wishlist, log: log}
}

// Get returns the caller's wishlist.
func (wc *WishlistController) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	wishlist, err := wc.wishlist.Get(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, wc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlist)
}

type wishlistAddRequest struct {
	ProductID string `json:"productId"`
}

// Add puts a product on the caller's wishlist.
func (wc *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req wishlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	wishlist, err := wc.wishlist.Add(r.Context(), identity.UserID, productID)
	if err != nil {
		respondError(w, wc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlist)
}

// Remove drops a product from the caller's wishlist.
func (wc *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	wishlist, err := wc.wishlist.Remove(r.Context(), identity.UserID, productID)
	if err != nil {
		respondError(w, wc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlist)
}
