package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/middleware"
	"vlady-store/services"
)

// CartController handles cart-related requests.
type CartController struct {
	cart     *services.CartService
	validate *validator.Validate
	log      *slog.Logger
}

// NewCartController creates a CartController.
func NewCartController(cart *services.CartService, validate *validator.Validate, log *slog.Logger) *CartController {
	return &CartController{cart: cart, validate: validate, log: log}
}

// GetCart returns the caller's cart, creating an empty one if needed.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	cart, err := cc.cart.Get(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product to the caller's cart.
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cart, err := cc.cart.AddItem(r.Context(), identity.UserID, productID, req.Quantity)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// UpdateItem sets the quantity of a line in the caller's cart.
func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := cc.cart.UpdateItem(r.Context(), identity.UserID, productID, req.Quantity)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveItem drops a product from the caller's cart.
func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cart, err := cc.cart.RemoveItem(r.Context(), identity.UserID, productID)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// ClearCart empties the caller's cart.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	cart, err := cc.cart.Clear(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
