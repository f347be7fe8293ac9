// controllers/order.go
package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/middleware"
	"vlady-store/models"
	"vlady-store/services"
)

// OrderController handles order-related requests.
type OrderController struct {
	orders   *services.OrderService
	validate *validator.Validate
	log      *slog.Logger
}

// NewOrderController creates an OrderController.
func NewOrderController(orders *services.OrderService, validate *validator.Validate, log *slog.Logger) *OrderController {
	return &OrderController{orders: orders, validate: validate, log: log}
}

type placeOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"required"`
}

// PlaceOrder converts the caller's cart into an order.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := oc.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	addressID, err := primitive.ObjectIDFromHex(req.ShippingAddress)
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	order, err := oc.orders.PlaceOrder(r.Context(), identity.UserID, addressID)
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// ListOrders returns the caller's orders, newest first.
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	orders, err := oc.orders.ListOrders(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels one of the caller's orders while it is still
// pending or confirmed.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req cancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := oc.orders.CancelOrder(r.Context(), identity.UserID, orderID, req.Reason)
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus lets fulfillment advance an order one step along
// pending -> confirmed -> shipped -> delivered. Admin only.
func (oc *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := oc.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := oc.orders.AdvanceStatus(r.Context(), orderID, models.OrderStatus(req.Status))
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
