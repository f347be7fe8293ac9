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

// AddressController handles the per-user address book.
type AddressController struct {
	addresses *services.AddressService
	validate  *validator.Validate
	log       *slog.Logger
}

// NewAddressController creates an AddressController.
func NewAddressController(addresses *services.AddressService, validate *validator.Validate, log *slog.Logger) *AddressController {
	return &AddressController{addresses: addresses, validate: validate, log: log}
}

type addressRequest struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=home work other"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Pincode   string `json:"pincode" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// List returns all of the caller's addresses.
func (ac *AddressController) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	addresses, err := ac.addresses.List(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	respondJSON(w, http.StatusOK, addresses)
}

// Get returns one of the caller's addresses.
func (ac *AddressController) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	addressID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	address, err := ac.addresses.Get(r.Context(), identity.UserID, addressID)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	respondJSON(w, http.StatusOK, address)
}

// Create stores a new address for the caller.
func (ac *AddressController) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	req, ok := ac.decode(w, r)
	if !ok {
		return
	}

	address := ac.toModel(req, identity.UserID)
	if err := ac.addresses.Create(r.Context(), address); err != nil {
		respondError(w, ac.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, address)
}

// Update rewrites one of the caller's addresses.
func (ac *AddressController) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	addressID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	req, ok := ac.decode(w, r)
	if !ok {
		return
	}

	address := ac.toModel(req, identity.UserID)
	address.ID = addressID
	if err := ac.addresses.Update(r.Context(), address); err != nil {
		respondError(w, ac.log, err)
		return
	}
	respondJSON(w, http.StatusOK, address)
}

// Delete removes one of the caller's addresses.
func (ac *AddressController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	addressID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	if err := ac.addresses.Delete(r.Context(), identity.UserID, addressID); err != nil {
		respondError(w, ac.log, err)
		return
	}
	respondMessage(w, http.StatusOK, "Address deleted successfully")
}

func (ac *AddressController) decode(w http.ResponseWriter, r *http.Request) (addressRequest, bool) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return req, false
	}
	if err := ac.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return req, false
	}
	return req, true
}

func (ac *AddressController) toModel(req addressRequest, userID primitive.ObjectID) *models.Address {
	return &models.Address{
		UserID:    userID,
		Name:      req.Name,
		Type:      req.Type,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		IsDefault: req.IsDefault,
	}
}
