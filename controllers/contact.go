package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"vlady-store/models"
	"vlady-store/services"
)

// ContactController handles contact form submissions.
type ContactController struct {
	contact  *services.ContactService
	validate *validator.Validate
	log      *slog.Logger
}

// NewContactController creates a ContactController.
func NewContactController(contact *services.ContactService, validate *validator.Validate, log *slog.Logger) *ContactController {
	return &ContactController{contact: contact, validate: validate, log: log}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Submit stores the message and forwards it to the shop's mailbox.
func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	contact := &models.Contact{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := cc.contact.Submit(r.Context(), contact); err != nil {
		respondError(w, cc.log, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Message received")
}
