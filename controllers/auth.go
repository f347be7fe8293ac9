package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"vlady-store/middleware"
	"vlady-store/services"
	"vlady-store/utils"
)

// AuthController handles OTP login, logout and profile updates.
type AuthController struct {
	auth       *services.AuthService
	tokens     *utils.TokenManager
	validate   *validator.Validate
	production bool
	log        *slog.Logger
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService, tokens *utils.TokenManager, validate *validator.Validate, production bool, log *slog.Logger) *AuthController {
	return &AuthController{auth: auth, tokens: tokens, validate: validate, production: production, log: log}
}

type sendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

// SendOTP generates and dispatches a verification code.
func (ac *AuthController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := ac.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	code, err := ac.auth.SendCode(r.Context(), req.Mobile)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}

	resp := map[string]string{"message": "OTP sent successfully"}
	if code != "" {
		resp["otp"] = code
	}
	respondJSON(w, http.StatusOK, resp)
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
}

// VerifyOTP checks the code and establishes a session cookie.
func (ac *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := ac.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	session, err := ac.auth.VerifyCode(r.Context(), req.Mobile, req.OTP)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}

	token, err := ac.tokens.Generate(session.ID)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   ac.production,
		SameSite: http.SameSiteLaxMode,
	})
	respondMessage(w, http.StatusOK, "OTP verified successfully")
}

// Logout revokes the session and clears the cookie.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	if err := ac.auth.Logout(r.Context(), identity.SessionID); err != nil {
		respondError(w, ac.log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	respondMessage(w, http.StatusOK, "Logged out successfully")
}

type profileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateProfile sets the caller's name and email.
func (ac *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := ac.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := ac.auth.UpdateProfile(r.Context(), identity.UserID, req.Name, req.Email)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
