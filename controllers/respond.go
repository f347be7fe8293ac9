package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vlady-store/services"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

func respondErrorMsg(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondError maps service errors onto the HTTP surface. Anything
// outside the business taxonomy is a storage or internal failure:
// logged, surfaced as a bare 500, never a crash.
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		respondErrorMsg(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondErrorMsg(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrOTPNotFound):
		respondErrorMsg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrQuantityExceeded),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidMobile),
		errors.Is(err, services.ErrInvalidPincode),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrTooManyAttempts),
		errors.Is(err, services.ErrInvalidOTP):
		respondErrorMsg(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed", "error", err)
		respondErrorMsg(w, http.StatusInternalServerError, "something went wrong")
	}
}
