package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// WriteServiceError translates service sentinels to status codes.
// Anything unrecognized is logged and surfaced as a generic 500 so
// database details never leak to the client.
func WriteServiceError(rnd *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrAddressRequired),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateCategory):
		rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		rnd.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidLogin):
		rnd.JSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidSignature):
		rnd.JSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		log.Printf("ERROR: handler: %v", err)
		rnd.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func WriteValidationError(rnd *render.Render, w http.ResponseWriter, err error) {
	rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// UserIDFromContext returns the authenticated user's ID, or "" when
// the request was not authenticated.
func UserIDFromContext(r *http.Request) string {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	return userID
}

func RoleFromContext(r *http.Request) string {
	role, _ := r.Context().Value(helpers.ContextKeyRole).(string)
	return role
}
