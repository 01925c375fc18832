package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/repositories"
)

type NotificationHandler struct {
	notificationRepo repositories.NotificationRepository
	rnd              *render.Render
}

func NewNotificationHandler(notificationRepo repositories.NotificationRepository, rnd *render.Render) *NotificationHandler {
	return &NotificationHandler{notificationRepo: notificationRepo, rnd: rnd}
}

func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationRepo.FindForUser(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.notificationRepo.MarkReadForUser(r.Context(), id, UserIDFromContext(r)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "notification not found"})
			return
		}
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, messageResponse{Message: "notification marked read"})
}
