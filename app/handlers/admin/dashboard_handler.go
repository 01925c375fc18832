package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/services"
)

// DashboardHandler serves the analytics report and the admin
// notification inbox.
type DashboardHandler struct {
	analyticsService *services.AnalyticsService
	notificationRepo repositories.NotificationRepository
	rnd              *render.Render
}

func NewDashboardHandler(analyticsService *services.AnalyticsService, notificationRepo repositories.NotificationRepository, rnd *render.Render) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		notificationRepo: notificationRepo,
		rnd:              rnd,
	}
}

func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.Report(r.Context())
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, report)
}

func (h *DashboardHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationRepo.FindForAdmin(r.Context())
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, notifications)
}

func (h *DashboardHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationRepo.CountUnreadForAdmin(r.Context())
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (h *DashboardHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationRepo.MarkRead(r.Context(), mux.Vars(r)["id"]); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]string{"message": "notification marked read"})
}
