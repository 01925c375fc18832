package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
)

type SettingsAdminHandler struct {
	settingsService *services.SettingsService
	rnd             *render.Render
}

func NewSettingsAdminHandler(settingsService *services.SettingsService, rnd *render.Render) *SettingsAdminHandler {
	return &SettingsAdminHandler{settingsService: settingsService, rnd: rnd}
}

func (h *SettingsAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.rnd.JSON(w, http.StatusOK, map[string]any{
		"payment_method": h.settingsService.GetPaymentMethod(r.Context()),
		"maintenance":    h.settingsService.MaintenanceEnabled(r.Context()),
	})
}

type paymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=manual gateway"`
}

// SetPaymentMethod switches which checkout flow the storefront offers.
func (h *SettingsAdminHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		handlers.WriteValidationError(h.rnd, w, err)
		return
	}

	if err := h.settingsService.SetPaymentMethod(r.Context(), req.PaymentMethod); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}

	log.Printf("INFO: SettingsAdminHandler: payment method set to %s", req.PaymentMethod)
	h.rnd.JSON(w, http.StatusOK, map[string]string{"payment_method": req.PaymentMethod})
}

type maintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *SettingsAdminHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.settingsService.SetMaintenance(r.Context(), req.Enabled); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}

	log.Printf("INFO: SettingsAdminHandler: maintenance mode set to %v", req.Enabled)
	h.rnd.JSON(w, http.StatusOK, map[string]bool{"maintenance": req.Enabled})
}
