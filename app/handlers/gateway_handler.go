package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
)

type GatewayHandler struct {
	gatewayService *services.GatewayService
	orderService   *services.OrderService
	rnd            *render.Render
}

func NewGatewayHandler(gatewayService *services.GatewayService, orderService *services.OrderService, rnd *render.Render) *GatewayHandler {
	return &GatewayHandler{gatewayService: gatewayService, orderService: orderService, rnd: rnd}
}

type initiateRequest struct {
	OrderCode string `json:"order_code" validate:"required"`
}

// Initiate starts (or resumes) a hosted checkout session for an
// existing order and returns the provider redirect URL.
func (h *GatewayHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	redirectURL, err := h.gatewayService.Initiate(r.Context(), UserIDFromContext(r), req.OrderCode)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]string{"redirect_url": redirectURL})
}

// OrderStatus polls the provider for the order's transaction state and
// applies it locally before responding.
func (h *GatewayHandler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	orderCode := mux.Vars(r)["code"]

	status, err := h.gatewayService.Reconcile(r.Context(), UserIDFromContext(r), orderCode)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]string{
		"order_code": orderCode,
		"status":     status,
	})
}

// Webhook is the unauthenticated provider callback. The payload
// signature is verified before any state is touched; the provider
// retries on anything but 200.
func (h *GatewayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload services.NotificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if err := h.gatewayService.HandleWebhook(r.Context(), payload); err != nil {
		log.Printf("ERROR: GatewayHandler: webhook for order %s failed: %v", payload.OrderID, err)
		WriteServiceError(h.rnd, w, err)
		return
	}

	h.rnd.JSON(w, http.StatusOK, messageResponse{Message: "ok"})
}
