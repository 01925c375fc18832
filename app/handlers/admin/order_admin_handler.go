package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
)

type OrderAdminHandler struct {
	orderService   *services.OrderService
	gatewayService *services.GatewayService
	rnd            *render.Render
}

func NewOrderAdminHandler(orderService *services.OrderService, gatewayService *services.GatewayService, rnd *render.Render) *OrderAdminHandler {
	return &OrderAdminHandler{orderService: orderService, gatewayService: gatewayService, rnd: rnd}
}

func (h *OrderAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, orders)
}

func (h *OrderAdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

// UpdateStatus moves an order through the lifecycle. Stock side
// effects (first decrement, restock on cancel) ride along in the same
// transaction.
func (h *OrderAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		handlers.WriteValidationError(h.rnd, w, err)
		return
	}

	if err := h.orderService.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}

	log.Printf("INFO: OrderAdminHandler: order %s moved to %s", orderID, req.Status)
	h.rnd.JSON(w, http.StatusOK, map[string]string{"message": "order status updated"})
}

type refundRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason"`
}

func (h *OrderAdminHandler) Refund(w http.ResponseWriter, r *http.Request) {
	orderCode := mux.Vars(r)["code"]

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		handlers.WriteValidationError(h.rnd, w, err)
		return
	}

	refund, err := h.gatewayService.Refund(r.Context(), orderCode, req.Amount, req.Reason)
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, refund)
}
