package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/services"
)

type OrderHandler struct {
	orderService *services.OrderService
	rnd          *render.Render
}

func NewOrderHandler(orderService *services.OrderService, rnd *render.Render) *OrderHandler {
	return &OrderHandler{orderService: orderService, rnd: rnd}
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetUserOrders(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	// Customers only ever see their own orders.
	if order.UserID != UserIDFromContext(r) {
		h.rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
		return
	}
	h.rnd.JSON(w, http.StatusOK, order)
}

type orderRequestBody struct {
	Reason string `json:"reason"`
}

// RequestCancellation files a cancellation request for admin review.
// The order status does not change here.
func (h *OrderHandler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req orderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.orderService.RequestCancellation(r.Context(), UserIDFromContext(r), orderID, req.Reason); err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, messageResponse{Message: "cancellation request submitted"})
}

func (h *OrderHandler) RequestRefund(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req orderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.orderService.RequestRefund(r.Context(), UserIDFromContext(r), orderID, req.Reason); err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, messageResponse{Message: "refund request submitted"})
}
