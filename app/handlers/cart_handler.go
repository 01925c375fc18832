package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
)

type CartHandler struct {
	cartService *services.CartService
	rnd         *render.Render
}

func NewCartHandler(cartService *services.CartService, rnd *render.Render) *CartHandler {
	return &CartHandler{cartService: cartService, rnd: rnd}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.GetCart(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, summary)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	summary, err := h.cartService.AddItem(r.Context(), UserIDFromContext(r), req.ProductID, req.Qty)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusCreated, summary)
}

type updateCartItemRequest struct {
	Qty int `json:"qty" validate:"min=0"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	summary, err := h.cartService.UpdateItemQty(r.Context(), UserIDFromContext(r), itemID, req.Qty)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, summary)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	summary, err := h.cartService.RemoveItem(r.Context(), UserIDFromContext(r), itemID)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, summary)
}

func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	summary, err := h.cartService.RemoveProduct(r.Context(), UserIDFromContext(r), productID)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, summary)
}
