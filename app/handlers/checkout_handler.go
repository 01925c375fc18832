package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/services"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	addressRepo     repositories.AddressRepository
	rnd             *render.Render
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, addressRepo repositories.AddressRepository, rnd *render.Render) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, addressRepo: addressRepo, rnd: rnd}
}

// PrepareCheckout recomputes the cart total server-side and tells the
// client which payment flow is active. Nothing durable is created for
// the manual path here.
func (h *CheckoutHandler) PrepareCheckout(w http.ResponseWriter, r *http.Request) {
	preview, err := h.checkoutService.PrepareCheckout(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, preview)
}

type createOrderResponse struct {
	Order       *models.Order `json:"order"`
	RedirectURL string        `json:"redirect_url"`
}

func (h *CheckoutHandler) CreateOrderWithPayment(w http.ResponseWriter, r *http.Request) {
	order, redirectURL, err := h.checkoutService.CreateOrderWithGateway(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusCreated, createOrderResponse{Order: order, RedirectURL: redirectURL})
}

func (h *CheckoutHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.addressRepo.FindByUserID(r.Context(), UserIDFromContext(r))
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	if address == nil {
		h.rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "no address on file"})
		return
	}
	h.rnd.JSON(w, http.StatusOK, address)
}

type addressRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Line1    string `json:"line1" validate:"required"`
	Line2    string `json:"line2"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"omitempty,max=100"`
	PostCode string `json:"post_code" validate:"required,min=4,max=10"`
}

// SaveAddress upserts the caller's single shipping address.
func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		WriteValidationError(h.rnd, w, err)
		return
	}

	address := &models.Address{
		UserID:   UserIDFromContext(r),
		Name:     req.Name,
		Phone:    req.Phone,
		Line1:    req.Line1,
		Line2:    req.Line2,
		City:     req.City,
		State:    req.State,
		PostCode: req.PostCode,
	}
	if err := h.addressRepo.Upsert(r.Context(), address); err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, address)
}
