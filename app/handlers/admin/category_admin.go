package admin

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/services"
)

type CategoryAdminHandler struct {
	catalogService *services.CatalogService
	rnd            *render.Render
}

func NewCategoryAdminHandler(catalogService *services.CatalogService, rnd *render.Render) *CategoryAdminHandler {
	return &CategoryAdminHandler{catalogService: catalogService, rnd: rnd}
}

type categoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (h *CategoryAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		handlers.WriteValidationError(h.rnd, w, err)
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusCreated, category)
}

func (h *CategoryAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		handlers.WriteValidationError(h.rnd, w, err)
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), id, req.Name, req.ImageURL)
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, category)
}

// Delete removes the category; products that referenced it keep
// selling uncategorized.
func (h *CategoryAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
