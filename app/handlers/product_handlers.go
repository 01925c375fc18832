package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/services"
)

const defaultPageSize = 12

type ProductHandler struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepository
	rnd          *render.Render
}

func NewProductHandler(productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepository, rnd *render.Render) *ProductHandler {
	return &ProductHandler{productRepo: productRepo, categoryRepo: categoryRepo, rnd: rnd}
}

type productListResponse struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int64            `json:"total_pages"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := q.Get("q")
	categoryID := q.Get("category")

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPageSize
	}

	products, total, err := h.productRepo.GetPaginated(r.Context(), keyword, categoryID, perPage, (page-1)*perPage)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}

	totalPages := (total + int64(perPage) - 1) / int64(perPage)
	h.rnd.JSON(w, http.StatusOK, productListResponse{
		Products:   products,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	})
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	if product == nil || product.IsDeleted {
		WriteServiceError(h.rnd, w, services.ErrProductNotFound)
		return
	}

	h.rnd.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) CategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, err := h.categoryRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}
	if category == nil {
		h.rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "category not found"})
		return
	}

	h.rnd.JSON(w, http.StatusOK, category)
}
