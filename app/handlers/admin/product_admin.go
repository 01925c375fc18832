package admin

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/services"
)

const maxProductImageBytes = 5 << 20

type ProductAdminHandler struct {
	catalogService *services.CatalogService
	productRepo    repositories.ProductRepositoryImpl
	uploader       services.Uploader
	rnd            *render.Render
}

func NewProductAdminHandler(catalogService *services.CatalogService, productRepo repositories.ProductRepositoryImpl, uploader services.Uploader, rnd *render.Render) *ProductAdminHandler {
	return &ProductAdminHandler{
		catalogService: catalogService,
		productRepo:    productRepo,
		uploader:       uploader,
		rnd:            rnd,
	}
}

// List returns every product including soft-deleted ones so the admin
// can restore them.
func (h *ProductAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetAllIncludingDeleted(r.Context())
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, products)
}

// productInputFromForm reads the multipart fields shared by create and
// update. The image file is optional; when present it is stored and
// the resulting URL and public id are filled in.
func (h *ProductAdminHandler) productInputFromForm(r *http.Request) (services.ProductInput, error) {
	var input services.ProductInput

	if err := r.ParseMultipartForm(maxProductImageBytes); err != nil {
		return input, err
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		return input, err
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		return input, err
	}

	input.Name = r.FormValue("name")
	input.Description = r.FormValue("description")
	input.Price = price
	input.Stock = stock
	input.AdditionalInfo = r.FormValue("additional_info")

	if categoryID := r.FormValue("category_id"); categoryID != "" {
		input.CategoryID = &categoryID
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		url, publicID, saveErr := h.uploader.Save("products", header.Filename, file)
		if saveErr != nil {
			return input, saveErr
		}
		input.ImageURL = url
		input.ImagePublicID = publicID
	}

	return input, nil
}

func (h *ProductAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := h.productInputFromForm(r)
	if err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product form: " + err.Error()})
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), input)
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}

	log.Printf("INFO: ProductAdminHandler: created product %s (%s)", product.ID, product.Name)
	h.rnd.JSON(w, http.StatusCreated, product)
}

func (h *ProductAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	input, err := h.productInputFromForm(r)
	if err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product form: " + err.Error()})
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, input)
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, product)
}

func (h *ProductAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductAdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalogService.RestoreProduct(r.Context(), id); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, map[string]string{"message": "product restored"})
}
