package admin

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/repositories"
)

type UserAdminHandler struct {
	userRepo repositories.UserRepositoryImpl
	rnd      *render.Render
}

func NewUserAdminHandler(userRepo repositories.UserRepositoryImpl, rnd *render.Render) *UserAdminHandler {
	return &UserAdminHandler{userRepo: userRepo, rnd: rnd}
}

func (h *UserAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.GetAll(r.Context())
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, users)
}
