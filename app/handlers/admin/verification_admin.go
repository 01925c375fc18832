package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/services"
)

type VerificationAdminHandler struct {
	verificationService *services.VerificationService
	rnd                 *render.Render
}

func NewVerificationAdminHandler(verificationService *services.VerificationService, rnd *render.Render) *VerificationAdminHandler {
	return &VerificationAdminHandler{verificationService: verificationService, rnd: rnd}
}

func (h *VerificationAdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.verificationService.GetPending(r.Context())
	if err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}
	h.rnd.JSON(w, http.StatusOK, pending)
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Review settles a pending verification. A verification already
// reviewed by another admin is rejected with 400 rather than applied
// twice.
func (h *VerificationAdminHandler) Review(w http.ResponseWriter, r *http.Request) {
	verificationID := mux.Vars(r)["id"]

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	adminID := handlers.UserIDFromContext(r)
	if err := h.verificationService.Review(r.Context(), adminID, verificationID, req.Approve, req.Note); err != nil {
		handlers.WriteServiceError(h.rnd, w, err)
		return
	}

	verdict := "rejected"
	if req.Approve {
		verdict = "approved"
	}
	log.Printf("INFO: VerificationAdminHandler: verification %s %s by %s", verificationID, verdict, adminID)
	h.rnd.JSON(w, http.StatusOK, map[string]string{"message": "verification " + verdict})
}
