package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/mobstermerch/storefront/app/services"
)

const maxScreenshotBytes = 5 << 20

type PaymentVerificationHandler struct {
	verificationService *services.VerificationService
	uploader            services.Uploader
	rnd                 *render.Render
}

func NewPaymentVerificationHandler(verificationService *services.VerificationService, uploader services.Uploader, rnd *render.Render) *PaymentVerificationHandler {
	return &PaymentVerificationHandler{verificationService: verificationService, uploader: uploader, rnd: rnd}
}

// SubmitPayment accepts a multipart form with the UPI transaction
// reference and a payment screenshot. The durable order is created
// here, in pending state, awaiting admin review.
func (h *PaymentVerificationHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxScreenshotBytes); err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	transactionRef := r.FormValue("transaction_ref")
	if transactionRef == "" {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "transaction_ref is required"})
		return
	}

	file, header, err := r.FormFile("screenshot")
	if err != nil {
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "screenshot is required"})
		return
	}
	defer file.Close()

	screenshotURL, _, err := h.uploader.Save("verifications", header.Filename, file)
	if err != nil {
		log.Printf("ERROR: PaymentVerificationHandler: screenshot upload failed: %v", err)
		h.rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "could not store screenshot"})
		return
	}

	order, err := h.verificationService.SubmitPayment(r.Context(), UserIDFromContext(r), transactionRef, screenshotURL)
	if err != nil {
		WriteServiceError(h.rnd, w, err)
		return
	}

	h.rnd.JSON(w, http.StatusCreated, map[string]any{
		"message": "payment submitted for verification",
		"order":   order,
	})
}
