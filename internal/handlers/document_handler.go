package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"travel-backend/internal/services"
	"travel-backend/pkg/utils"
)

// DocumentHandler serves generated PDFs
type DocumentHandler struct {
	service *services.DocumentService
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// BookingConfirmation handles GET /api/bookings/{id}/confirmation.pdf
func (h *DocumentHandler) BookingConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.BadRequest(w, "Invalid booking ID")
		return
	}

	pdfBytes, err := h.service.GenerateBookingConfirmationPDF(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="booking_%d_confirmation.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
