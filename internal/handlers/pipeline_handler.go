package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"travel-backend/internal/models"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"
)

// PipelineHandler exposes the sales pipeline: enquiries, quotes,
// bookings, and the transactions that tie them together.
type PipelineHandler struct {
	service *services.PipelineService
}

func NewPipelineHandler(service *services.PipelineService) *PipelineHandler {
	return &PipelineHandler{service: service}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type futureDealRequest struct {
	FutureDealDate *time.Time `json:"future_deal_date,omitempty"`
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// --- Enquiries ---

// CreateEnquiry handles POST /api/enquiries
func (h *PipelineHandler) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	txn, enquiry, err := h.service.CreateEnquiry(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": txn,
		"enquiry":     enquiry,
	})
}

// GetEnquiry handles GET /api/enquiries/{id}
func (h *PipelineHandler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid enquiry ID")
		return
	}

	enquiry, err := h.service.GetEnquiry(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, enquiry)
}

// UpdateEnquiryStatus handles PATCH /api/enquiries/{id}/status
func (h *PipelineHandler) UpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid enquiry ID")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.UpdateEnquiryStatus(r.Context(), id, req.Status); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Enquiry status updated"})
}

// SetEnquiryFutureDeal handles PUT /api/enquiries/{id}/future-deal
func (h *PipelineHandler) SetEnquiryFutureDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid enquiry ID")
		return
	}

	var req futureDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.SetEnquiryFutureDeal(r.Context(), id, req.FutureDealDate); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Enquiry marked as future deal"})
}

// UnsetEnquiryFutureDeal handles DELETE /api/enquiries/{id}/future-deal
func (h *PipelineHandler) UnsetEnquiryFutureDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid enquiry ID")
		return
	}

	if err := h.service.UnsetEnquiryFutureDeal(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Future deal flag cleared"})
}

// DeleteEnquiry handles DELETE /api/enquiries/{id}
func (h *PipelineHandler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid enquiry ID")
		return
	}

	if err := h.service.DeleteEnquiry(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Enquiry deleted"})
}

// --- Quotes ---

// CreateQuote handles POST /api/quotes
func (h *PipelineHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req models.SaveQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	detail, err := h.service.CreateQuote(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, detail)
}

// GetQuote handles GET /api/quotes/{id}
func (h *PipelineHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid quote ID")
		return
	}

	detail, err := h.service.GetQuoteDetail(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// UpdateQuote handles PUT /api/quotes/{id}
func (h *PipelineHandler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid quote ID")
		return
	}

	var req models.SaveQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	detail, err := h.service.UpdateQuote(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// SetQuoteFutureDeal handles PUT /api/quotes/{id}/future-deal
func (h *PipelineHandler) SetQuoteFutureDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid quote ID")
		return
	}

	var req futureDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.SetQuoteFutureDeal(r.Context(), id, req.FutureDealDate); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Quote marked as future deal"})
}

// UnsetQuoteFutureDeal handles DELETE /api/quotes/{id}/future-deal
func (h *PipelineHandler) UnsetQuoteFutureDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid quote ID")
		return
	}

	if err := h.service.UnsetQuoteFutureDeal(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Future deal flag cleared"})
}

// DeleteQuote handles DELETE /api/quotes/{id}
func (h *PipelineHandler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid quote ID")
		return
	}

	if err := h.service.DeleteQuote(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Quote deleted"})
}

// --- Bookings ---

// CreateBooking handles POST /api/bookings
func (h *PipelineHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.SaveBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	detail, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, detail)
}

// GetBooking handles GET /api/bookings/{id}
func (h *PipelineHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid booking ID")
		return
	}

	detail, err := h.service.GetBookingDetail(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// UpdateBooking handles PUT /api/bookings/{id}
func (h *PipelineHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid booking ID")
		return
	}

	var req models.SaveBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	detail, err := h.service.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *PipelineHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
}

// --- Transactions ---

// ConvertToBooking handles POST /api/transactions/{id}/convert
func (h *PipelineHandler) ConvertToBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req models.SaveBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	detail, err := h.service.ConvertQuoteToBooking(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, detail)
}

// ListTransactions handles GET /api/transactions?status=on_quote&limit=50
func (h *PipelineHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	status := models.TransactionStatus(r.URL.Query().Get("status"))

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.BadRequest(w, "Invalid limit")
			return
		}
		limit = n
	}

	txns, err := h.service.ListTransactions(r.Context(), status, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if txns == nil {
		txns = []*models.Transaction{}
	}
	utils.JSON(w, http.StatusOK, txns)
}

// GetTransaction handles GET /api/transactions/{id}
func (h *PipelineHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid transaction ID")
		return
	}

	txn, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txn)
}

// ListTransactionQuotes handles GET /api/transactions/{id}/quotes
func (h *PipelineHandler) ListTransactionQuotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.BadRequest(w, "Invalid transaction ID")
		return
	}

	quotes, err := h.service.ListQuotesByTransaction(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if quotes == nil {
		quotes = []*models.Quote{}
	}
	utils.JSON(w, http.StatusOK, quotes)
}
