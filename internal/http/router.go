package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"travel-backend/internal/handlers"
	"travel-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	pipelineHandler *handlers.PipelineHandler,
	referenceHandler *handlers.ReferenceHandler,
	documentHandler *handlers.DocumentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Protected API routes - Enquiries
	enquiriesAPI := r.PathPrefix("/api/enquiries").Subrouter()
	enquiriesAPI.Use(authMiddleware.Authenticate)
	enquiriesAPI.HandleFunc("", pipelineHandler.CreateEnquiry).Methods("POST")
	enquiriesAPI.HandleFunc("/{id}", pipelineHandler.GetEnquiry).Methods("GET")
	enquiriesAPI.HandleFunc("/{id}", pipelineHandler.DeleteEnquiry).Methods("DELETE")
	enquiriesAPI.HandleFunc("/{id}/status", pipelineHandler.UpdateEnquiryStatus).Methods("PATCH")
	enquiriesAPI.HandleFunc("/{id}/future-deal", pipelineHandler.SetEnquiryFutureDeal).Methods("PUT")
	enquiriesAPI.HandleFunc("/{id}/future-deal", pipelineHandler.UnsetEnquiryFutureDeal).Methods("DELETE")

	// Protected API routes - Quotes
	quotesAPI := r.PathPrefix("/api/quotes").Subrouter()
	quotesAPI.Use(authMiddleware.Authenticate)
	quotesAPI.HandleFunc("", pipelineHandler.CreateQuote).Methods("POST")
	quotesAPI.HandleFunc("/{id}", pipelineHandler.GetQuote).Methods("GET")
	quotesAPI.HandleFunc("/{id}", pipelineHandler.UpdateQuote).Methods("PUT")
	quotesAPI.HandleFunc("/{id}", pipelineHandler.DeleteQuote).Methods("DELETE")
	quotesAPI.HandleFunc("/{id}/future-deal", pipelineHandler.SetQuoteFutureDeal).Methods("PUT")
	quotesAPI.HandleFunc("/{id}/future-deal", pipelineHandler.UnsetQuoteFutureDeal).Methods("DELETE")

	// Protected API routes - Bookings
	bookingsAPI := r.PathPrefix("/api/bookings").Subrouter()
	bookingsAPI.Use(authMiddleware.Authenticate)
	bookingsAPI.HandleFunc("", pipelineHandler.CreateBooking).Methods("POST")
	bookingsAPI.HandleFunc("/{id}", pipelineHandler.GetBooking).Methods("GET")
	bookingsAPI.HandleFunc("/{id}", pipelineHandler.UpdateBooking).Methods("PUT")
	bookingsAPI.HandleFunc("/{id}", pipelineHandler.DeleteBooking).Methods("DELETE")
	bookingsAPI.HandleFunc("/{id}/confirmation.pdf", documentHandler.BookingConfirmation).Methods("GET")

	// Protected API routes - Transactions
	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(authMiddleware.Authenticate)
	transactionsAPI.HandleFunc("", pipelineHandler.ListTransactions).Methods("GET")
	transactionsAPI.HandleFunc("/{id}", pipelineHandler.GetTransaction).Methods("GET")
	transactionsAPI.HandleFunc("/{id}/quotes", pipelineHandler.ListTransactionQuotes).Methods("GET")
	transactionsAPI.HandleFunc("/{id}/convert", pipelineHandler.ConvertToBooking).Methods("POST")

	// Protected API routes - Reference data
	referenceAPI := r.PathPrefix("/api/reference").Subrouter()
	referenceAPI.Use(authMiddleware.Authenticate)
	referenceAPI.HandleFunc("/airports", referenceHandler.ListAirports).Methods("GET")
	referenceAPI.HandleFunc("/tour-operators", referenceHandler.ListTourOperators).Methods("GET")
	referenceAPI.HandleFunc("/cruise-lines", referenceHandler.ListCruiseLines).Methods("GET")

	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.HandleFunc("/{id}", referenceHandler.GetClient).Methods("GET")

	// Health endpoint (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
