package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"travel-backend/internal/auth"
	"travel-backend/internal/cache"
	"travel-backend/internal/config"
	"travel-backend/internal/database"
	"travel-backend/internal/db"
	"travel-backend/internal/handlers"
	"travel-backend/internal/health"
	h "travel-backend/internal/http"
	"travel-backend/internal/middleware"
	"travel-backend/internal/repositories"
	"travel-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (reference data will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager and health checker
	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	transactionRepo := repositories.NewTransactionRepository(pool)
	enquiryRepo := repositories.NewEnquiryRepository(pool)
	quoteRepo := repositories.NewQuoteRepository(pool)
	bookingRepo := repositories.NewBookingRepository(pool)
	sectorRepo := repositories.NewSectorRepository(pool)
	cruiseRepo := repositories.NewCruiseRepository(pool)
	passengerRepo := repositories.NewPassengerRepository(pool)
	referralRepo := repositories.NewReferralRepository(pool)
	referenceRepo := repositories.NewReferenceRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	pipelineService := services.NewPipelineService(services.PipelineDeps{
		DB:           pool,
		Begin:        pool,
		Transactions: transactionRepo,
		Enquiries:    enquiryRepo,
		Quotes:       quoteRepo,
		Bookings:     bookingRepo,
		Sectors:      sectorRepo,
		Cruises:      cruiseRepo,
		Passengers:   passengerRepo,
		Referrals:    referralRepo,
	})
	documentService := services.NewDocumentService(pipelineService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)
	referenceHandler := handlers.NewReferenceHandler(referenceRepo)
	documentHandler := handlers.NewDocumentHandler(documentService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(authHandler, pipelineHandler, referenceHandler, documentHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
