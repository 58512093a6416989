package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/uzideath/motofacil-engine/internal/config"
	"github.com/uzideath/motofacil-engine/internal/engine"
	"github.com/uzideath/motofacil-engine/internal/handler"
	"github.com/uzideath/motofacil-engine/internal/repository"
	"github.com/uzideath/motofacil-engine/internal/service"
	"github.com/uzideath/motofacil-engine/pkg/response"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Business calendar in the configured timezone
	cal := engine.NewCalendar(cfg.BusinessLocation())

	// Initialize repositories
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)

	// Initialize services
	loanService := service.NewLoanService(loanRepo, paymentRepo, redisClient, cal, cfg)
	paymentService := service.NewPaymentService(loanRepo, paymentRepo, redisClient, cfg)
	transferService := service.NewTransferService(cashFlowRepo, redisClient, cfg)

	loanHandler := handler.NewLoanHandler(loanService, cfg)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	transferHandler := handler.NewTransferHandler(transferService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Setup routes
	router := setupRoutes(loanHandler, paymentHandler, transferHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	loanHandler *handler.LoanHandler,
	paymentHandler *handler.PaymentHandler,
	transferHandler *handler.TransferHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/arrears", loanHandler.GetArrears).Methods("GET")
	api.HandleFunc("/loans/{loanId}/debt", loanHandler.GetDebtBreakdown).Methods("GET")
	api.HandleFunc("/loans/{loanId}/payments", paymentHandler.RegisterPayment).Methods("POST")
	api.HandleFunc("/payments/{paymentId}", paymentHandler.DeletePayment).Methods("DELETE")
	api.HandleFunc("/transfers", transferHandler.CreateTransfer).Methods("POST")
	api.HandleFunc("/transfers/{transferId}", transferHandler.DeleteTransfer).Methods("DELETE")

	return router
}
