package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(transactionHandler *handler.TransactionHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Transaction API routes
	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", transactionHandler.Create)
		r.Get("/", transactionHandler.List)
		r.Get("/{transactionID}", transactionHandler.Get)
		r.Put("/{transactionID}", transactionHandler.Update)
		r.Put("/{transactionID}/status", transactionHandler.UpdateStatus)
		r.Delete("/{transactionID}", transactionHandler.Delete)
	})

	// Balance is exposed per user rather than per transaction
	r.Get("/users/{userID}/balance", transactionHandler.GetBalance)

	return r
}
