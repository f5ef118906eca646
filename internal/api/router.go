package api

import (
	_ "p2parb/docs"
	"p2parb/internal/opportunity/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/opportunities", h.GetOpportunities)
	router.Get("/api/v1/quotes", h.GetQuotes)
	router.Get("/api/v1/status", h.GetStatus)
	router.Get("/api/v1/rates/supported-currencies", h.GetSupportedCodes)
	router.Get("/api/v1/rates/{code:[A-Za-z]{3}}", h.GetRate)
	return router
}
