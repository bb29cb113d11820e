package api

import (
	_ "currconv/docs"
	"currconv/internal/api/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/currencies", h.GetCurrencies)
	router.Get("/convert", h.Convert)
	router.Get("/history", h.GetHistory)
	router.Post("/history", h.AddHistoryRecord)
	return router
}
