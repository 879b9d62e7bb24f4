package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers chart routes under /api
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		// Long-lived; must stay outside the request timeout
		r.Get("/chart/live", h.HandleLive)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/symbols", h.HandleGetSymbols)
			r.Get("/records", h.HandleGetRecords)
			r.Get("/summary", h.HandleGetSummary)
			r.Get("/series", h.HandleGetSeries)
			r.Get("/chart", h.HandleGetChart)
			r.Get("/chart.png", h.HandleGetChartPNG)
			r.Post("/dataset/reload", h.HandleReloadDataset)
		})
	})
}
