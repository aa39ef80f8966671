package diagnostic

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers questionnaire and diagnostic routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/questionnaire", h.GetQuestionnaire)

	r.Route("/diagnostics", func(r chi.Router) {
		r.Post("/", h.CreateDiagnostic)
		r.Post("/report", h.CreateReport)
		r.Post("/charts", h.CreateCharts)
	})
}
