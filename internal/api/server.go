package api

import (
	"net/http"
	"time"

	"github.com/futig/eco-advisor/internal/api/diagnostic"
	"github.com/futig/eco-advisor/internal/api/docs"
	"github.com/futig/eco-advisor/internal/api/middleware"
	"github.com/futig/eco-advisor/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestTimeoutMargin covers scoring, rendering and writing around the advice call.
const requestTimeoutMargin = 15 * time.Second

// RequestTimeout bounds a whole request so that it never ends an advice call
// before adviceTimeout does.
func RequestTimeout(adviceTimeout time.Duration) time.Duration {
	return adviceTimeout + requestTimeoutMargin
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(diagnosticHandler *diagnostic.Handler, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	diagnostic.RegisterRoutes(r, diagnosticHandler)

	return r
}
