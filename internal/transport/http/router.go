// Package httptransport assembles the public HTTP surface: global middleware,
// the open routes and the API-key gated group.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"integrationhub/internal/health"
	"integrationhub/internal/platform/metrics"
	"integrationhub/internal/ratelimit"
	"integrationhub/internal/translog"
	vhandler "integrationhub/internal/verification/handler"
	"integrationhub/pkg/platform/middleware/apikey"
	"integrationhub/pkg/platform/middleware/metadata"
	"integrationhub/pkg/platform/middleware/request"
	"integrationhub/pkg/platform/middleware/requesttime"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps are the pieces the router is built from. A nil Gatherer drops the
// /metrics endpoint and a nil Limiter disables rate limiting.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	APIKeys  *apikey.Verifier
	TransLog *translog.Service
	Limiter  *ratelimit.Limiter
	Health   *health.Handler
	Schemas  map[string]any

	// Routes are mounted behind the API key with transaction logging.
	Routes []Registrar
}

// NewRouter builds the chi router.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(d.Logger))
	r.Use(request.Logger(d.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(metrics.LatencyMiddleware(d.Metrics))

	if d.Health != nil {
		d.Health.RegisterPublic(r)
	}
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	if d.Schemas != nil {
		vhandler.RegisterSchemas(r, d.Schemas)
	}

	r.Group(func(r chi.Router) {
		r.Use(apikey.Require(d.APIKeys, d.Logger))
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}
		if d.TransLog != nil {
			r.Use(translog.Middleware(d.TransLog))
		}
		if d.Health != nil {
			d.Health.RegisterDetailed(r)
		}
		for _, reg := range d.Routes {
			reg.Register(r)
		}
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)
	return r
}
