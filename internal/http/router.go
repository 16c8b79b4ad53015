package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"leavedesk/internal/platform/metrics"
	"leavedesk/internal/platform/middleware"
	"leavedesk/pkg/platform/httputil"
)

// RouteRegistrar registers a group of routes on a chi router. Both domain
// handlers satisfy this.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a named dependency is reachable. Optional
// dependencies simply do not appear in the Deps map.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router needs to assemble the API surface.
type Deps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Validator    middleware.JWTValidator
	Revocations  middleware.TokenRevocationChecker
	Auth         AuthRoutes
	Leaves       RouteRegistrar
	HealthProbes map[string]HealthChecker
}

// AuthRoutes splits the account handler's routes across the public and
// authenticated groups.
type AuthRoutes interface {
	Register(r chi.Router)
	RegisterProtected(r chi.Router)
}

const requestTimeout = 30 * time.Second

// NewRouter assembles the full HTTP surface. Public routes carry the common
// middleware chain; everything under the authenticated group additionally
// requires a valid, unrevoked bearer token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(d.Metrics))

	r.Get("/health", handleHealth(d.HealthProbes))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	d.Auth.Register(r)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(d.Validator, d.Revocations, d.Logger))
		d.Auth.RegisterProtected(protected)
		d.Leaves.Register(protected)
	})

	return r
}

// handleHealth probes all registered dependencies concurrently and reports
// per-dependency status. The endpoint is a liveness marker: it answers 200
// even when dependencies are degraded, and the payload carries the detail.
func handleHealth(probes map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		type result struct {
			name string
			err  error
		}
		resultCh := make(chan result, len(probes))

		g, gctx := errgroup.WithContext(ctx)
		for name, probe := range probes {
			g.Go(func() error {
				resultCh <- result{name: name, err: probe.Health(gctx)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)

		status := "ok"
		deps := make(map[string]string, len(probes))
		for res := range resultCh {
			if res.err != nil {
				status = "degraded"
				deps[res.name] = res.err.Error()
			} else {
				deps[res.name] = "ok"
			}
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status": status,
			"deps":   deps,
		})
	}
}
