package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/datapulse/dataplatform-backend/api/controllers"
	"github.com/datapulse/dataplatform-backend/api/controllers/reports"
	"github.com/datapulse/dataplatform-backend/api/middleware"
	"github.com/datapulse/dataplatform-backend/internal/analytics"
	"github.com/datapulse/dataplatform-backend/internal/dataset"
	"github.com/datapulse/dataplatform-backend/pkg/config"
	"github.com/datapulse/dataplatform-backend/pkg/db"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
	"github.com/datapulse/dataplatform-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	dbP db.Pinger,
	provider dataset.Provider,
	analyticsService analytics.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Get("/", controllers.Root(cfg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, analyticsService))
	})

	r.Get("/api/status", controllers.Status(cfg, dbP, provider))

	r.Route("/metrics", func(r chi.Router) {
		r.Get("/churn", reports.Churn(analyticsService, logg))
		r.Get("/anomalies", reports.Anomalies(analyticsService, logg))
	})

	r.Get("/segments/high_value", reports.HighValueSegments(analyticsService, logg))

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/revenue", reports.RevenueTrends(analyticsService, logg))
		r.Get("/customers", reports.Customers(analyticsService, logg))
	})

	if gatherer != nil {
		r.Get("/prometheus/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}

	return r
}
