package controllers

import (
	"net/http"

	"github.com/datapulse/dataplatform-backend/api/responses"
	"github.com/datapulse/dataplatform-backend/internal/analytics"
	"github.com/datapulse/dataplatform-backend/pkg/config"
	"github.com/datapulse/dataplatform-backend/pkg/db"
	pkgerrors "github.com/datapulse/dataplatform-backend/pkg/errors"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

const envHeader = "X-DataPulse-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The dataset is the hard dependency: without
// a loaded snapshot the service cannot answer anything, so readiness fails
// with 503. The database is reported informationally since CSV-backed
// deployments run without one.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, service analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()

		database := "disconnected"
		if dbP != nil {
			if err := dbP.Ping(ctx); err == nil {
				database = "connected"
			} else if logg != nil {
				logg.Warn(logg.WithField(ctx, "database", "unreachable"), "health.db_ping_failed")
			}
		}

		if !service.Ready() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "data not available").
				WithDetails(map[string]string{"database": database, "data_loaded": "no"}))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"status":      "ready",
			"database":    database,
			"data_loaded": "yes",
		})
	}
}
