package controllers

import (
	"net/http"

	"github.com/datapulse/dataplatform-backend/api/responses"
	"github.com/datapulse/dataplatform-backend/internal/dataset"
	"github.com/datapulse/dataplatform-backend/pkg/config"
	"github.com/datapulse/dataplatform-backend/pkg/db"
)

var reportEndpoints = []string{
	"/metrics/churn",
	"/metrics/anomalies",
	"/segments/high_value",
	"/analytics/revenue",
	"/analytics/customers",
}

type statusPayload struct {
	APIVersion         string         `json:"api_version"`
	DatabaseStatus     string         `json:"database_status"`
	DataStatus         string         `json:"data_status"`
	AvailableEndpoints []string       `json:"available_endpoints"`
	DataSummary        dataset.Counts `json:"data_summary"`
}

// Status reports service metadata and dataset row counts. Unlike readiness
// it never fails; an unloaded dataset shows up as data_status=not_loaded.
func Status(cfg *config.Config, dbP db.Pinger, provider dataset.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := statusPayload{
			APIVersion:         cfg.App.Version,
			DatabaseStatus:     "disconnected",
			DataStatus:         "not_loaded",
			AvailableEndpoints: reportEndpoints,
		}

		if dbP != nil && dbP.Ping(r.Context()) == nil {
			payload.DatabaseStatus = "connected"
		}
		if snap := provider.Snapshot(); snap != nil {
			payload.DataStatus = "loaded"
			payload.DataSummary = snap.Counts()
		}

		responses.WriteSuccess(w, payload)
	}
}
