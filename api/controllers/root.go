package controllers

import (
	"net/http"

	"github.com/datapulse/dataplatform-backend/api/responses"
	"github.com/datapulse/dataplatform-backend/pkg/config"
)

// Root is the service banner.
func Root(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"message": "DataPulse Analytics API",
			"version": cfg.App.Version,
			"status":  "healthy",
		})
	}
}
