package reports

import (
	"net/http"

	"github.com/datapulse/dataplatform-backend/api/responses"
	"github.com/datapulse/dataplatform-backend/api/validators"
	"github.com/datapulse/dataplatform-backend/internal/analytics"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

const maxThresholdDays = 3650

// Churn serves the recency report. at_risk_days and churn_days query
// parameters override the configured thresholds for the one call.
func Churn(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		atRiskDays, err := validators.ParseQueryInt(r, "at_risk_days", 0, 1, maxThresholdDays)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		churnDays, err := validators.ParseQueryInt(r, "churn_days", 0, 1, maxThresholdDays)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := service.Churn(ctx, atRiskDays, churnDays)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, report, "Churn metrics calculated successfully")
	}
}
