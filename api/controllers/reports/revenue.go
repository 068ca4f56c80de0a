package reports

import (
	"fmt"
	"net/http"

	"github.com/datapulse/dataplatform-backend/api/responses"
	"github.com/datapulse/dataplatform-backend/api/validators"
	"github.com/datapulse/dataplatform-backend/internal/analytics"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
	pkgerrors "github.com/datapulse/dataplatform-backend/pkg/errors"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

func RevenueTrends(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		period, err := enums.ParsePeriod(validators.QueryString(r, "period", enums.PeriodDaily.String()))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "period must be daily, weekly or monthly").WithDetails(map[string]any{"field": "period"}))
			return
		}

		report, err := service.RevenueTrends(ctx, period)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, report, fmt.Sprintf("Revenue analytics calculated for %s period", period))
	}
}
