package reports

import (
	"net/http"

	"github.com/datapulse/dataplatform-backend/api/responses"
	"github.com/datapulse/dataplatform-backend/internal/analytics"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

func Customers(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		report, err := service.Customers(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, report, "Customer analytics calculated successfully")
	}
}
