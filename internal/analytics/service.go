package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/datapulse/dataplatform-backend/internal/dataset"
	"github.com/datapulse/dataplatform-backend/pkg/config"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
	"github.com/datapulse/dataplatform-backend/pkg/errors"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

// Service exposes the read-only analytics reports. Every report method fails
// fast with a dependency error when the dataset never loaded, and converts
// analyzer panics into internal errors instead of crashing the caller.
type Service interface {
	Ready() bool
	Churn(ctx context.Context, atRiskDays, churnDays int) (*ChurnReport, error)
	Anomalies(ctx context.Context) (*AnomalyReport, error)
	Segments(ctx context.Context) (*SegmentationReport, error)
	RevenueTrends(ctx context.Context, period enums.Period) (*RevenueTrendReport, error)
	Customers(ctx context.Context) (*CustomerReport, error)
}

type service struct {
	provider   dataset.Provider
	log        *logger.Logger
	thresholds config.ChurnConfig
	now        func() time.Time
}

// NewService wires the analyzers to a snapshot provider.
func NewService(provider dataset.Provider, log *logger.Logger, thresholds config.ChurnConfig) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("analytics service requires a dataset provider")
	}
	if log == nil {
		return nil, fmt.Errorf("analytics service requires a logger")
	}
	if thresholds.AtRiskDays <= 0 || thresholds.ChurnDays <= thresholds.AtRiskDays {
		return nil, fmt.Errorf("invalid churn thresholds: at_risk=%d churn=%d", thresholds.AtRiskDays, thresholds.ChurnDays)
	}
	return &service{
		provider:   provider,
		log:        log,
		thresholds: thresholds,
		now:        time.Now,
	}, nil
}

// Ready reports whether a dataset snapshot is available.
func (s *service) Ready() bool {
	return s.provider.Snapshot() != nil
}

func (s *service) snapshot() (*dataset.Snapshot, error) {
	snap := s.provider.Snapshot()
	if snap == nil {
		return nil, errors.New(errors.CodeDependency, "data not available")
	}
	return snap, nil
}

// recoverTo converts an analyzer panic into an internal error on the named
// return.
func (s *service) recoverTo(ctx context.Context, report string, err *error) {
	if r := recover(); r != nil {
		ctx = s.log.WithReport(ctx, report)
		s.log.Error(ctx, "analyzer panicked", fmt.Errorf("%v", r))
		*err = errors.New(errors.CodeInternal, fmt.Sprintf("failed to compute %s report", report))
	}
}

// Churn classifies customers by transaction recency. Threshold arguments of
// zero or less fall back to the configured defaults.
func (s *service) Churn(ctx context.Context, atRiskDays, churnDays int) (report *ChurnReport, err error) {
	if atRiskDays <= 0 {
		atRiskDays = s.thresholds.AtRiskDays
	}
	if churnDays <= 0 {
		churnDays = s.thresholds.ChurnDays
	}
	if churnDays <= atRiskDays {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("churn_days must be greater than at_risk_days: at_risk=%d churn=%d", atRiskDays, churnDays))
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer s.recoverTo(ctx, "churn", &err)
	return churnMetrics(snap.Customers, snap.Transactions, s.now(), atRiskDays, churnDays), nil
}

func (s *service) Anomalies(ctx context.Context) (report *AnomalyReport, err error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer s.recoverTo(ctx, "anomalies", &err)
	return anomalyMetrics(snap.Transactions), nil
}

func (s *service) Segments(ctx context.Context) (report *SegmentationReport, err error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer s.recoverTo(ctx, "segments", &err)
	return segmentMetrics(snap.Transactions), nil
}

func (s *service) RevenueTrends(ctx context.Context, period enums.Period) (report *RevenueTrendReport, err error) {
	if !period.IsValid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid period %q, use daily, weekly or monthly", period))
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer s.recoverTo(ctx, "revenue", &err)
	return trendMetrics(snap.Transactions, period), nil
}

func (s *service) Customers(ctx context.Context) (report *CustomerReport, err error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer s.recoverTo(ctx, "customers", &err)
	return customerMetrics(snap.Customers, snap.Transactions), nil
}
