package analytics

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/datapulse/dataplatform-backend/internal/dataset"
	"github.com/datapulse/dataplatform-backend/pkg/config"
	"github.com/datapulse/dataplatform-backend/pkg/db/models"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
	"github.com/datapulse/dataplatform-backend/pkg/errors"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

func testThresholds() config.ChurnConfig {
	return config.ChurnConfig{AtRiskDays: 60, ChurnDays: 90}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "analytics-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func newTestService(t *testing.T, snap *dataset.Snapshot) Service {
	t.Helper()
	svc, err := NewService(dataset.NewStatic(snap), testLogger(), testThresholds())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(nil, testLogger(), testThresholds()); err == nil {
		t.Fatal("expected error for nil provider")
	}
	if _, err := NewService(dataset.NewStatic(nil), nil, testThresholds()); err == nil {
		t.Fatal("expected error for nil logger")
	}
	if _, err := NewService(dataset.NewStatic(nil), testLogger(), config.ChurnConfig{AtRiskDays: 90, ChurnDays: 60}); err == nil {
		t.Fatal("expected error for inverted thresholds")
	}
}

func TestServiceReady(t *testing.T) {
	if newTestService(t, nil).Ready() {
		t.Fatal("nil snapshot must not be ready")
	}
	if !newTestService(t, &dataset.Snapshot{}).Ready() {
		t.Fatal("loaded snapshot must be ready")
	}
}

func TestServiceFailsFastWithoutData(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	calls := []func() error{
		func() error { _, err := svc.Churn(ctx, 0, 0); return err },
		func() error { _, err := svc.Anomalies(ctx); return err },
		func() error { _, err := svc.Segments(ctx); return err },
		func() error { _, err := svc.RevenueTrends(ctx, enums.PeriodDaily); return err },
		func() error { _, err := svc.Customers(ctx); return err },
	}
	for i, call := range calls {
		err := call()
		if err == nil {
			t.Fatalf("call %d: expected dependency error", i)
		}
		typed := errors.As(err)
		if typed == nil || typed.Code() != errors.CodeDependency {
			t.Fatalf("call %d: expected %s, got %v", i, errors.CodeDependency, err)
		}
	}
}

func TestServiceRejectsInvalidPeriod(t *testing.T) {
	svc := newTestService(t, &dataset.Snapshot{})

	_, err := svc.RevenueTrends(context.Background(), enums.Period("hourly"))
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceEmptySnapshotReturnsZeroReports(t *testing.T) {
	svc := newTestService(t, &dataset.Snapshot{})
	ctx := context.Background()

	churn, err := svc.Churn(ctx, 0, 0)
	if err != nil || churn.TotalCustomers != 0 {
		t.Fatalf("expected empty churn report, got %+v err=%v", churn, err)
	}
	trends, err := svc.RevenueTrends(ctx, enums.PeriodMonthly)
	if err != nil || trends.TotalRevenue != 0 {
		t.Fatalf("expected empty trend report, got %+v err=%v", trends, err)
	}
}

func TestServiceChurnUsesConfiguredThresholds(t *testing.T) {
	snap := &dataset.Snapshot{
		Customers:    []models.Customer{customer("C1", testNow.AddDate(-1, 0, 0))},
		Transactions: []models.Transaction{txn("T1", "C1", time.Now().AddDate(0, 0, -10), 100)},
	}
	svc := newTestService(t, snap)

	report, err := svc.Churn(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Churn: %v", err)
	}
	if report.ChurnThresholdDays != 90 || report.AtRiskThresholdDays != 60 {
		t.Fatalf("expected configured thresholds echoed, got %+v", report)
	}
	if report.ActiveCustomers != 1 {
		t.Fatalf("expected the recent buyer active, got %+v", report)
	}
}

func TestServiceChurnThresholdOverrides(t *testing.T) {
	snap := &dataset.Snapshot{
		Customers:    []models.Customer{customer("C1", testNow.AddDate(-1, 0, 0))},
		Transactions: []models.Transaction{txn("T1", "C1", time.Now().AddDate(0, 0, -10), 100)},
	}
	svc := newTestService(t, snap)

	report, err := svc.Churn(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("Churn: %v", err)
	}
	if report.ChurnThresholdDays != 5 || report.AtRiskThresholdDays != 2 {
		t.Fatalf("expected override thresholds echoed, got %+v", report)
	}
	if report.ChurnedCustomers != 1 {
		t.Fatalf("expected the 10-day-old buyer churned under the 5-day threshold, got %+v", report)
	}
}

func TestServiceChurnRejectsInvertedOverrides(t *testing.T) {
	svc := newTestService(t, &dataset.Snapshot{})

	_, err := svc.Churn(context.Background(), 90, 60)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error for inverted thresholds, got %v", err)
	}

	_, err = svc.Churn(context.Background(), 0, 30)
	typed = errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error when churn_days undercuts the default at_risk_days, got %v", err)
	}
}

func TestServiceRecoversAnalyzerPanic(t *testing.T) {
	svc := &service{
		provider:   dataset.NewStatic(&dataset.Snapshot{}),
		log:        testLogger(),
		thresholds: testThresholds(),
		now:        func() time.Time { panic("clock failure") },
	}

	_, err := svc.Churn(context.Background(), 0, 0)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeInternal {
		t.Fatalf("expected internal error from recovered panic, got %v", err)
	}
}
