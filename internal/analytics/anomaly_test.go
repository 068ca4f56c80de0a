package analytics

import (
	"fmt"
	"testing"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
)

func TestAnomalyFlagsSingleOutlier(t *testing.T) {
	transactions := make([]models.Transaction, 0, 100)
	for i := 0; i < 99; i++ {
		transactions = append(transactions, txn(fmt.Sprintf("T%03d", i), "C1", daysAgo(99-i), 10))
	}
	transactions = append(transactions, txn("T_BIG", "C2", daysAgo(0), 10000))

	report := anomalyMetrics(transactions)

	if report.LargeTransactions.Count != 1 {
		t.Fatalf("expected exactly the 10000 transaction flagged, got %d", report.LargeTransactions.Count)
	}
	// mean 109.9, sample std ~999, threshold ~3107: well below 10000.
	if report.LargeTransactions.Threshold <= 109.9 || report.LargeTransactions.Threshold >= 10000 {
		t.Fatalf("threshold out of expected range: %v", report.LargeTransactions.Threshold)
	}
	if report.LargeTransactions.TotalValue != 10000 {
		t.Fatalf("expected anomalous total 10000, got %v", report.LargeTransactions.TotalValue)
	}
	if report.LargeTransactions.AvgAmount != 10000 {
		t.Fatalf("expected anomalous mean 10000, got %v", report.LargeTransactions.AvgAmount)
	}
	if len(report.RecentAnomalies) != 1 || report.RecentAnomalies[0].TransactionID != "T_BIG" {
		t.Fatalf("expected T_BIG in recent anomalies, got %+v", report.RecentAnomalies)
	}
}

func TestAnomalyUniformAmountsFlagNothing(t *testing.T) {
	transactions := []models.Transaction{
		txn("T1", "C1", daysAgo(2), 50),
		txn("T2", "C1", daysAgo(1), 50),
		txn("T3", "C2", daysAgo(0), 50),
	}

	report := anomalyMetrics(transactions)

	if report.LargeTransactions.Count != 0 {
		t.Fatalf("identical amounts must not be anomalous, got %d", report.LargeTransactions.Count)
	}
	if report.LargeTransactions.AvgAmount != 0 {
		t.Fatalf("expected avg 0 with no anomalies, got %v", report.LargeTransactions.AvgAmount)
	}
	if len(report.RecentAnomalies) != 0 {
		t.Fatalf("expected no recent anomalies, got %+v", report.RecentAnomalies)
	}
}

func TestAnomalySingleDayVolume(t *testing.T) {
	day := daysAgo(3)
	transactions := []models.Transaction{
		txn("T1", "C1", day, 10),
		txn("T2", "C2", day.Add(2 * 3600e9), 20),
		txn("T3", "C3", day.Add(5 * 3600e9), 30),
	}

	report := anomalyMetrics(transactions)
	volume := report.DailyVolumeAnomalies

	// One day of data: std is treated as zero, so the band collapses onto
	// the mean and nothing is flagged.
	if volume.AnomalousDays != 0 {
		t.Fatalf("single day must not be anomalous, got %d", volume.AnomalousDays)
	}
	if volume.UpperThreshold != 3 || volume.LowerThreshold != 3 {
		t.Fatalf("expected collapsed thresholds at 3, got %+v", volume)
	}
	if volume.NormalDailyRange != "3 - 3" {
		t.Fatalf("unexpected normal range %q", volume.NormalDailyRange)
	}
}

func TestAnomalyVolumeOutlierDay(t *testing.T) {
	var transactions []models.Transaction
	// Nine ordinary days with 10 transactions, one day with 100.
	id := 0
	for day := 0; day < 9; day++ {
		for i := 0; i < 10; i++ {
			transactions = append(transactions, txn(fmt.Sprintf("T%04d", id), "C1", daysAgo(day+1), 5))
			id++
		}
	}
	for i := 0; i < 100; i++ {
		transactions = append(transactions, txn(fmt.Sprintf("T%04d", id), "C1", daysAgo(0), 5))
		id++
	}

	report := anomalyMetrics(transactions)
	if report.DailyVolumeAnomalies.AnomalousDays != 1 {
		t.Fatalf("expected the 100-transaction day flagged, got %+v", report.DailyVolumeAnomalies)
	}
	if report.DailyVolumeAnomalies.LowerThreshold < 0 {
		t.Fatalf("lower threshold must be clamped at zero, got %v", report.DailyVolumeAnomalies.LowerThreshold)
	}
}

func TestRecentAnomaliesNewestFirstCappedAtTen(t *testing.T) {
	var flagged []models.Transaction
	for i := 0; i < 12; i++ {
		flagged = append(flagged, txn(fmt.Sprintf("T%02d", i), "C1", daysAgo(12-i), 100))
	}

	recent := recentAnomalies(flagged)

	if len(recent) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(recent))
	}
	if recent[0].TransactionID != "T11" {
		t.Fatalf("expected newest first, got %s", recent[0].TransactionID)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].TransactionDate.After(recent[i-1].TransactionDate) {
			t.Fatalf("entries not in descending date order at %d", i)
		}
	}
}

func TestAnomalyEmptyTransactions(t *testing.T) {
	report := anomalyMetrics(nil)

	if report.LargeTransactions.Count != 0 || report.LargeTransactions.Threshold != 0 {
		t.Fatalf("expected zero-valued amount stats, got %+v", report.LargeTransactions)
	}
	if report.DailyVolumeAnomalies.AnomalousDays != 0 {
		t.Fatalf("expected no anomalous days, got %+v", report.DailyVolumeAnomalies)
	}
	if len(report.RecentAnomalies) != 0 {
		t.Fatalf("expected empty recent anomalies, got %+v", report.RecentAnomalies)
	}
}
