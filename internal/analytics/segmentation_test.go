package analytics

import (
	"fmt"
	"testing"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
)

// twentyCustomerLadder builds one transaction per customer with total spends
// 10, 20, ..., 200.
func twentyCustomerLadder() []models.Transaction {
	var transactions []models.Transaction
	for i := 1; i <= 20; i++ {
		transactions = append(transactions,
			txn(fmt.Sprintf("T%02d", i), fmt.Sprintf("C%02d", i), daysAgo(i), float64(i*10)))
	}
	return transactions
}

func findTier(t *testing.T, report *SegmentationReport, tier enums.Tier) SegmentTier {
	t.Helper()
	for _, s := range report.CustomerSegments {
		if s.Segment == tier {
			return s
		}
	}
	t.Fatalf("tier %s not present in %+v", tier, report.CustomerSegments)
	return SegmentTier{}
}

func TestSegmentationTierBoundaries(t *testing.T) {
	report := segmentMetrics(twentyCustomerLadder())

	// Interpolated percentiles over 10..200: P95=190.5, P80=162, P60=124, P40=86.
	platinum := findTier(t, report, enums.TierPlatinum)
	if platinum.CustomerCount != 1 || platinum.MinSpend != 200 {
		t.Fatalf("unexpected platinum tier %+v", platinum)
	}
	gold := findTier(t, report, enums.TierGold)
	if gold.CustomerCount != 3 || gold.MinSpend != 170 || gold.MaxSpend != 190 {
		t.Fatalf("unexpected gold tier %+v", gold)
	}
	silver := findTier(t, report, enums.TierSilver)
	if silver.CustomerCount != 4 || silver.MinSpend != 130 || silver.MaxSpend != 160 {
		t.Fatalf("unexpected silver tier %+v", silver)
	}
	bronze := findTier(t, report, enums.TierBronze)
	if bronze.CustomerCount != 4 || bronze.MinSpend != 90 || bronze.MaxSpend != 120 {
		t.Fatalf("unexpected bronze tier %+v", bronze)
	}

	// Spend below the 40th percentile is deliberately unassigned.
	var assigned int
	for _, s := range report.CustomerSegments {
		assigned += s.CustomerCount
	}
	if assigned != 12 {
		t.Fatalf("expected 12 of 20 customers in named tiers, got %d", assigned)
	}

	if platinum.Percentage != 5 || gold.Percentage != 15 {
		t.Fatalf("percentages must be of profiled customers: %+v", report.CustomerSegments)
	}
}

func TestSegmentationTiersAreDisjoint(t *testing.T) {
	report := segmentMetrics(twentyCustomerLadder())

	for i, s := range report.CustomerSegments {
		if i == 0 {
			continue
		}
		prev := report.CustomerSegments[i-1]
		if s.MaxSpend >= prev.MinSpend {
			t.Fatalf("tiers overlap: %+v above %+v", s, prev)
		}
	}
}

func TestSegmentationHighValueSet(t *testing.T) {
	report := segmentMetrics(twentyCustomerLadder())

	if report.HighValueThreshold != 162 {
		t.Fatalf("expected P80 threshold 162, got %v", report.HighValueThreshold)
	}
	if report.TotalHighValueCustomers != 4 {
		t.Fatalf("expected 4 high-value customers, got %d", report.TotalHighValueCustomers)
	}
	if len(report.Top10Customers) != 4 || report.Top10Customers[0].TotalSpent != 200 {
		t.Fatalf("expected top customers sorted by spend desc, got %+v", report.Top10Customers)
	}
}

func TestSegmentationTopCustomersCappedAtTen(t *testing.T) {
	var transactions []models.Transaction
	for i := 1; i <= 60; i++ {
		transactions = append(transactions,
			txn(fmt.Sprintf("T%02d", i), fmt.Sprintf("C%02d", i), daysAgo(i), float64(i)))
	}

	report := segmentMetrics(transactions)
	if len(report.Top10Customers) != 10 {
		t.Fatalf("expected top list capped at 10, got %d", len(report.Top10Customers))
	}
	for i := 1; i < len(report.Top10Customers); i++ {
		if report.Top10Customers[i].TotalSpent > report.Top10Customers[i-1].TotalSpent {
			t.Fatalf("top customers not in descending order at %d", i)
		}
	}
}

func TestSegmentationAggregatesPerCustomer(t *testing.T) {
	transactions := []models.Transaction{
		txn("T1", "C1", daysAgo(3), 100),
		txn("T2", "C1", daysAgo(1), 50),
		txn("T3", "C2", daysAgo(2), 10),
	}

	report := segmentMetrics(transactions)

	if report.Top10Customers[0].CustomerID != "C1" || report.Top10Customers[0].TotalSpent != 150 {
		t.Fatalf("expected C1 aggregated to 150, got %+v", report.Top10Customers)
	}
	if report.Top10Customers[0].TransactionCount != 2 {
		t.Fatalf("expected 2 transactions for C1, got %+v", report.Top10Customers[0])
	}
	if report.Top10Customers[0].AvgOrderValue != 75 {
		t.Fatalf("expected avg order 75, got %v", report.Top10Customers[0].AvgOrderValue)
	}
}

func TestSegmentationEmptyTransactions(t *testing.T) {
	report := segmentMetrics(nil)

	if report.HighValueThreshold != 0 || report.TotalHighValueCustomers != 0 {
		t.Fatalf("expected zero-valued report, got %+v", report)
	}
	if len(report.CustomerSegments) != 0 || len(report.Top10Customers) != 0 {
		t.Fatalf("expected no tiers or top customers, got %+v", report)
	}
}
