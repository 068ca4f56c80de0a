package analytics

import (
	"fmt"
	"sort"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
)

const recentAnomalyLimit = 10

// anomalyMetrics runs both sub-analyses over the full transaction set, no
// status filter. Amounts use the 3-sigma rule, daily counts the 2-sigma rule
// with the lower bound clamped at zero.
func anomalyMetrics(transactions []models.Transaction) *AnomalyReport {
	amounts := make([]float64, len(transactions))
	for i, txn := range transactions {
		amounts[i] = txn.Amount
	}

	meanAmount := mean(amounts)
	stdAmount := sampleStdDev(amounts)
	threshold := meanAmount + 3*stdAmount

	var anomalous []models.Transaction
	var anomalousTotal float64
	if len(transactions) > 0 {
		for _, txn := range transactions {
			if txn.Amount > threshold {
				anomalous = append(anomalous, txn)
				anomalousTotal += txn.Amount
			}
		}
	}

	var avgAnomalous float64
	if len(anomalous) > 0 {
		avgAnomalous = anomalousTotal / float64(len(anomalous))
	}

	report := &AnomalyReport{
		LargeTransactions: LargeTransactionStats{
			Count:      len(anomalous),
			Threshold:  round2(threshold),
			TotalValue: round2(anomalousTotal),
			AvgAmount:  round2(avgAnomalous),
		},
		DailyVolumeAnomalies: dailyVolumeStats(transactions),
		RecentAnomalies:      recentAnomalies(anomalous),
	}
	return report
}

func dailyVolumeStats(transactions []models.Transaction) DailyVolumeStats {
	countsByDay := make(map[string]int)
	for _, txn := range transactions {
		countsByDay[txn.TransactionDate.Format("2006-01-02")]++
	}

	counts := make([]float64, 0, len(countsByDay))
	for _, c := range countsByDay {
		counts = append(counts, float64(c))
	}

	dailyMean := mean(counts)
	dailyStd := sampleStdDev(counts)
	upper := dailyMean + 2*dailyStd
	lower := dailyMean - 2*dailyStd
	if lower < 0 {
		lower = 0
	}

	var anomalousDays int
	for _, c := range counts {
		if c > upper || c < lower {
			anomalousDays++
		}
	}

	return DailyVolumeStats{
		AnomalousDays:  anomalousDays,
		UpperThreshold: round2(upper),
		LowerThreshold: round2(lower),
		NormalDailyRange: fmt.Sprintf("%.0f - %.0f",
			dailyMean-dailyStd, dailyMean+dailyStd),
	}
}

// recentAnomalies returns the newest flagged transactions, most recent first.
func recentAnomalies(anomalous []models.Transaction) []AnomalousTransaction {
	sorted := make([]models.Transaction, len(anomalous))
	copy(sorted, anomalous)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.After(sorted[j].TransactionDate)
	})
	if len(sorted) > recentAnomalyLimit {
		sorted = sorted[:recentAnomalyLimit]
	}

	recent := make([]AnomalousTransaction, len(sorted))
	for i, txn := range sorted {
		recent[i] = AnomalousTransaction{
			TransactionID:   txn.TransactionID,
			CustomerID:      txn.CustomerID,
			Amount:          txn.Amount,
			TransactionDate: txn.TransactionDate,
		}
	}
	return recent
}
