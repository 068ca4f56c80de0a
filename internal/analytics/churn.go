package analytics

import (
	"time"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
)

// churnMetrics classifies customers by the age of their most recent
// transaction. Customers with no transactions stay out of the
// churned/at-risk partition but still count toward the total, so
// active = total - churned can exceed the number of transacting customers.
func churnMetrics(customers []models.Customer, transactions []models.Transaction, now time.Time, atRiskDays, churnDays int) *ChurnReport {
	lastPurchase := make(map[string]time.Time)
	for _, txn := range transactions {
		if existing, ok := lastPurchase[txn.CustomerID]; !ok || txn.TransactionDate.After(existing) {
			lastPurchase[txn.CustomerID] = txn.TransactionDate
		}
	}

	var churned, atRisk int
	for _, last := range lastPurchase {
		days := int(now.Sub(last).Hours() / 24)
		switch {
		case days > churnDays:
			churned++
		case days > atRiskDays:
			atRisk++
		}
	}

	total := len(customers)
	var rate float64
	if total > 0 {
		rate = float64(churned) / float64(total) * 100
	}

	return &ChurnReport{
		ChurnRate:           round2(rate),
		ChurnedCustomers:    churned,
		AtRiskCustomers:     atRisk,
		TotalCustomers:      total,
		ActiveCustomers:     total - churned,
		ChurnThresholdDays:  churnDays,
		AtRiskThresholdDays: atRiskDays,
	}
}
