package analytics

import (
	"sort"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
)

// buildSpendProfiles aggregates transactions into one profile per customer,
// ordered by customer_id so identical input always produces the same profile
// sequence. Orphan customer_ids (no matching customer row) still get a
// profile.
func buildSpendProfiles(transactions []models.Transaction) []SpendProfile {
	byCustomer := make(map[string]*SpendProfile)
	for _, txn := range transactions {
		profile, ok := byCustomer[txn.CustomerID]
		if !ok {
			profile = &SpendProfile{
				CustomerID:    txn.CustomerID,
				FirstPurchase: txn.TransactionDate,
				LastPurchase:  txn.TransactionDate,
			}
			byCustomer[txn.CustomerID] = profile
		}
		profile.TransactionCount++
		profile.TotalSpent += txn.Amount
		if txn.TransactionDate.Before(profile.FirstPurchase) {
			profile.FirstPurchase = txn.TransactionDate
		}
		if txn.TransactionDate.After(profile.LastPurchase) {
			profile.LastPurchase = txn.TransactionDate
		}
	}

	profiles := make([]SpendProfile, 0, len(byCustomer))
	for _, profile := range byCustomer {
		profile.AvgOrderValue = round2(profile.TotalSpent / float64(profile.TransactionCount))
		profile.TotalSpent = round2(profile.TotalSpent)
		profiles = append(profiles, *profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CustomerID < profiles[j].CustomerID
	})
	return profiles
}

func totalsOf(profiles []SpendProfile) []float64 {
	totals := make([]float64, len(profiles))
	for i, p := range profiles {
		totals[i] = p.TotalSpent
	}
	return totals
}
