package analytics

import (
	"sort"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
)

const acquisitionMonths = 12

// customerMetrics summarizes lifetime value, purchase frequency and recent
// acquisition across the customer base.
func customerMetrics(customers []models.Customer, transactions []models.Transaction) *CustomerReport {
	profiles := buildSpendProfiles(transactions)
	totals := totalsOf(profiles)

	counts := make([]float64, len(profiles))
	var oneTime, repeat int
	for i, p := range profiles {
		counts[i] = float64(p.TransactionCount)
		if p.TransactionCount == 1 {
			oneTime++
		} else {
			repeat++
		}
	}

	return &CustomerReport{
		TotalCustomers:         len(customers),
		CustomersWithPurchases: len(profiles),
		CustomerLifetimeValue: ValueDistribution{
			Mean:         round2(mean(totals)),
			Median:       round2(median(totals)),
			Percentile75: round2(percentile(totals, 75)),
			Percentile95: round2(percentile(totals, 95)),
		},
		PurchaseFrequency: PurchaseFrequency{
			Mean:            round2(mean(counts)),
			Median:          round2(median(counts)),
			OneTimeBuyers:   oneTime,
			RepeatCustomers: repeat,
		},
		CustomerAcquisition: acquisitionByMonth(customers),
	}
}

// acquisitionByMonth counts registrations per calendar month and keeps the
// most recent months that actually had signups, oldest first.
func acquisitionByMonth(customers []models.Customer) []MonthlyAcquisition {
	byMonth := make(map[string]int)
	for _, c := range customers {
		byMonth[c.RegistrationDate.Format("2006-01")]++
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	if len(months) > acquisitionMonths {
		months = months[len(months)-acquisitionMonths:]
	}

	acquisition := make([]MonthlyAcquisition, len(months))
	for i, month := range months {
		acquisition[i] = MonthlyAcquisition{Month: month, Customers: byMonth[month]}
	}
	return acquisition
}
