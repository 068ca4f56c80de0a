package analytics

import (
	"sort"
	"time"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
)

// bucketKey maps a transaction date onto its period bucket label. Labels sort
// lexicographically in chronological order for every period. Weekly buckets
// are keyed by the Monday that starts the ISO week.
func bucketKey(ts time.Time, period enums.Period) string {
	switch period {
	case enums.PeriodWeekly:
		offset := (int(ts.Weekday()) + 6) % 7
		monday := ts.AddDate(0, 0, -offset)
		return monday.Format("2006-01-02")
	case enums.PeriodMonthly:
		return ts.Format("2006-01")
	default:
		return ts.Format("2006-01-02")
	}
}

type bucketAccumulator struct {
	transactions int
	revenue      float64
	customers    map[string]struct{}
}

// trendMetrics buckets transactions by the given period and summarizes the
// series. Empty buckets are not zero-filled; only periods with at least one
// transaction appear.
func trendMetrics(transactions []models.Transaction, period enums.Period) *RevenueTrendReport {
	accumulators := make(map[string]*bucketAccumulator)
	var totalRevenue float64
	for _, txn := range transactions {
		key := bucketKey(txn.TransactionDate, period)
		acc, ok := accumulators[key]
		if !ok {
			acc = &bucketAccumulator{customers: make(map[string]struct{})}
			accumulators[key] = acc
		}
		acc.transactions++
		acc.revenue += txn.Amount
		acc.customers[txn.CustomerID] = struct{}{}
		totalRevenue += txn.Amount
	}

	keys := make([]string, 0, len(accumulators))
	for key := range accumulators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]TrendBucket, len(keys))
	var revenueSum float64
	for i, key := range keys {
		acc := accumulators[key]
		buckets[i] = TrendBucket{
			Period:          key,
			Transactions:    acc.transactions,
			Revenue:         round2(acc.revenue),
			AvgOrderValue:   round2(acc.revenue / float64(acc.transactions)),
			UniqueCustomers: len(acc.customers),
		}
		revenueSum += acc.revenue
	}

	report := &RevenueTrendReport{
		Period:            period,
		TotalRevenue:      round2(totalRevenue),
		TotalTransactions: len(transactions),
		DataPoints:        len(buckets),
		RevenueTrends:     buckets,
	}

	if len(buckets) > 0 {
		report.Summary.AvgRevenuePerBucket = round2(revenueSum / float64(len(buckets)))
		peak := 0
		for i := 1; i < len(buckets); i++ {
			if buckets[i].Revenue > buckets[peak].Revenue {
				peak = i
			}
		}
		peakCopy := buckets[peak]
		report.Summary.PeakBucket = &peakCopy
	}
	report.Summary.RevenueGrowthPct = growthPct(buckets)

	return report
}

// growthPct is the relative revenue change from the first to the last bucket.
// It is 0 with fewer than two buckets and nil when the first bucket has zero
// revenue, where the ratio is undefined.
func growthPct(buckets []TrendBucket) *float64 {
	zero := 0.0
	if len(buckets) < 2 {
		return &zero
	}
	first := buckets[0].Revenue
	if first == 0 {
		return nil
	}
	growth := round2((buckets[len(buckets)-1].Revenue/first - 1) * 100)
	return &growth
}
