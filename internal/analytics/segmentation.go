package analytics

import (
	"sort"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
)

const topCustomerLimit = 10

// tierCuts pairs each named tier with its lower percentile bound. A tier's
// upper bound is the previous entry's cut; Platinum is unbounded above.
// Spend below the 40th percentile is left unassigned, matching the observed
// production behavior.
var tierCuts = []struct {
	tier enums.Tier
	cut  float64
}{
	{enums.TierPlatinum, 95},
	{enums.TierGold, 80},
	{enums.TierSilver, 60},
	{enums.TierBronze, 40},
}

// segmentMetrics partitions transacting customers into value tiers by their
// lifetime spend percentiles. Empty tiers are omitted from the output.
func segmentMetrics(transactions []models.Transaction) *SegmentationReport {
	profiles := buildSpendProfiles(transactions)
	totals := totalsOf(profiles)

	highValueThreshold := percentile(totals, 80)
	highValue := make([]SpendProfile, 0)
	for _, p := range profiles {
		if p.TotalSpent >= highValueThreshold {
			highValue = append(highValue, p)
		}
	}
	sort.SliceStable(highValue, func(i, j int) bool {
		return highValue[i].TotalSpent > highValue[j].TotalSpent
	})

	report := &SegmentationReport{
		HighValueThreshold:      round2(highValueThreshold),
		TotalHighValueCustomers: len(highValue),
		CustomerSegments:        make([]SegmentTier, 0, len(tierCuts)),
		Top10Customers:          highValue,
	}
	if len(report.Top10Customers) > topCustomerLimit {
		report.Top10Customers = report.Top10Customers[:topCustomerLimit]
	}
	if len(profiles) == 0 {
		return report
	}

	for i, tc := range tierCuts {
		lower := percentile(totals, tc.cut)
		hasUpper := i > 0
		var upper float64
		if hasUpper {
			upper = percentile(totals, tierCuts[i-1].cut)
		}

		var members []SpendProfile
		for _, p := range profiles {
			if p.TotalSpent < lower {
				continue
			}
			if hasUpper && p.TotalSpent >= upper {
				continue
			}
			members = append(members, p)
		}
		if len(members) == 0 {
			continue
		}

		report.CustomerSegments = append(report.CustomerSegments, tierStats(tc.tier, members, len(profiles)))
	}
	return report
}

func tierStats(tier enums.Tier, members []SpendProfile, profiled int) SegmentTier {
	minSpend := members[0].TotalSpent
	maxSpend := members[0].TotalSpent
	var total float64
	for _, m := range members {
		total += m.TotalSpent
		if m.TotalSpent < minSpend {
			minSpend = m.TotalSpent
		}
		if m.TotalSpent > maxSpend {
			maxSpend = m.TotalSpent
		}
	}
	return SegmentTier{
		Segment:       tier,
		CustomerCount: len(members),
		AvgRevenue:    round2(total / float64(len(members))),
		TotalRevenue:  round2(total),
		Percentage:    round2(float64(len(members)) / float64(profiled) * 100),
		MinSpend:      round2(minSpend),
		MaxSpend:      round2(maxSpend),
	}
}
