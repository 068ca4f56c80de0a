package analytics

import (
	"time"

	"github.com/datapulse/dataplatform-backend/pkg/enums"
)

// ChurnReport classifies customers by transaction recency.
type ChurnReport struct {
	ChurnRate           float64 `json:"churn_rate"`
	ChurnedCustomers    int     `json:"churned_customers"`
	AtRiskCustomers     int     `json:"at_risk_customers"`
	TotalCustomers      int     `json:"total_customers"`
	ActiveCustomers     int     `json:"active_customers"`
	ChurnThresholdDays  int     `json:"churn_threshold_days"`
	AtRiskThresholdDays int     `json:"at_risk_threshold_days"`
}

// AnomalousTransaction is one flagged outlier transaction.
type AnomalousTransaction struct {
	TransactionID   string    `json:"transaction_id"`
	CustomerID      string    `json:"customer_id"`
	Amount          float64   `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
}

// LargeTransactionStats summarizes amount outliers above the 3-sigma
// threshold.
type LargeTransactionStats struct {
	Count      int     `json:"count"`
	Threshold  float64 `json:"threshold"`
	TotalValue float64 `json:"total_value"`
	AvgAmount  float64 `json:"avg_amount"`
}

// DailyVolumeStats summarizes days whose transaction counts fall outside the
// 2-sigma band.
type DailyVolumeStats struct {
	AnomalousDays    int     `json:"anomalous_days"`
	UpperThreshold   float64 `json:"upper_threshold"`
	LowerThreshold   float64 `json:"lower_threshold"`
	NormalDailyRange string  `json:"normal_daily_range"`
}

// AnomalyReport bundles the two anomaly sub-analyses.
type AnomalyReport struct {
	LargeTransactions    LargeTransactionStats  `json:"large_transactions"`
	DailyVolumeAnomalies DailyVolumeStats       `json:"daily_volume_anomalies"`
	RecentAnomalies      []AnomalousTransaction `json:"recent_anomalies"`
}

// SpendProfile is the per-customer purchase aggregate every downstream
// analyzer shares. Monetary fields are rounded to cents.
type SpendProfile struct {
	CustomerID       string    `json:"customer_id"`
	TransactionCount int       `json:"transaction_count"`
	TotalSpent       float64   `json:"total_spent"`
	AvgOrderValue    float64   `json:"avg_order_value"`
	FirstPurchase    time.Time `json:"first_purchase"`
	LastPurchase     time.Time `json:"last_purchase"`
}

// SegmentTier is one named value tier with its membership stats.
type SegmentTier struct {
	Segment       enums.Tier `json:"segment"`
	CustomerCount int        `json:"customer_count"`
	AvgRevenue    float64    `json:"avg_revenue"`
	TotalRevenue  float64    `json:"total_revenue"`
	Percentage    float64    `json:"percentage"`
	MinSpend      float64    `json:"min_spend"`
	MaxSpend      float64    `json:"max_spend"`
}

// SegmentationReport is the value-tier breakdown of the customer base.
type SegmentationReport struct {
	HighValueThreshold      float64        `json:"high_value_threshold"`
	TotalHighValueCustomers int            `json:"total_high_value_customers"`
	CustomerSegments        []SegmentTier  `json:"customer_segments"`
	Top10Customers          []SpendProfile `json:"top_10_customers"`
}

// TrendBucket is one time bucket of the revenue series.
type TrendBucket struct {
	Period          string  `json:"period"`
	Transactions    int     `json:"transactions"`
	Revenue         float64 `json:"revenue"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	UniqueCustomers int     `json:"unique_customers"`
}

// TrendSummary aggregates the bucket series. RevenueGrowthPct is nil when the
// first bucket has zero revenue and the growth ratio is undefined.
type TrendSummary struct {
	AvgRevenuePerBucket float64      `json:"avg_revenue_per_bucket"`
	PeakBucket          *TrendBucket `json:"peak_bucket"`
	RevenueGrowthPct    *float64     `json:"revenue_growth_pct"`
}

// RevenueTrendReport is the time-bucketed revenue analysis for one period.
type RevenueTrendReport struct {
	Period            enums.Period  `json:"period"`
	TotalRevenue      float64       `json:"total_revenue"`
	TotalTransactions int           `json:"total_transactions"`
	DataPoints        int           `json:"data_points"`
	RevenueTrends     []TrendBucket `json:"revenue_trends"`
	Summary           TrendSummary  `json:"summary"`
}

// ValueDistribution describes the spread of per-customer lifetime spend.
type ValueDistribution struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Percentile75 float64 `json:"percentile_75"`
	Percentile95 float64 `json:"percentile_95"`
}

// PurchaseFrequency describes how often customers buy.
type PurchaseFrequency struct {
	Mean            float64 `json:"mean"`
	Median          float64 `json:"median"`
	OneTimeBuyers   int     `json:"one_time_buyers"`
	RepeatCustomers int     `json:"repeat_customers"`
}

// MonthlyAcquisition is a registration count for one calendar month.
type MonthlyAcquisition struct {
	Month     string `json:"month"`
	Customers int    `json:"customers"`
}

// CustomerReport is the combined customer-base analysis.
type CustomerReport struct {
	TotalCustomers         int                  `json:"total_customers"`
	CustomersWithPurchases int                  `json:"customers_with_purchases"`
	CustomerLifetimeValue  ValueDistribution    `json:"customer_lifetime_value"`
	PurchaseFrequency      PurchaseFrequency    `json:"purchase_frequency"`
	CustomerAcquisition    []MonthlyAcquisition `json:"customer_acquisition"`
}
