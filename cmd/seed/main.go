package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/datapulse/dataplatform-backend/pkg/logger"
)

// Seeded generator producing the CSV fixtures the API loads in csv mode. The
// fixed seed makes reruns reproducible.
const randSeed = 42

var now = time.Now().UTC()

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	outDir := flag.String("out", "data/raw", "output directory for the CSV files")
	numCustomers := flag.Int("customers", 1000, "customers to generate")
	numTransactions := flag.Int("transactions", 10000, "transactions to generate")
	numEvents := flag.Int("events", 5000, "events to generate")
	numProducts := flag.Int("products", 500, "products to generate")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logg.Error(ctx, "failed to create output directory", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(randSeed))

	files := []struct {
		name string
		rows func() [][]string
	}{
		{"customers.csv", func() [][]string { return customerRows(rng, *numCustomers) }},
		{"transactions.csv", func() [][]string { return transactionRows(rng, *numCustomers, *numTransactions) }},
		{"events.csv", func() [][]string { return eventRows(rng, *numCustomers, *numEvents) }},
		{"products.csv", func() [][]string { return productRows(rng, *numProducts) }},
	}
	for _, file := range files {
		path := filepath.Join(*outDir, file.name)
		rows := file.rows()
		if err := writeCSV(path, rows); err != nil {
			logg.Error(logg.WithField(ctx, "file", path), "failed to write csv", err)
			os.Exit(1)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"file": path, "rows": len(rows) - 1}), "dataset written")
	}
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

// pickWeighted selects an option by integer weight out of 100.
func pickWeighted(rng *rand.Rand, options []string, weights []int) string {
	roll := rng.Intn(100)
	var cumulative int
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// money formats a uniform amount in [min,max) with cent precision.
func money(rng *rand.Rand, min, max float64) string {
	raw := min + rng.Float64()*(max-min)
	return decimal.NewFromFloat(raw).Round(2).String()
}

func customerRows(rng *rand.Rand, count int) [][]string {
	rows := [][]string{{
		"customer_id", "first_name", "last_name", "email", "phone",
		"registration_date", "age", "city", "state", "segment", "is_active",
	}}
	firstNames := []string{"John", "Jane", "Mike", "Sarah", "David", "Emma", "Chris", "Lisa"}
	lastNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	cities := []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego"}
	states := []string{"CA", "TX", "NY", "FL", "IL", "PA", "OH", "GA"}
	segments := []string{"Bronze", "Silver", "Gold", "Platinum"}

	for i := 1; i <= count; i++ {
		registered := now.AddDate(0, 0, -(1 + rng.Intn(365)))
		rows = append(rows, []string{
			fmt.Sprintf("CUST_%06d", i),
			pick(rng, firstNames),
			pick(rng, lastNames),
			fmt.Sprintf("customer%d@email.com", i),
			fmt.Sprintf("+1%010d", 1000000000+rng.Int63n(9000000000)),
			registered.Format("2006-01-02"),
			strconv.Itoa(18 + rng.Intn(63)),
			pick(rng, cities),
			pick(rng, states),
			pick(rng, segments),
			pickWeighted(rng, []string{"true", "false"}, []int{80, 20}),
		})
	}
	return rows
}

func transactionRows(rng *rand.Rand, customers, count int) [][]string {
	rows := [][]string{{
		"transaction_id", "customer_id", "transaction_date", "amount", "currency",
		"transaction_type", "merchant", "category", "payment_method", "status",
	}}
	merchants := []string{"Amazon", "Walmart", "Target", "Best Buy", "Costco", "Home Depot", "Starbucks", "McDonald's"}
	categories := []string{"retail", "food", "entertainment", "utilities", "healthcare", "transportation"}
	types := []string{"purchase", "refund", "transfer", "deposit"}
	methods := []string{"credit_card", "debit_card", "paypal", "bank_transfer"}

	for i := 1; i <= count; i++ {
		occurred := now.AddDate(0, 0, -rng.Intn(366)).Add(-time.Duration(rng.Intn(86400)) * time.Second)
		rows = append(rows, []string{
			fmt.Sprintf("TXN_%08d", i),
			fmt.Sprintf("CUST_%06d", 1+rng.Intn(customers)),
			occurred.Format("2006-01-02 15:04:05"),
			money(rng, 10, 1000),
			pickWeighted(rng, []string{"USD", "EUR", "GBP"}, []int{70, 20, 10}),
			pick(rng, types),
			pick(rng, merchants),
			pick(rng, categories),
			pick(rng, methods),
			pickWeighted(rng, []string{"completed", "pending", "failed"}, []int{85, 10, 5}),
		})
	}
	return rows
}

func eventRows(rng *rand.Rand, customers, count int) [][]string {
	rows := [][]string{{
		"event_id", "customer_id", "timestamp", "event_type", "page_url",
		"session_id", "device_type", "browser", "ip_address", "user_agent",
	}}
	eventTypes := []string{"login", "logout", "page_view", "click", "purchase_start", "purchase_complete", "search"}
	browsers := []string{"Chrome", "Firefox", "Safari", "Edge"}

	for i := 1; i <= count; i++ {
		occurred := now.AddDate(0, 0, -rng.Intn(91)).Add(-time.Duration(rng.Intn(86400)) * time.Second)
		rows = append(rows, []string{
			fmt.Sprintf("EVT_%08d", i),
			fmt.Sprintf("CUST_%06d", 1+rng.Intn(customers)),
			occurred.Format("2006-01-02 15:04:05"),
			pick(rng, eventTypes),
			fmt.Sprintf("/page/%d", 1+rng.Intn(50)),
			fmt.Sprintf("SESS_%06d", 1+rng.Intn(2000)),
			pickWeighted(rng, []string{"desktop", "mobile", "tablet"}, []int{50, 40, 10}),
			pick(rng, browsers),
			fmt.Sprintf("%d.%d.%d.%d", 1+rng.Intn(255), 1+rng.Intn(255), 1+rng.Intn(255), 1+rng.Intn(255)),
			"Mozilla/5.0 (compatible)",
		})
	}
	return rows
}

func productRows(rng *rand.Rand, count int) [][]string {
	rows := [][]string{{
		"product_id", "name", "category", "subcategory", "price", "cost",
		"stock_quantity", "supplier", "created_date", "is_active", "weight_kg", "dimensions",
	}}
	categories := []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books", "Health & Beauty"}

	for i := 1; i <= count; i++ {
		category := pick(rng, categories)
		created := now.AddDate(0, 0, -(30 + rng.Intn(701)))
		rows = append(rows, []string{
			fmt.Sprintf("PROD_%06d", i),
			fmt.Sprintf("%s Product %d", category, i),
			category,
			fmt.Sprintf("%s Sub %d", category, 1+rng.Intn(5)),
			money(rng, 10, 500),
			money(rng, 5, 300),
			strconv.Itoa(rng.Intn(1001)),
			fmt.Sprintf("Supplier %d", 1+rng.Intn(20)),
			created.Format("2006-01-02"),
			pickWeighted(rng, []string{"true", "false"}, []int{90, 10}),
			money(rng, 0.1, 10),
			fmt.Sprintf("%dx%dx%d cm", 10+rng.Intn(41), 10+rng.Intn(41), 5+rng.Intn(16)),
		})
	}
	return rows
}
