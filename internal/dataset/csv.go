package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
	"github.com/datapulse/dataplatform-backend/pkg/enums"
)

const (
	customersFile    = "customers.csv"
	transactionsFile = "transactions.csv"
	eventsFile       = "events.csv"
	productsFile     = "products.csv"
)

var csvTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// LoadDir builds a snapshot from the CSV exports in dir. Missing files are
// skipped; if no file is present at all the load fails. Malformed rows are
// collected and returned as one combined error so the caller sees every bad
// row in a single pass.
func LoadDir(dir string) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: time.Now().UTC()}
	found := false

	if rows, err := readCSV(filepath.Join(dir, customersFile), parseCustomer); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", customersFile, err)
		}
	} else {
		snap.Customers = rows
		found = true
	}

	if rows, err := readCSV(filepath.Join(dir, transactionsFile), parseTransaction); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", transactionsFile, err)
		}
	} else {
		snap.Transactions = rows
		found = true
	}

	if rows, err := readCSV(filepath.Join(dir, eventsFile), parseEvent); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", eventsFile, err)
		}
	} else {
		snap.Events = rows
		found = true
	}

	if rows, err := readCSV(filepath.Join(dir, productsFile), parseProduct); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", productsFile, err)
		}
	} else {
		snap.Products = rows
		found = true
	}

	if !found {
		return nil, fmt.Errorf("no data files found in %s", dir)
	}
	return snap, nil
}

type record struct {
	byHeader map[string]int
	fields   []string
}

func (r record) get(column string) string {
	idx, ok := r.byHeader[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func readCSV[T any](path string, parse func(record) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	byHeader := make(map[string]int, len(header))
	for i, name := range header {
		byHeader[strings.TrimSpace(name)] = i
	}

	var rows []T
	var errs error
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		row, err := parse(record{byHeader: byHeader, fields: fields})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		rows = append(rows, row)
	}
	if errs != nil {
		return nil, errs
	}
	return rows, nil
}

func parseCustomer(rec record) (models.Customer, error) {
	registered, err := parseTime(rec.get("registration_date"))
	if err != nil {
		return models.Customer{}, fmt.Errorf("registration_date: %w", err)
	}
	customer := models.Customer{
		CustomerID:       rec.get("customer_id"),
		FirstName:        rec.get("first_name"),
		LastName:         rec.get("last_name"),
		Email:            rec.get("email"),
		Phone:            rec.get("phone"),
		RegistrationDate: registered,
		City:             rec.get("city"),
		State:            rec.get("state"),
		Segment:          rec.get("segment"),
		IsActive:         parseBool(rec.get("is_active")),
	}
	if customer.CustomerID == "" {
		return models.Customer{}, fmt.Errorf("customer_id is required")
	}
	if raw := rec.get("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return models.Customer{}, fmt.Errorf("age: %w", err)
		}
		customer.Age = &age
	}
	return customer, nil
}

func parseTransaction(rec record) (models.Transaction, error) {
	occurred, err := parseTime(rec.get("transaction_date"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction_date: %w", err)
	}
	amount, err := decimal.NewFromString(rec.get("amount"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	txn := models.Transaction{
		TransactionID:   rec.get("transaction_id"),
		CustomerID:      rec.get("customer_id"),
		TransactionDate: occurred,
		Amount:          amount.InexactFloat64(),
		Currency:        rec.get("currency"),
		TransactionType: rec.get("transaction_type"),
		Merchant:        rec.get("merchant"),
		Category:        rec.get("category"),
		PaymentMethod:   rec.get("payment_method"),
		Status:          enums.TransactionStatus(rec.get("status")),
	}
	if txn.TransactionID == "" {
		return models.Transaction{}, fmt.Errorf("transaction_id is required")
	}
	return txn, nil
}

func parseEvent(rec record) (models.Event, error) {
	occurred, err := parseTime(rec.get("timestamp"))
	if err != nil {
		return models.Event{}, fmt.Errorf("timestamp: %w", err)
	}
	event := models.Event{
		EventID:    rec.get("event_id"),
		CustomerID: rec.get("customer_id"),
		Timestamp:  occurred,
		EventType:  rec.get("event_type"),
		PageURL:    rec.get("page_url"),
		SessionID:  rec.get("session_id"),
		DeviceType: rec.get("device_type"),
		Browser:    rec.get("browser"),
		IPAddress:  rec.get("ip_address"),
		UserAgent:  rec.get("user_agent"),
	}
	if event.EventID == "" {
		return models.Event{}, fmt.Errorf("event_id is required")
	}
	return event, nil
}

func parseProduct(rec record) (models.Product, error) {
	created, err := parseTime(rec.get("created_date"))
	if err != nil {
		return models.Product{}, fmt.Errorf("created_date: %w", err)
	}
	price, err := decimal.NewFromString(rec.get("price"))
	if err != nil {
		return models.Product{}, fmt.Errorf("price: %w", err)
	}
	cost, err := decimal.NewFromString(rec.get("cost"))
	if err != nil {
		return models.Product{}, fmt.Errorf("cost: %w", err)
	}
	product := models.Product{
		ProductID:   rec.get("product_id"),
		Name:        rec.get("name"),
		Category:    rec.get("category"),
		Subcategory: rec.get("subcategory"),
		Price:       price.InexactFloat64(),
		Cost:        cost.InexactFloat64(),
		Supplier:    rec.get("supplier"),
		CreatedDate: created,
		IsActive:    parseBool(rec.get("is_active")),
		Dimensions:  rec.get("dimensions"),
	}
	if product.ProductID == "" {
		return models.Product{}, fmt.Errorf("product_id is required")
	}
	if raw := rec.get("stock_quantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return models.Product{}, fmt.Errorf("stock_quantity: %w", err)
		}
		product.StockQuantity = qty
	}
	if raw := rec.get("weight_kg"); raw != "" {
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("weight_kg: %w", err)
		}
		product.WeightKG = weight
	}
	return product, nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	for _, layout := range csvTimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	}
	return false
}
