package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.csv",
		"customer_id,first_name,last_name,email,registration_date,age,is_active\n"+
			"CUST_0001,Ana,Reyes,ana@example.com,2023-05-01 10:30:00,34,True\n"+
			"CUST_0002,Ben,Okafor,ben@example.com,2024-01-15,,False\n")
	writeFile(t, dir, "transactions.csv",
		"transaction_id,customer_id,transaction_date,amount,currency,status\n"+
			"TXN_000001,CUST_0001,2024-02-01 09:00:00,125.40,USD,completed\n"+
			"TXN_000002,CUST_0001,2024-02-03 14:12:00,-30.00,USD,completed\n")
	writeFile(t, dir, "events.csv",
		"event_id,customer_id,timestamp,event_type\n"+
			"EVT_000001,CUST_0002,2024-02-01 09:05:00,page_view\n")
	writeFile(t, dir, "products.csv",
		"product_id,name,category,price,cost,stock_quantity,created_date,is_active,weight_kg\n"+
			"PROD_0001,Widget,Electronics,19.99,7.50,120,2022-11-20,true,0.25\n")

	snap, err := LoadDir(dir)
	require.NoError(t, err)

	counts := snap.Counts()
	assert.Equal(t, 1, counts.Events)
	assert.Equal(t, 1, counts.Products)

	require.Len(t, snap.Customers, 2)
	first := snap.Customers[0]
	assert.Equal(t, "CUST_0001", first.CustomerID)
	require.NotNil(t, first.Age)
	assert.Equal(t, 34, *first.Age)
	assert.True(t, first.IsActive)
	assert.Equal(t, 2023, first.RegistrationDate.Year())
	assert.Nil(t, snap.Customers[1].Age)
	assert.False(t, snap.Customers[1].IsActive)

	require.Len(t, snap.Transactions, 2)
	assert.InDelta(t, 125.40, snap.Transactions[0].Amount, 1e-9)
	assert.InDelta(t, -30.00, snap.Transactions[1].Amount, 1e-9)
}

func TestLoadDirSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "transactions.csv",
		"transaction_id,customer_id,transaction_date,amount,status\n"+
			"TXN_000001,CUST_0001,2024-02-01,50.00,completed\n")

	snap, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, snap.Customers)
	assert.Len(t, snap.Transactions, 1)
}

func TestLoadDirEmptyDirFails(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data files")
}

func TestLoadDirCollectsRowErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "transactions.csv",
		"transaction_id,customer_id,transaction_date,amount,status\n"+
			"TXN_000001,CUST_0001,2024-02-01,not-a-number,completed\n"+
			"TXN_000002,CUST_0001,never,10.00,completed\n"+
			"TXN_000003,CUST_0001,2024-02-02,10.00,completed\n")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(errors.Unwrap(err)), 2)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadDirUnknownColumnsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.csv",
		"customer_id,registration_date,loyalty_points\n"+
			"CUST_0001,2024-01-01,999\n")

	snap, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "CUST_0001", snap.Customers[0].CustomerID)
}
