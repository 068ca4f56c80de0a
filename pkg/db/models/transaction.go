package models

import (
	"time"

	"github.com/datapulse/dataplatform-backend/pkg/enums"
)

// Transaction represents a single purchase, refund, or transfer row.
// CustomerID is a soft reference; orphan ids are valid data and the
// analytics engine must tolerate them. Amount is signed: refunds are
// negative and must not be dropped.
type Transaction struct {
	TransactionID   string                  `gorm:"column:transaction_id;primaryKey" json:"transaction_id"`
	CustomerID      string                  `gorm:"column:customer_id;index" json:"customer_id"`
	TransactionDate time.Time               `gorm:"column:transaction_date;index" json:"transaction_date"`
	Amount          float64                 `gorm:"column:amount;index" json:"amount"`
	Currency        string                  `gorm:"column:currency" json:"currency"`
	TransactionType string                  `gorm:"column:transaction_type" json:"transaction_type"`
	Merchant        string                  `gorm:"column:merchant" json:"merchant"`
	Category        string                  `gorm:"column:category" json:"category"`
	PaymentMethod   string                  `gorm:"column:payment_method" json:"payment_method"`
	Status          enums.TransactionStatus `gorm:"column:status" json:"status"`
}

// TableName overrides GORM's pluralization.
func (Transaction) TableName() string { return "transactions" }
