package dataset

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository loads the snapshot entities from the relational store.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to snapshot loading.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load reads all four entity tables into a fresh snapshot. Rows are ordered
// by primary key so repeated loads of the same data produce identical
// snapshots.
func (r *Repository) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: time.Now().UTC()}

	if err := r.db.WithContext(ctx).Order("customer_id").Find(&snap.Customers).Error; err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("transaction_id").Find(&snap.Transactions).Error; err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("event_id").Find(&snap.Events).Error; err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("product_id").Find(&snap.Products).Error; err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	return snap, nil
}
