package dataset

import (
	"time"

	"github.com/datapulse/dataplatform-backend/pkg/db/models"
)

// Snapshot is the immutable in-memory view of the tabular entities that every
// analyzer reads. It is built once at startup and never mutated afterwards, so
// it is safe to share across concurrent requests without locking.
type Snapshot struct {
	Customers    []models.Customer
	Transactions []models.Transaction
	Events       []models.Event
	Products     []models.Product
	LoadedAt     time.Time
}

// Counts summarizes row counts per entity for the status endpoint.
type Counts struct {
	Customers    int `json:"customers"`
	Transactions int `json:"transactions"`
	Events       int `json:"events"`
	Products     int `json:"products"`
}

// Counts returns the per-entity row counts. Safe on a nil snapshot.
func (s *Snapshot) Counts() Counts {
	if s == nil {
		return Counts{}
	}
	return Counts{
		Customers:    len(s.Customers),
		Transactions: len(s.Transactions),
		Events:       len(s.Events),
		Products:     len(s.Products),
	}
}

// Provider hands out the current snapshot; a nil snapshot means the data
// source never loaded.
type Provider interface {
	Snapshot() *Snapshot
}

// Static is a Provider over a snapshot fixed at construction time.
type Static struct {
	snapshot *Snapshot
}

// NewStatic wraps an already-loaded snapshot. snap may be nil when loading
// failed; analyzers will then fail fast with a dependency error.
func NewStatic(snap *Snapshot) *Static {
	return &Static{snapshot: snap}
}

// Snapshot implements Provider.
func (s *Static) Snapshot() *Snapshot {
	if s == nil {
		return nil
	}
	return s.snapshot
}
