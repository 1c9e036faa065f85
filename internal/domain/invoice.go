package domain

import (
	"context"
	"time"
)

// Invoice statuses are stored uppercase; the API accepts lowercase and
// normalizes on ingestion.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusPaid
}

type Invoice struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customerId"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	Amount     int64     `gorm:"not null" json:"amount"` // minor units (cents)
	Status     string    `gorm:"size:16;index;not null" json:"status"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	CreatedAt  time.Time `json:"-"`
}

func (Invoice) TableName() string { return "invoices" }

// StatusTotals holds the grouped invoice sums per status, minor units.
type StatusTotals struct {
	Paid    int64
	Pending int64
}

// MonthRevenue is one date bucket of the revenue chart, derived by
// grouping invoice amounts by month.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

type InvoiceRepository interface {
	// FindLatest returns the n most recently dated invoices with their
	// customer preloaded.
	FindLatest(ctx context.Context, n int) ([]Invoice, error)
	// FindFiltered applies the search filter as a logical OR, ordered by
	// date descending, with limit/offset paging.
	FindFiltered(ctx context.Context, f SearchFilter, limit, offset int) ([]Invoice, error)
	CountFiltered(ctx context.Context, f SearchFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	Count(ctx context.Context) (int64, error)
	SumByStatus(ctx context.Context) (StatusTotals, error)
	GroupByMonth(ctx context.Context) ([]MonthRevenue, error)
	Create(ctx context.Context, inv *Invoice) error
}
