package domain

import (
	"context"
	"time"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	ImageURL  string    `gorm:"size:255" json:"imageUrl"`
	CreatedAt time.Time `json:"-"`
}

func (Customer) TableName() string { return "customers" }

// CustomerSummary is a customers-table row with per-customer invoice
// totals, pending/paid sums formatted for display.
type CustomerSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"imageUrl"`
	TotalInvoices int64  `json:"totalInvoices"`
	TotalPending  string `json:"totalPending"`
	TotalPaid     string `json:"totalPaid"`
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindAll(ctx context.Context) ([]Customer, error)
	FindFiltered(ctx context.Context, query string) ([]CustomerTotalsRow, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, c *Customer) error
}

// CustomerTotalsRow is the raw aggregate row behind CustomerSummary,
// sums still in minor units.
type CustomerTotalsRow struct {
	ID            uint
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}
