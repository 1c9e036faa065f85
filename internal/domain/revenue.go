package domain

import "context"

// Revenue is the pre-aggregated monthly revenue table backing the
// dashboard chart. Amounts in minor units.
type Revenue struct {
	Month   string `gorm:"primaryKey;size:4" json:"month"` // "Jan".."Dec"
	Revenue int64  `gorm:"not null" json:"revenue"`
}

func (Revenue) TableName() string { return "revenue" }

type RevenueRepository interface {
	FindAll(ctx context.Context) ([]Revenue, error)
	Upsert(ctx context.Context, r *Revenue) error
}
