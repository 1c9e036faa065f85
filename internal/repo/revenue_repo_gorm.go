package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-invoice-dashboard/internal/domain"
)

type RevenueRepo struct{ db *gorm.DB }

func NewRevenueRepo(db *gorm.DB) *RevenueRepo { return &RevenueRepo{db: db} }

func (r *RevenueRepo) FindAll(ctx context.Context) ([]domain.Revenue, error) {
	var rows []domain.Revenue
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *RevenueRepo) Upsert(ctx context.Context, rev *domain.Revenue) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"revenue"}),
		}).
		Create(rev).Error
}
