package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-invoice-dashboard/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) FindAll(ctx context.Context) ([]domain.Customer, error) {
	var cs []domain.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cs).Error
	return cs, err
}

func (r *CustomerRepo) FindFiltered(ctx context.Context, query string) ([]domain.CustomerTotalsRow, error) {
	like := "%" + strings.ToLower(query) + "%"
	var rows []domain.CustomerTotalsRow
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Select(
			"customers.id, customers.name, customers.email, customers.image_url, "+
				"COUNT(invoices.id) AS total_invoices, "+
				"COALESCE(SUM(CASE WHEN invoices.status = ? THEN invoices.amount ELSE 0 END), 0) AS total_pending, "+
				"COALESCE(SUM(CASE WHEN invoices.status = ? THEN invoices.amount ELSE 0 END), 0) AS total_paid",
			domain.StatusPending, domain.StatusPaid,
		).
		Joins("LEFT JOIN invoices ON invoices.customer_id = customers.id").
		Where("LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ?", like, like).
		Group("customers.id, customers.name, customers.email, customers.image_url").
		Order("customers.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&total).Error
	return total, err
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}
