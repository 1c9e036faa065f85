package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-invoice-dashboard/internal/domain"
)

type InvoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepo(db *gorm.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

func (r *InvoiceRepo) FindLatest(ctx context.Context, n int) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("date DESC").
		Limit(n).
		Find(&invs).Error
	return invs, err
}

// filterScope translates the parsed search filter into a single OR
// clause over the invoice/customer join. Absent predicates contribute
// no SQL at all.
func filterScope(f domain.SearchFilter) func(*gorm.DB) *gorm.DB {
	like := "%" + strings.ToLower(f.Text) + "%"
	conds := []string{
		"LOWER(customers.name) LIKE ?",
		"LOWER(customers.email) LIKE ?",
	}
	args := []any{like, like}
	if f.Amount != nil {
		conds = append(conds, "invoices.amount = ?")
		args = append(args, *f.Amount)
	}
	if f.Date != nil {
		conds = append(conds, "invoices.date = ?")
		args = append(args, *f.Date)
	}
	if f.Status != nil {
		conds = append(conds, "invoices.status = ?")
		args = append(args, *f.Status)
	}
	where := strings.Join(conds, " OR ")
	return func(q *gorm.DB) *gorm.DB {
		return q.
			Joins("JOIN customers ON customers.id = invoices.customer_id").
			Where(where, args...)
	}
}

func (r *InvoiceRepo) FindFiltered(ctx context.Context, f domain.SearchFilter, limit, offset int) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Scopes(filterScope(f)).
		Preload("Customer").
		Order("invoices.date DESC").
		Limit(limit).
		Offset(offset).
		Find(&invs).Error
	return invs, err
}

func (r *InvoiceRepo) CountFiltered(ctx context.Context, f domain.SearchFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Scopes(filterScope(f)).
		Count(&total).Error
	return total, err
}

func (r *InvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).Preload("Customer").First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).Count(&total).Error
	return total, err
}

func (r *InvoiceRepo) SumByStatus(ctx context.Context) (domain.StatusTotals, error) {
	var row struct {
		Paid    int64
		Pending int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS paid, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS pending",
			domain.StatusPaid, domain.StatusPending,
		).
		Scan(&row).Error
	return domain.StatusTotals{Paid: row.Paid, Pending: row.Pending}, err
}

func (r *InvoiceRepo) GroupByMonth(ctx context.Context) ([]domain.MonthRevenue, error) {
	monthExpr := "EXTRACT(MONTH FROM date)"
	if r.db.Dialector.Name() == "mysql" {
		monthExpr = "MONTH(date)"
	}
	var rows []struct {
		M       int
		Revenue int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select(fmt.Sprintf("%s AS m, COALESCE(SUM(amount), 0) AS revenue", monthExpr)).
		Group("m").
		Order("m").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.MonthRevenue, 0, len(rows))
	for _, row := range rows {
		if row.M < 1 || row.M > 12 {
			continue
		}
		out = append(out, domain.MonthRevenue{
			Month:   time.Month(row.M).String()[:3],
			Revenue: row.Revenue,
		})
	}
	return out, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}
