package customers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/pkg/utils"
)

type Service struct {
	customers domain.CustomerRepository
	log       *zap.Logger
}

func NewService(cust domain.CustomerRepository, log *zap.Logger) *Service {
	return &Service{customers: cust, log: log}
}

// Field is the id/name/email/image projection used to populate the
// customer picker on the invoice form.
type Field struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
}

func (s *Service) All(ctx context.Context) ([]Field, error) {
	cs, err := s.customers.FindAll(ctx)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch all customers")
	}
	out := make([]Field, 0, len(cs))
	for _, c := range cs {
		out = append(out, Field{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL})
	}
	return out, nil
}

// Filtered returns the customers table: every customer whose name or
// email contains the query, with invoice counts and pending/paid sums
// formatted for display.
func (s *Service) Filtered(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	rows, err := s.customers.FindFiltered(ctx, query)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch customer table")
	}
	out := make([]domain.CustomerSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CustomerSummary{
			ID:            r.ID,
			Name:          r.Name,
			Email:         r.Email,
			ImageURL:      r.ImageURL,
			TotalInvoices: r.TotalInvoices,
			TotalPending:  utils.FormatCurrency(r.TotalPending),
			TotalPaid:     utils.FormatCurrency(r.TotalPaid),
		})
	}
	return out, nil
}
