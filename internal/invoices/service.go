package invoices

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-invoice-dashboard/internal/core/cache"
	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/pkg/utils"
)

// ItemsPerPage is the fixed invoices-table page size.
const ItemsPerPage = 6

const cardDataTTL = 30 * time.Second

var ErrCustomerNotFound = errors.New("customer not found")

type Service struct {
	invoices  domain.InvoiceRepository
	customers domain.CustomerRepository
	revenue   domain.RevenueRepository
	cache     *cache.Cache // nil disables read-through caching
	log       *zap.Logger
	now       func() time.Time
}

func NewService(inv domain.InvoiceRepository, cust domain.CustomerRepository, rev domain.RevenueRepository, c *cache.Cache, log *zap.Logger) *Service {
	return &Service{
		invoices:  inv,
		customers: cust,
		revenue:   rev,
		cache:     c,
		log:       log,
		now:       time.Now,
	}
}

// LatestInvoice is a dashboard row: the invoice joined with its
// customer, amount already formatted for display.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
	Amount   string `json:"amount"`
}

// Latest returns the 5 most recently dated invoices.
func (s *Service) Latest(ctx context.Context) ([]LatestInvoice, error) {
	invs, err := s.invoices.FindLatest(ctx, 5)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch the latest invoices")
	}
	out := make([]LatestInvoice, 0, len(invs))
	for _, inv := range invs {
		out = append(out, LatestInvoice{
			ID:       inv.ID,
			Name:     inv.Customer.Name,
			Email:    inv.Customer.Email,
			ImageURL: inv.Customer.ImageURL,
			Amount:   utils.FormatCurrency(inv.Amount),
		})
	}
	return out, nil
}

// CardData are the four dashboard cards.
type CardData struct {
	NumberOfInvoices     int64  `json:"numberOfInvoices"`
	NumberOfCustomers    int64  `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// Cards computes the dashboard card metrics. The three reads are
// independent siblings; they are issued concurrently and are not
// required to be transactionally consistent with each other.
func (s *Service) Cards(ctx context.Context) (*CardData, error) {
	if s.cache == nil {
		return s.loadCards(ctx)
	}
	return cache.GetOrLoadJSON[CardData](s.cache, ctx, "dashboard:cards", cardDataTTL, s.loadCards)
}

func (s *Service) loadCards(ctx context.Context) (*CardData, error) {
	var (
		invoiceCount  int64
		customerCount int64
		totals        domain.StatusTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoiceCount, err = s.invoices.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		customerCount, err = s.customers.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		totals, err = s.invoices.SumByStatus(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch card data")
	}
	return &CardData{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    utils.FormatCurrency(totals.Paid),
		TotalPendingInvoices: utils.FormatCurrency(totals.Pending),
	}, nil
}

// TableRow is one row of the invoices table. Amount stays in minor
// units; the frontend formats it.
type TableRow struct {
	ID         string    `json:"id"`
	CustomerID uint      `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ImageURL   string    `json:"imageUrl"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	Date       time.Time `json:"date"`
}

// Filtered returns one page (6 rows) of invoices matching the search
// query, newest first. Page numbers are 1-based. An empty query matches
// every invoice.
func (s *Service) Filtered(ctx context.Context, query string, page int) ([]TableRow, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * ItemsPerPage
	f := domain.ParseSearchFilter(query)
	invs, err := s.invoices.FindFiltered(ctx, f, ItemsPerPage, offset)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch invoices")
	}
	rows := make([]TableRow, 0, len(invs))
	for _, inv := range invs {
		rows = append(rows, TableRow{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Name:       inv.Customer.Name,
			Email:      inv.Customer.Email,
			ImageURL:   inv.Customer.ImageURL,
			Amount:     inv.Amount,
			Status:     inv.Status,
			Date:       inv.Date,
		})
	}
	return rows, nil
}

// Pages returns the number of pages the search query spans.
func (s *Service) Pages(ctx context.Context, query string) (int, error) {
	f := domain.ParseSearchFilter(query)
	total, err := s.invoices.CountFiltered(ctx, f)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return 0, errors.New("failed to fetch total number of invoices")
	}
	return int(math.Ceil(float64(total) / float64(ItemsPerPage))), nil
}

// Detail is a single invoice with the amount converted back to major
// units for the edit form.
type Detail struct {
	ID         string    `json:"id"`
	CustomerID uint      `json:"customerId"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	Date       time.Time `json:"date"`
}

// ByID returns the invoice with the given id, or nil if none exists.
func (s *Service) ByID(ctx context.Context, id string) (*Detail, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch invoice")
	}
	if inv == nil {
		return nil, nil
	}
	return &Detail{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     utils.CentsToDollars(inv.Amount),
		Status:     inv.Status,
		Date:       inv.Date,
	}, nil
}

// Revenue returns the monthly revenue chart rows. The pre-aggregated
// revenue table wins when it has data; otherwise the chart is derived
// by grouping invoice amounts by month.
func (s *Service) Revenue(ctx context.Context) ([]domain.MonthRevenue, error) {
	rows, err := s.revenue.FindAll(ctx)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch revenue data")
	}
	if len(rows) > 0 {
		out := make([]domain.MonthRevenue, 0, len(rows))
		for _, r := range rows {
			out = append(out, domain.MonthRevenue{Month: r.Month, Revenue: r.Revenue})
		}
		return out, nil
	}
	derived, err := s.invoices.GroupByMonth(ctx)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, errors.New("failed to fetch revenue data")
	}
	return derived, nil
}

// CreateInput is a validated invoice payload. Amount is in major units;
// Date is carried through from the request but the stored issue date is
// server time (see Create).
type CreateInput struct {
	CustomerID uint
	Amount     float64
	Status     string // already normalized to the stored (uppercase) form
	Date       string
}

// Create checks the customer exists, then inserts the invoice stamped
// with the current server time. The accepted Date field is ignored on
// purpose, mirroring the upstream behavior; see DESIGN.md. The
// existence check and the insert are not one transaction, so a customer
// deleted in between can still slip through to a foreign-key error.
func (s *Service) Create(ctx context.Context, in CreateInput) error {
	customer, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return fmt.Errorf("failed to fetch customer: %w", err)
	}
	if customer == nil {
		return ErrCustomerNotFound
	}

	inv := &domain.Invoice{
		ID:         utils.NewID(),
		CustomerID: in.CustomerID,
		Amount:     utils.DollarsToCents(in.Amount),
		Status:     in.Status,
		Date:       s.now(),
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		s.log.Error("failed to create invoice", zap.Error(err))
		return err
	}
	return nil
}
