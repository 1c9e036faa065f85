package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-invoice-dashboard/internal/domain"
)

type fakeInvoiceRepo struct {
	latest        []domain.Invoice
	lastLatestN   int
	filtered      []domain.Invoice
	lastFilter    domain.SearchFilter
	lastLimit     int
	lastOffset    int
	countFiltered int64
	byID          *domain.Invoice
	count         int64
	totals        domain.StatusTotals
	months        []domain.MonthRevenue
	created       []*domain.Invoice
	err           error
}

func (f *fakeInvoiceRepo) FindLatest(_ context.Context, n int) ([]domain.Invoice, error) {
	f.lastLatestN = n
	return f.latest, f.err
}

func (f *fakeInvoiceRepo) FindFiltered(_ context.Context, fl domain.SearchFilter, limit, offset int) ([]domain.Invoice, error) {
	f.lastFilter, f.lastLimit, f.lastOffset = fl, limit, offset
	return f.filtered, f.err
}

func (f *fakeInvoiceRepo) CountFiltered(_ context.Context, fl domain.SearchFilter) (int64, error) {
	f.lastFilter = fl
	return f.countFiltered, f.err
}

func (f *fakeInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	return f.byID, f.err
}

func (f *fakeInvoiceRepo) Count(_ context.Context) (int64, error) { return f.count, f.err }

func (f *fakeInvoiceRepo) SumByStatus(_ context.Context) (domain.StatusTotals, error) {
	return f.totals, f.err
}

func (f *fakeInvoiceRepo) GroupByMonth(_ context.Context) ([]domain.MonthRevenue, error) {
	return f.months, f.err
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, inv)
	return nil
}

type fakeCustomerRepo struct {
	byID  map[uint]*domain.Customer
	all   []domain.Customer
	rows  []domain.CustomerTotalsRow
	count int64
	err   error
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uint) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeCustomerRepo) FindAll(_ context.Context) ([]domain.Customer, error) {
	return f.all, f.err
}

func (f *fakeCustomerRepo) FindFiltered(_ context.Context, _ string) ([]domain.CustomerTotalsRow, error) {
	return f.rows, f.err
}

func (f *fakeCustomerRepo) Count(_ context.Context) (int64, error) { return f.count, f.err }

func (f *fakeCustomerRepo) Create(_ context.Context, _ *domain.Customer) error { return f.err }

type fakeRevenueRepo struct {
	rows []domain.Revenue
	err  error
}

func (f *fakeRevenueRepo) FindAll(_ context.Context) ([]domain.Revenue, error) {
	return f.rows, f.err
}

func (f *fakeRevenueRepo) Upsert(_ context.Context, _ *domain.Revenue) error { return f.err }

func newTestService(inv *fakeInvoiceRepo, cust *fakeCustomerRepo, rev *fakeRevenueRepo) *Service {
	if inv == nil {
		inv = &fakeInvoiceRepo{}
	}
	if cust == nil {
		cust = &fakeCustomerRepo{}
	}
	if rev == nil {
		rev = &fakeRevenueRepo{}
	}
	return NewService(inv, cust, rev, nil, zap.NewNop())
}

func TestLatestFormatsAmounts(t *testing.T) {
	inv := &fakeInvoiceRepo{latest: []domain.Invoice{
		{ID: "a", Amount: 123456, Customer: domain.Customer{Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/amy.png"}},
		{ID: "b", Amount: 50, Customer: domain.Customer{Name: "Lee Robinson", Email: "lee@robinson.com"}},
	}}
	s := newTestService(inv, nil, nil)

	out, err := s.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, inv.lastLatestN)
	require.Len(t, out, 2)
	assert.Equal(t, "$1,234.56", out[0].Amount)
	assert.Equal(t, "Amy Burns", out[0].Name)
	assert.Equal(t, "$0.50", out[1].Amount)
}

func TestLatestWrapsDatabaseError(t *testing.T) {
	s := newTestService(&fakeInvoiceRepo{err: errors.New("conn refused")}, nil, nil)

	_, err := s.Latest(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "failed to fetch the latest invoices")
	assert.NotContains(t, err.Error(), "conn refused")
}

func TestCards(t *testing.T) {
	inv := &fakeInvoiceRepo{count: 14, totals: domain.StatusTotals{Paid: 385000, Pending: 92000}}
	cust := &fakeCustomerRepo{count: 6}
	s := newTestService(inv, cust, nil)

	cards, err := s.Cards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(14), cards.NumberOfInvoices)
	assert.Equal(t, int64(6), cards.NumberOfCustomers)
	assert.Equal(t, "$3,850.00", cards.TotalPaidInvoices)
	assert.Equal(t, "$920.00", cards.TotalPendingInvoices)
}

func TestCardsSurfacesGenericError(t *testing.T) {
	s := newTestService(&fakeInvoiceRepo{err: errors.New("boom")}, nil, nil)
	_, err := s.Cards(context.Background())
	assert.EqualError(t, err, "failed to fetch card data")
}

func TestFilteredPaging(t *testing.T) {
	inv := &fakeInvoiceRepo{}
	s := newTestService(inv, nil, nil)

	_, err := s.Filtered(context.Background(), "delba", 3)
	require.NoError(t, err)
	assert.Equal(t, ItemsPerPage, inv.lastLimit)
	assert.Equal(t, 12, inv.lastOffset)
	assert.Equal(t, "delba", inv.lastFilter.Text)

	// page numbers below 1 clamp to the first page
	_, err = s.Filtered(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.lastOffset)
}

func TestPagesCeil(t *testing.T) {
	cases := map[int64]int{0: 0, 1: 1, 6: 1, 7: 2, 13: 3}
	for total, want := range cases {
		s := newTestService(&fakeInvoiceRepo{countFiltered: total}, nil, nil)
		got, err := s.Pages(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, want, got, "total=%d", total)
	}
}

func TestByID(t *testing.T) {
	inv := &fakeInvoiceRepo{byID: &domain.Invoice{ID: "x", CustomerID: 2, Amount: 15050, Status: domain.StatusPaid}}
	s := newTestService(inv, nil, nil)

	d, err := s.ByID(context.Background(), "x")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 150.5, d.Amount)
	assert.Equal(t, uint(2), d.CustomerID)
}

func TestByIDAbsent(t *testing.T) {
	s := newTestService(&fakeInvoiceRepo{}, nil, nil)
	d, err := s.ByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestCreateUnknownCustomer(t *testing.T) {
	inv := &fakeInvoiceRepo{}
	s := newTestService(inv, &fakeCustomerRepo{byID: map[uint]*domain.Customer{}}, nil)

	err := s.Create(context.Background(), CreateInput{CustomerID: 9, Amount: 10, Status: domain.StatusPaid})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Empty(t, inv.created, "no row may be created for a missing customer")
}

func TestCreateStampsServerTime(t *testing.T) {
	inv := &fakeInvoiceRepo{}
	cust := &fakeCustomerRepo{byID: map[uint]*domain.Customer{3: {ID: 3}}}
	s := newTestService(inv, cust, nil)
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	err := s.Create(context.Background(), CreateInput{
		CustomerID: 3,
		Amount:     150.5,
		Status:     domain.StatusPending,
		Date:       "1999-01-01", // accepted but ignored
	})
	require.NoError(t, err)
	require.Len(t, inv.created, 1)
	got := inv.created[0]
	assert.Equal(t, int64(15050), got.Amount)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, now, got.Date)
	assert.NotEmpty(t, got.ID)
}

func TestRevenuePrefersTable(t *testing.T) {
	rev := &fakeRevenueRepo{rows: []domain.Revenue{{Month: "Jan", Revenue: 200000}}}
	inv := &fakeInvoiceRepo{months: []domain.MonthRevenue{{Month: "Feb", Revenue: 1}}}
	s := newTestService(inv, nil, rev)

	out, err := s.Revenue(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Jan", out[0].Month)
}

func TestRevenueFallsBackToGrouping(t *testing.T) {
	inv := &fakeInvoiceRepo{months: []domain.MonthRevenue{{Month: "Mar", Revenue: 300}}}
	s := newTestService(inv, nil, &fakeRevenueRepo{})

	out, err := s.Revenue(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Mar", out[0].Month)
}
