package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-invoice-dashboard/internal/core/config"
	"go-invoice-dashboard/internal/core/database"
	"go-invoice-dashboard/internal/core/logger"
	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/internal/repo"
	"go-invoice-dashboard/pkg/utils"
)

// Seeds the demo dataset: a login user, a handful of customers, a page
// or two of invoices and the pre-aggregated revenue table.
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&domain.Customer{},
		&domain.Invoice{},
		&domain.User{},
		&domain.Revenue{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx := context.Background()
	users := repo.NewUserRepo(db)
	custs := repo.NewCustomerRepo(db)
	invs := repo.NewInvoiceRepo(db)
	revs := repo.NewRevenueRepo(db)

	if existing, err := users.FindByEmail(ctx, "user@nextmail.com"); err != nil {
		log.Fatal("seed user lookup", zap.Error(err))
	} else if existing == nil {
		u := &domain.User{
			ID:           utils.NewID(),
			Name:         "User",
			Email:        "user@nextmail.com",
			PasswordHash: utils.HashPassword("123456"),
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("seed user", zap.Error(err))
		}
	}

	customers := []domain.Customer{
		{Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
		{Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
		{Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		{Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
	}
	for i := range customers {
		if err := custs.Create(ctx, &customers[i]); err != nil {
			log.Warn("seed customer", zap.String("email", customers[i].Email), zap.Error(err))
		}
	}

	type seedInvoice struct {
		customer int
		amount   int64 // cents
		status   string
		daysAgo  int
	}
	seedInvoices := []seedInvoice{
		{0, 15795, domain.StatusPending, 3},
		{1, 20348, domain.StatusPending, 260},
		{2, 3040, domain.StatusPaid, 300},
		{3, 44800, domain.StatusPaid, 350},
		{4, 34577, domain.StatusPending, 380},
		{5, 54246, domain.StatusPending, 400},
		{0, 66666, domain.StatusPending, 420},
		{1, 32545, domain.StatusPaid, 450},
		{2, 1250, domain.StatusPaid, 460},
		{3, 8546, domain.StatusPaid, 480},
		{4, 50048, domain.StatusPaid, 500},
		{5, 17280, domain.StatusPaid, 520},
		{0, 34461, domain.StatusPaid, 540},
		{1, 89045, domain.StatusPaid, 560},
	}
	for _, s := range seedInvoices {
		inv := &domain.Invoice{
			ID:         utils.NewID(),
			CustomerID: customers[s.customer].ID,
			Amount:     s.amount,
			Status:     s.status,
			Date:       time.Now().AddDate(0, 0, -s.daysAgo).Truncate(24 * time.Hour),
		}
		if err := invs.Create(ctx, inv); err != nil {
			log.Warn("seed invoice", zap.Error(err))
		}
	}

	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	amounts := []int64{200000, 180000, 220000, 250000, 230000, 320000, 350000, 370000, 250000, 280000, 300000, 480000}
	for i, m := range months {
		if err := revs.Upsert(ctx, &domain.Revenue{Month: m, Revenue: amounts[i]}); err != nil {
			log.Warn("seed revenue", zap.String("month", m), zap.Error(err))
		}
	}

	log.Info("seed done")
}
