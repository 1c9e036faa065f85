package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authsvc "go-invoice-dashboard/internal/auth"
	coreauth "go-invoice-dashboard/internal/core/auth"
	"go-invoice-dashboard/internal/core/cache"
	"go-invoice-dashboard/internal/core/config"
	"go-invoice-dashboard/internal/core/database"
	"go-invoice-dashboard/internal/core/logger"
	"go-invoice-dashboard/internal/core/server"
	"go-invoice-dashboard/internal/customers"
	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/internal/invoices"
	"go-invoice-dashboard/internal/repo"
	"go-invoice-dashboard/internal/transport/http/handler"
	"go-invoice-dashboard/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.Customer{},
			&domain.Invoice{},
			&domain.User{},
			&domain.Revenue{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	var c *cache.Cache
	if cfg.Redis.Enable {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() { _ = c.Close() }()
	}

	jwter := &coreauth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	invoiceRepo := repo.NewInvoiceRepo(db)
	customerRepo := repo.NewCustomerRepo(db)
	userRepo := repo.NewUserRepo(db)
	revenueRepo := repo.NewRevenueRepo(db)

	invoiceSvc := invoices.NewService(invoiceRepo, customerRepo, revenueRepo, c, log)
	customerSvc := customers.NewService(customerRepo, log)
	authSvc := authsvc.NewService(userRepo, log)

	r := router.NewAPIEngine(log, jwter, router.Handlers{
		Invoices:  handler.NewInvoiceHandler(invoiceSvc),
		Dashboard: handler.NewDashboardHandler(invoiceSvc),
		Customers: handler.NewCustomerHandler(customerSvc),
		Auth:      handler.NewAuthHandler(authSvc, jwter),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("invoice api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("invoice api start FAILED", zap.Error(err))
		}
	}()
	log.Info("invoice api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("invoice api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
