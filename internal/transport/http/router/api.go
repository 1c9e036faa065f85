package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	coreauth "go-invoice-dashboard/internal/core/auth"
	"go-invoice-dashboard/internal/transport/http/handler"
	mdw "go-invoice-dashboard/internal/transport/http/middleware"
)

// Handlers groups everything the API engine mounts.
type Handlers struct {
	Invoices  *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Customers *handler.CustomerHandler
	Auth      *handler.AuthHandler
}

func NewAPIEngine(l *zap.Logger, jwter *coreauth.JWTer, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// invoice creation keeps its original path and response contract
	r.POST("/api/add-invoice", h.Invoices.AddInvoice)

	api := r.Group("/api/v1")

	// public: credentials check + session issuance
	h.Auth.MountAPI(api)

	// dashboard reads sit behind the session gate
	private := api.Group("")
	private.Use(mdw.AuthJWT(jwter))
	h.Invoices.MountAPI(private)
	h.Dashboard.MountAPI(private)
	h.Customers.MountAPI(private)

	return r
}
