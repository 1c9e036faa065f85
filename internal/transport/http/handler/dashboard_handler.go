package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/internal/invoices"
	httpez "go-invoice-dashboard/internal/transport/http/ez"
)

type DashboardHandler struct {
	svc *invoices.Service
}

func NewDashboardHandler(svc *invoices.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	httpez.Register(ez, httpez.Action[struct{}, *invoices.CardData]{
		Method: http.MethodGet,
		Path:   "/dashboard/cards",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*invoices.CardData, error) {
			cards, err := h.svc.Cards(c.Request.Context())
			if err != nil {
				return nil, httpez.Internal(err.Error(), err)
			}
			return cards, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, []invoices.LatestInvoice]{
		Method: http.MethodGet,
		Path:   "/dashboard/latest-invoices",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]invoices.LatestInvoice, error) {
			latest, err := h.svc.Latest(c.Request.Context())
			if err != nil {
				return nil, httpez.Internal(err.Error(), err)
			}
			return latest, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, []domain.MonthRevenue]{
		Method: http.MethodGet,
		Path:   "/dashboard/revenue",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.MonthRevenue, error) {
			rev, err := h.svc.Revenue(c.Request.Context())
			if err != nil {
				return nil, httpez.Internal(err.Error(), err)
			}
			return rev, nil
		},
	})
}
