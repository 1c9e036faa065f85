package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-invoice-dashboard/internal/customers"
	"go-invoice-dashboard/internal/domain"
	httpez "go-invoice-dashboard/internal/transport/http/ez"
)

type CustomerHandler struct {
	svc *customers.Service
}

func NewCustomerHandler(svc *customers.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	httpez.Register(ez, httpez.Action[struct{}, []customers.Field]{
		Method: http.MethodGet,
		Path:   "/customers",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]customers.Field, error) {
			all, err := h.svc.All(c.Request.Context())
			if err != nil {
				return nil, httpez.Internal(err.Error(), err)
			}
			return all, nil
		},
	})

	type filterQ struct {
		Query string `form:"query"`
	}
	httpez.Register(ez, httpez.Action[filterQ, []domain.CustomerSummary]{
		Method: http.MethodGet,
		Path:   "/customers/filtered",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *filterQ) ([]domain.CustomerSummary, error) {
			rows, err := h.svc.Filtered(c.Request.Context(), in.Query)
			if err != nil {
				return nil, httpez.Internal(err.Error(), err)
			}
			return rows, nil
		},
	})
}
