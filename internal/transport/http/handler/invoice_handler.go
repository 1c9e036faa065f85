package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-invoice-dashboard/internal/invoices"
	httpez "go-invoice-dashboard/internal/transport/http/ez"
)

type InvoiceHandler struct {
	svc *invoices.Service
}

func NewInvoiceHandler(svc *invoices.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// AddInvoice implements POST /api/add-invoice. The response contract is
// fixed: 200 {message}, 400 {errors:{field:[msgs]}}, 404 {message},
// 500 {error,message}.
func (h *InvoiceHandler) AddInvoice(c *gin.Context) {
	var p invoices.Payload
	// a malformed body validates like an empty one: every field errors
	_ = c.ShouldBindJSON(&p)

	in, fieldErrs := p.Validate()
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	if err := h.svc.Create(c.Request.Context(), in); err != nil {
		if errors.Is(err, invoices.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"message": "Database Error: Failed to Create Invoice.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice created"})
}

// MountAPI registers the invoice table reads on /api/v1.
func (h *InvoiceHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	type listQ struct {
		Query string `form:"query"`
		Page  int    `form:"page,default=1"`
	}
	type listOut struct {
		Invoices   []invoices.TableRow `json:"invoices"`
		TotalPages int                 `json:"totalPages"`
	}
	httpez.Register(ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/invoices",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			rows, err := h.svc.Filtered(c.Request.Context(), in.Query, in.Page)
			if err != nil {
				return listOut{}, httpez.Internal(err.Error(), err)
			}
			pages, err := h.svc.Pages(c.Request.Context(), in.Query)
			if err != nil {
				return listOut{}, httpez.Internal(err.Error(), err)
			}
			return listOut{Invoices: rows, TotalPages: pages}, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, *invoices.Detail]{
		Method: http.MethodGet,
		Path:   "/invoices/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*invoices.Detail, error) {
			inv, err := h.svc.ByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, httpez.Internal(err.Error(), err)
			}
			if inv == nil {
				return nil, httpez.NotFound("invoice not found")
			}
			return inv, nil
		},
	})
}
