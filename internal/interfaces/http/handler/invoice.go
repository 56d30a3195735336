package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appfinance.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *appfinance.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/finance/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/totals", h.Totals)
		invoices.GET("/:id", h.GetByID)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
	}
}

// Create creates an invoice together with its tax record
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var req appfinance.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetByID returns a single invoice
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List returns a filtered, paginated invoice listing
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// Totals returns SUM aggregates over a filtered invoice set
func (h *InvoiceHandler) Totals(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	totals, err := h.invoiceService.GetInvoiceTotals(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, totals)
}

// Update applies a partial update to an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid invoice ID format")
		return
	}

	var req appfinance.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete soft-deletes an invoice; `?hard=true` removes it physically.
// Both variants cascade the client totals recalculation.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid invoice ID format")
		return
	}

	if c.Query("hard") == "true" {
		err = h.invoiceService.HardDeleteInvoice(c.Request.Context(), tenantID, id)
	} else {
		err = h.invoiceService.SoftDeleteInvoice(c.Request.Context(), tenantID, id)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
