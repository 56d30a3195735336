package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// TaxReturnHandler handles tax return API endpoints
type TaxReturnHandler struct {
	BaseHandler
	taxReturnService *appfinance.TaxReturnService
}

// NewTaxReturnHandler creates a new TaxReturnHandler
func NewTaxReturnHandler(taxReturnService *appfinance.TaxReturnService) *TaxReturnHandler {
	return &TaxReturnHandler{taxReturnService: taxReturnService}
}

// RegisterRoutes registers tax return routes
func (h *TaxReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/finance/tax-returns")
	{
		returns.POST("", h.Create)
		returns.GET("", h.List)
		returns.GET("/:id", h.GetByID)
		returns.PUT("/:id", h.Update)
		returns.DELETE("/:id", h.Delete)
	}
}

// Create creates a tax return line. The VAT rate is not accepted from the
// caller; it is always the fixed statutory rate.
func (h *TaxReturnHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var req appfinance.CreateTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	taxReturn, err := h.taxReturnService.CreateTaxReturn(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, taxReturn)
}

// GetByID returns a single tax return
func (h *TaxReturnHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid tax return ID format")
		return
	}

	taxReturn, err := h.taxReturnService.GetTaxReturnByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, taxReturn)
}

// List returns a filtered tax return listing
func (h *TaxReturnHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.TaxReturnListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	returns, err := h.taxReturnService.ListTaxReturns(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, returns)
}

// Update applies a partial update with derived recomputation
func (h *TaxReturnHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid tax return ID format")
		return
	}

	var req appfinance.UpdateTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	taxReturn, err := h.taxReturnService.UpdateTaxReturn(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, taxReturn)
}

// Delete soft-deletes a tax return
func (h *TaxReturnHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid tax return ID format")
		return
	}

	if err := h.taxReturnService.SoftDeleteTaxReturn(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
