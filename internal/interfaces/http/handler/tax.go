package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxHandler handles tax record API endpoints
type TaxHandler struct {
	BaseHandler
	taxService *appfinance.TaxService
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxService *appfinance.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// RegisterRoutes registers tax record routes
func (h *TaxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	taxes := rg.Group("/finance/taxes")
	{
		taxes.GET("", h.List)
		taxes.GET("/summary", h.Summary)
		taxes.GET("/:id", h.GetByID)
		taxes.POST("/pay", h.PayBatch)
	}
}

// BatchPayRequest represents a request to pay a batch of records by ID
type BatchPayRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// GetByID returns a single tax record
func (h *TaxHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid tax record ID format")
		return
	}

	record, err := h.taxService.GetTaxRecordByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// List returns a filtered tax record listing
func (h *TaxHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.TaxRecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, err := h.taxService.ListTaxRecords(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// TaxSummaryResponse carries the SUM aggregate over a filtered tax set
type TaxSummaryResponse struct {
	TotalDeducted decimal.Decimal `json:"total_deducted"`
}

// Summary returns the total tax deducted over a filtered set
func (h *TaxHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.TaxRecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	total, err := h.taxService.SumTaxDeducted(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, TaxSummaryResponse{TotalDeducted: total})
}

// PayBatch marks a batch of tax records as paid. The batch is atomic: if
// any record is already paid the whole request fails with the offending
// IDs and nothing is written.
func (h *TaxHandler) PayBatch(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var req BatchPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.taxService.PayTaxRecords(c.Request.Context(), tenantID, req.IDs); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
