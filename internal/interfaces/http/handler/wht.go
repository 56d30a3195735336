package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// WHTHandler handles withholding record API endpoints
type WHTHandler struct {
	BaseHandler
	whtService *appfinance.WHTService
}

// NewWHTHandler creates a new WHTHandler
func NewWHTHandler(whtService *appfinance.WHTService) *WHTHandler {
	return &WHTHandler{whtService: whtService}
}

// RegisterRoutes registers withholding record routes
func (h *WHTHandler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/finance/wht-records")
	{
		records.POST("", h.Create)
		records.GET("", h.List)
		records.GET("/totals", h.Totals)
		records.GET("/:id", h.GetByID)
		records.PUT("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
		records.POST("/pay", h.PayBatch)
	}
}

// Create creates a withholding record
func (h *WHTHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var req appfinance.CreateWHTRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.whtService.CreateWHTRecord(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, record)
}

// GetByID returns a single withholding record
func (h *WHTHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid WHT record ID format")
		return
	}

	record, err := h.whtService.GetWHTRecordByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// List returns a filtered withholding record listing
func (h *WHTHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.WHTRecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, err := h.whtService.ListWHTRecords(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// Totals returns SUM aggregates over a filtered withholding set
func (h *WHTHandler) Totals(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.WHTRecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	totals, err := h.whtService.GetWHTTotals(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, totals)
}

// Update applies a partial update; derived amounts are recomputed when
// the transaction amount or either rate changes
func (h *WHTHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid WHT record ID format")
		return
	}

	var req appfinance.UpdateWHTRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.whtService.UpdateWHTRecord(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete soft-deletes a withholding record
func (h *WHTHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid WHT record ID format")
		return
	}

	if err := h.whtService.SoftDeleteWHTRecord(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// PayBatch marks a batch of withholding records as paid, all or nothing
func (h *WHTHandler) PayBatch(c *gin.Context) {
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

	if err := h.whtService.PayWHTRecords(c.Request.Context(), tenantID, req.IDs); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
