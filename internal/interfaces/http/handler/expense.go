package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *appfinance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *appfinance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/finance/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.GetByID)
		expenses.PUT("/:id", h.Update)
		expenses.PUT("/:id/wht", h.SetWHT)
		expenses.DELETE("/:id", h.Delete)
	}
}

// SetExpenseWHTRequest toggles withholding on an expense
type SetExpenseWHTRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// Create creates an expense; enabling WHT creates the linked withholding
// record alongside it
func (h *ExpenseHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var req appfinance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetByID returns a single expense
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// List returns a filtered expense listing
func (h *ExpenseHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter appfinance.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expenses)
}

// Update updates an expense; an amount change propagates to the linked
// withholding record
func (h *ExpenseHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid expense ID format")
		return
	}

	var req appfinance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// SetWHT flips withholding on or off for an expense
func (h *ExpenseHandler) SetWHT(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid expense ID format")
		return
	}

	var req SetExpenseWHTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.SetExpenseWHT(c.Request.Context(), tenantID, id, *req.Enabled)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete soft-deletes an expense and its linked withholding record
func (h *ExpenseHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.SoftDeleteExpense(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
