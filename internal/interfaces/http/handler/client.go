package handler

import (
	partnerapp "github.com/backoffice/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/partner/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.GetByID)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}

// Create creates a client. Names are unique per tenant among non-deleted
// clients.
func (h *ClientHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, client)
}

// GetByID returns a single client with its cached totals
func (h *ClientHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// List returns a filtered, paginated client listing
func (h *ClientHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	var filter partnerapp.ClientListFilter
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

	clients, total, err := h.clientService.ListClients(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// Update updates a client's identity fields. Cached totals are never
// writable through the API.
func (h *ClientHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid client ID format")
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete soft-deletes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity missing")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.InvalidID(c, "Invalid client ID format")
		return
	}

	if err := h.clientService.SoftDeleteClient(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
