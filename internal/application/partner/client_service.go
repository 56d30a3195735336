package partner

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ClientService provides application-level client operations
type ClientService struct {
	clientRepo partner.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, logger: logger}
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Name          string          `json:"name"`
	ContactPerson string          `json:"contact_person"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Industry      string          `json:"industry"`
	TaxID         string          `json:"tax_id"`
	Status        string          `json:"status"`
	TotalInvoice  decimal.Decimal `json:"total_invoice"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Industry      string `json:"industry"`
	TaxID         string `json:"tax_id"`
	Notes         string `json:"notes"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Industry      string `json:"industry"`
	TaxID         string `json:"tax_id"`
	Notes         string `json:"notes"`
}

// ClientListFilter defines filtering options for client list queries
type ClientListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Industry string `form:"industry"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (f ClientListFilter) toDomain() partner.ClientFilter {
	domainFilter := partner.ClientFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
		},
	}
	if f.Status != "" {
		status := partner.ClientStatus(f.Status)
		domainFilter.Status = &status
	}
	if f.Industry != "" {
		domainFilter.Industry = &f.Industry
	}
	return domainFilter
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	existing, err := s.clientRepo.FindByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A client with this name already exists")
	}

	client, err := partner.NewClient(tenantID, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	client.ContactPerson = req.ContactPerson
	client.Address = req.Address
	client.Industry = req.Industry
	if req.TaxID != "" {
		if err := client.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		client.SetNotes(req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client created", zap.String("client_id", client.ID.String()))
	return toClientResponse(client), nil
}

// GetClientByID gets a client by ID
func (s *ClientService) GetClientByID(ctx context.Context, tenantID, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
	}
	return toClientResponse(client), nil
}

// ListClients lists clients with filtering
func (s *ClientService) ListClients(ctx context.Context, tenantID uuid.UUID, filter ClientListFilter) ([]ClientResponse, int64, error) {
	domainFilter := filter.toDomain()

	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *toClientResponse(&clients[i]))
	}
	return responses, total, nil
}

// UpdateClient updates a client's information
func (s *ClientService) UpdateClient(ctx context.Context, tenantID, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
	}

	if err := client.Update(req.Name, req.ContactPerson, req.Email, req.Phone, req.Address, req.Industry); err != nil {
		return nil, err
	}
	if err := client.SetTaxID(req.TaxID); err != nil {
		return nil, err
	}
	client.SetNotes(req.Notes)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// SoftDeleteClient soft-deletes a client
func (s *ClientService) SoftDeleteClient(ctx context.Context, tenantID, id uuid.UUID) error {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if client == nil {
		return shared.NewDomainError("NOT_FOUND", "Client not found")
	}
	if err := client.SoftDelete(); err != nil {
		return err
	}
	return s.clientRepo.Save(ctx, client)
}

func toClientResponse(client *partner.Client) *ClientResponse {
	return &ClientResponse{
		ID:            client.ID,
		TenantID:      client.TenantID,
		Name:          client.Name,
		ContactPerson: client.ContactPerson,
		Email:         client.Email,
		Phone:         client.Phone,
		Address:       client.Address,
		Industry:      client.Industry,
		TaxID:         client.TaxID,
		Status:        string(client.Status),
		TotalInvoice:  client.TotalInvoice,
		AmountPaid:    client.AmountPaid,
		AmountDue:     client.AmountDue,
		Notes:         client.Notes,
		CreatedAt:     client.CreatedAt,
		UpdatedAt:     client.UpdatedAt,
	}
}
