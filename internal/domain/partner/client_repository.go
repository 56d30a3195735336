package partner

import (
	"context"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientFilter defines filtering options for client queries
type ClientFilter struct {
	shared.Filter
	Status         *ClientStatus
	Industry       *string
	IncludeDeleted bool
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByIDForTenant finds a client by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)

	// FindByName finds a non-deleted client by exact name for a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Client, error)

	// FindAllForTenant finds all clients for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ClientFilter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// CountForTenant counts clients for a tenant with filtering
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ClientFilter) (int64, error)
}
