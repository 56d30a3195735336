package partner

import (
	"regexp"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusDeleted  ClientStatus = "DELETED"
)

// IsValid checks if the status is valid
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusDeleted:
		return true
	}
	return false
}

// ClientTotals are the cached billing aggregates carried on a client.
// They are a denormalized view over the client's non-deleted invoices and
// are only ever written by the recalculator, which rebuilds all three from
// a full scan. Partial adjustments are deliberately not supported.
type ClientTotals struct {
	TotalInvoice decimal.Decimal `json:"total_invoice"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	AmountDue    decimal.Decimal `json:"amount_due"`
}

// ZeroTotals returns the totals of a client with no invoices
func ZeroTotals() ClientTotals {
	return ClientTotals{
		TotalInvoice: decimal.Zero,
		AmountPaid:   decimal.Zero,
		AmountDue:    decimal.Zero,
	}
}

// Client represents a billed client in the partner context.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.TenantAggregateRoot
	Name          string          `json:"name"`
	ContactPerson string          `json:"contact_person"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Industry      string          `json:"industry"`
	TaxID         string          `json:"tax_id"`
	Status        ClientStatus    `json:"status"`
	TotalInvoice  decimal.Decimal `json:"total_invoice"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Notes         string          `json:"notes"`
}

// NewClient creates a new client with required fields
func NewClient(tenantID uuid.UUID, name, email, phone string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateClientEmail(email); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if err := validateClientPhone(phone); err != nil {
			return nil, err
		}
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               email,
		Phone:               phone,
		Status:              ClientStatusActive,
		TotalInvoice:        decimal.Zero,
		AmountPaid:          decimal.Zero,
		AmountDue:           decimal.Zero,
	}, nil
}

// Update updates the client's basic information
func (c *Client) Update(name, contactPerson, email, phone, address, industry string) error {
	if c.Status == ClientStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a deleted client")
	}
	if err := validateClientName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateClientEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := validateClientPhone(phone); err != nil {
			return err
		}
	}

	c.Name = name
	c.ContactPerson = contactPerson
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.Industry = industry
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTaxID sets the client's tax identification number
func (c *Client) SetTaxID(taxID string) error {
	if taxID != "" && len(taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	c.TaxID = taxID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the client's notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ApplyTotals replaces the cached billing aggregates with freshly
// recalculated values. The previous values are discarded wholesale.
func (c *Client) ApplyTotals(totals ClientTotals) {
	c.TotalInvoice = totals.TotalInvoice
	c.AmountPaid = totals.AmountPaid
	c.AmountDue = totals.AmountDue
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the client
func (c *Client) Activate() error {
	if c.Status == ClientStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a deleted client")
	}
	if c.Status == ClientStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Client is already active")
	}

	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the client
func (c *Client) Deactivate() error {
	if c.Status == ClientStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a deleted client")
	}
	if c.Status == ClientStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Client is already inactive")
	}

	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SoftDelete marks the client as deleted. Deleted is terminal.
func (c *Client) SoftDelete() error {
	if c.Status == ClientStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Client is already deleted")
	}

	c.Status = ClientStatusDeleted
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// IsDeleted returns true if the client is deleted
func (c *Client) IsDeleted() bool {
	return c.Status == ClientStatusDeleted
}

// Validation functions

func validateClientName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validateClientPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateClientEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
