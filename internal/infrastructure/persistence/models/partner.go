package models

import (
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for Client
type ClientModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null;index"`
	ContactPerson string          `gorm:"type:varchar(100)"`
	Email         string          `gorm:"type:varchar(200);index"`
	Phone         string          `gorm:"type:varchar(50)"`
	Address       string          `gorm:"type:text"`
	Industry      string          `gorm:"type:varchar(100);index"`
	TaxID         string          `gorm:"type:varchar(50)"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	TotalInvoice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain Client
func (m *ClientModel) ToDomain() *partner.Client {
	client := &partner.Client{
		Name:          m.Name,
		ContactPerson: m.ContactPerson,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		Industry:      m.Industry,
		TaxID:         m.TaxID,
		Status:        partner.ClientStatus(m.Status),
		TotalInvoice:  m.TotalInvoice,
		AmountPaid:    m.AmountPaid,
		AmountDue:     m.AmountDue,
		Notes:         m.Notes,
	}
	m.PopulateTenantAggregateRoot(&client.TenantAggregateRoot)
	return client
}

// ClientModelFromDomain converts a domain Client to the model
func ClientModelFromDomain(client *partner.Client) *ClientModel {
	m := &ClientModel{
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
	}
	m.FromDomainTenantAggregateRoot(client.TenantAggregateRoot)
	return m
}
