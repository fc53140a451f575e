package models

import (
	"time"

	"github.com/invoicedash/backend/internal/domain/invoice"
	"github.com/invoicedash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	BaseModel
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName  string          `gorm:"type:varchar(200);not null;index"`
	IssueDate     time.Time       `gorm:"not null;index"`
	DueDate       *time.Time      `gorm:"index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status        invoice.Status  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes         string          `gorm:"type:text"`
	PDFKey        string          `gorm:"type:varchar(300)"`
	SentAt        *time.Time
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	return &invoice.Invoice{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		InvoiceNumber: m.InvoiceNumber,
		CustomerName:  m.CustomerName,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Subtotal:      m.Subtotal,
		TaxAmount:     m.TaxAmount,
		TotalAmount:   m.TotalAmount,
		Status:        m.Status,
		Notes:         m.Notes,
		PDFKey:        m.PDFKey,
		SentAt:        m.SentAt,
		PaidAt:        m.PaidAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerName = inv.CustomerName
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.Subtotal = inv.Subtotal
	m.TaxAmount = inv.TaxAmount
	m.TotalAmount = inv.TotalAmount
	m.Status = inv.Status
	m.Notes = inv.Notes
	m.PDFKey = inv.PDFKey
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
	m.CancelledAt = inv.CancelledAt
	m.CancelReason = inv.CancelReason
}

// InvoiceSequenceModel tracks the last issued invoice number per year
type InvoiceSequenceModel struct {
	Year    int   `gorm:"primary_key;autoIncrement:false"`
	LastSeq int64 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}
