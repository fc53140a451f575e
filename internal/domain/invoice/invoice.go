package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/invoicedash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an invoice
type Status string

const (
	StatusDraft     Status = "DRAFT"     // Editable, not yet sent to the customer
	StatusSent      Status = "SENT"      // Delivered, awaiting payment
	StatusPaid      Status = "PAID"      // Fully settled
	StatusOverdue   Status = "OVERDUE"   // Sent and past due without payment
	StatusCancelled Status = "CANCELLED" // Voided before payment
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice is in a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransitionTo returns true if the status may move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusSent || target == StatusCancelled
	case StatusSent:
		return target == StatusPaid || target == StatusOverdue || target == StatusCancelled
	case StatusOverdue:
		return target == StatusPaid
	}
	return false
}

// Invoice represents a billed amount owed by a customer
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes"`
	PDFKey        string          `json:"pdf_key,omitempty"` // Object storage key of the rendered document
	SentAt        *time.Time      `json:"sent_at"`
	PaidAt        *time.Time      `json:"paid_at"`
	CancelledAt   *time.Time      `json:"cancelled_at"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
}

// NewInvoice creates a new draft invoice
func NewInvoice(
	invoiceNumber string,
	customerName string,
	issueDate time.Time,
	dueDate *time.Time,
	subtotal decimal.Decimal,
	taxAmount decimal.Decimal,
	notes string,
) (*Invoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	customerName = strings.TrimSpace(customerName)

	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(customerName) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Subtotal cannot be negative")
	}
	if taxAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Tax amount cannot be negative")
	}
	if dueDate != nil && dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the issue date")
	}

	return &Invoice{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceNumber: invoiceNumber,
		CustomerName:  customerName,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		TotalAmount:   subtotal.Add(taxAmount),
		Status:        StatusDraft,
		Notes:         notes,
	}, nil
}

// Send marks a draft invoice as delivered to the customer
func (i *Invoice) Send() error {
	if err := i.transitionTo(StatusSent); err != nil {
		return err
	}
	now := time.Now()
	i.SentAt = &now
	return nil
}

// MarkPaid settles the invoice. Allowed from SENT and OVERDUE.
func (i *Invoice) MarkPaid() error {
	if err := i.transitionTo(StatusPaid); err != nil {
		return err
	}
	now := time.Now()
	i.PaidAt = &now
	return nil
}

// MarkOverdue flags a sent invoice whose due date has lapsed.
// The stored status is a display label; reporting derives overdue
// from the due date independently.
func (i *Invoice) MarkOverdue(now time.Time) error {
	if i.DueDate == nil || !i.DueDate.Before(now) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}
	return i.transitionTo(StatusOverdue)
}

// Cancel voids the invoice. Allowed from DRAFT and SENT.
func (i *Invoice) Cancel(reason string) error {
	if err := i.transitionTo(StatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	i.CancelledAt = &now
	i.CancelReason = reason
	return nil
}

// UpdateDetails revises the editable fields of a draft invoice
func (i *Invoice) UpdateDetails(
	customerName string,
	issueDate time.Time,
	dueDate *time.Time,
	subtotal decimal.Decimal,
	taxAmount decimal.Decimal,
	notes string,
) error {
	if i.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit invoice in %s status", i.Status))
	}

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if subtotal.IsNegative() || taxAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	if dueDate != nil && dueDate.Before(issueDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the issue date")
	}

	i.CustomerName = customerName
	i.IssueDate = issueDate
	i.DueDate = dueDate
	i.Subtotal = subtotal
	i.TaxAmount = taxAmount
	i.TotalAmount = subtotal.Add(taxAmount)
	i.Notes = notes
	i.Touch()
	return nil
}

// AttachPDF records the object storage key of the rendered document
func (i *Invoice) AttachPDF(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_INPUT", "Document key cannot be empty")
	}
	if i.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot attach a document to a cancelled invoice")
	}
	i.PDFKey = key
	i.Touch()
	return nil
}

// IsPaid returns true if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == StatusPaid
}

func (i *Invoice) transitionTo(target Status) error {
	if !i.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition invoice from %s to %s", i.Status, target))
	}
	i.Status = target
	i.Touch()
	return nil
}
