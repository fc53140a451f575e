package invoice

import (
	"time"

	"github.com/invoicedash/backend/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	CustomerName string          `json:"customer_name" binding:"required,min=1,max=200"`
	IssueDate    time.Time       `json:"issue_date" binding:"required"`
	DueDate      *time.Time      `json:"due_date"`
	Subtotal     decimal.Decimal `json:"subtotal" binding:"required"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// UpdateInvoiceRequest represents a request to revise a draft invoice
type UpdateInvoiceRequest struct {
	CustomerName string          `json:"customer_name" binding:"required,min=1,max=200"`
	IssueDate    time.Time       `json:"issue_date" binding:"required"`
	DueDate      *time.Time      `json:"due_date"`
	Subtotal     decimal.Decimal `json:"subtotal" binding:"required"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// UpdateStatusRequest represents a request to move an invoice through its lifecycle
type UpdateStatusRequest struct {
	Status invoice.Status `json:"status" binding:"required"`
	Reason string         `json:"reason" binding:"max=500"`
}

// ListFilter represents filter options for the invoice list
type ListFilter struct {
	Search    string     `form:"search"`
	Status    *string    `form:"status"`
	Customer  string     `form:"customer"`
	IssueFrom *time.Time `form:"issue_from" time_format:"2006-01-02"`
	IssueTo   *time.Time `form:"issue_to" time_format:"2006-01-02"`
	DueFrom   *time.Time `form:"due_from" time_format:"2006-01-02"`
	DueTo     *time.Time `form:"due_to" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	HasPDF        bool            `json:"has_pdf"`
	SentAt        *time.Time      `json:"sent_at,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListResponse represents a page of invoices
type ListResponse struct {
	Items    []InvoiceResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// InvoiceNumberResponse carries a freshly generated invoice number
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}

func toResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status.String(),
		Notes:         inv.Notes,
		HasPDF:        inv.PDFKey != "",
		SentAt:        inv.SentAt,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
