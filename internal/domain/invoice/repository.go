package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoicedash/backend/internal/domain/shared"
)

// Filter defines filtering options for invoice queries
type Filter struct {
	shared.Filter
	Status    *Status    // Filter by stored status
	Customer  string     // Substring match on customer name
	Search    string     // Substring match on number, customer or notes
	IssueFrom *time.Time // Filter by issue date range start
	IssueTo   *time.Time // Filter by issue date range end
	DueFrom   *time.Time // Filter by due date range start
	DueTo     *time.Time // Filter by due date range end
}

// Repository defines the interface for invoice persistence
type Repository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its invoice number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices matching the filter
	FindAll(ctx context.Context, filter Filter) ([]Invoice, error)

	// Count returns the number of invoices matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// NextSequence returns the next invoice sequence number for a year
	NextSequence(ctx context.Context, year int) (int64, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice
	Delete(ctx context.Context, id uuid.UUID) error
}
