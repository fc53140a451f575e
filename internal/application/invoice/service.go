package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/invoicedash/backend/internal/domain/invoice"
	"github.com/invoicedash/backend/internal/domain/shared"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	pdfContentType = "application/pdf"
)

// DocumentStorage defines the interface for invoice document storage.
// Implemented by the infrastructure layer against any S3-compatible backend.
type DocumentStorage interface {
	// GenerateUploadURL generates a presigned URL for uploading a document
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a document
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes a document from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if a document exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds tunables for the invoice service
type ServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// Service handles invoice business operations
type Service struct {
	repo    invoice.Repository
	storage DocumentStorage
	config  ServiceConfig
	now     func() time.Time
}

// NewService creates a new invoice Service
func NewService(repo invoice.Repository, storage DocumentStorage, config ServiceConfig) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		config:  config,
		now:     time.Now,
	}
}

// Create creates a new draft invoice with a generated invoice number
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	number, err := s.generateNumber(ctx, req.IssueDate.Year())
	if err != nil {
		return nil, err
	}

	inv, err := invoice.NewInvoice(
		number,
		req.CustomerName,
		req.IssueDate,
		req.DueDate,
		req.Subtotal,
		req.TaxAmount,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	resp := toResponse(inv)
	return &resp, nil
}

// Get returns an invoice by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(inv)
	return &resp, nil
}

// GetByNumber returns an invoice by its invoice number
func (s *Service) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := toResponse(inv)
	return &resp, nil
}

// List returns a page of invoices matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResponse, error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	invoices, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, toResponse(&invoices[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &ListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: domainFilter.Limit,
	}, nil
}

// Update revises a draft invoice
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.UpdateDetails(req.CustomerName, req.IssueDate, req.DueDate, req.Subtotal, req.TaxAmount, req.Notes); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	resp := toResponse(inv)
	return &resp, nil
}

// UpdateStatus moves an invoice through its lifecycle
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*InvoiceResponse, error) {
	if !req.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", req.Status))
	}

	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch req.Status {
	case invoice.StatusSent:
		err = inv.Send()
	case invoice.StatusPaid:
		err = inv.MarkPaid()
	case invoice.StatusOverdue:
		err = inv.MarkOverdue(s.now())
	case invoice.StatusCancelled:
		err = inv.Cancel(req.Reason)
	default:
		err = shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move an invoice to %s directly", req.Status))
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	resp := toResponse(inv)
	return &resp, nil
}

// Delete removes a draft invoice. Sent invoices must be cancelled instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != invoice.StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}
	if inv.PDFKey != "" {
		if err := s.storage.DeleteObject(ctx, inv.PDFKey); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

// GenerateInvoiceNumber returns the next invoice number for the current year
func (s *Service) GenerateInvoiceNumber(ctx context.Context) (*InvoiceNumberResponse, error) {
	number, err := s.generateNumber(ctx, s.now().Year())
	if err != nil {
		return nil, err
	}
	return &InvoiceNumberResponse{InvoiceNumber: number}, nil
}

// DocumentUploadResponse carries a presigned upload URL for an invoice document
type DocumentUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DocumentDownloadResponse carries a presigned download URL for an invoice document
type DocumentDownloadResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// PrepareDocumentUpload issues a presigned upload URL and records the
// storage key on the invoice. The client uploads the rendered PDF
// directly to object storage.
func (s *Service) PrepareDocumentUpload(ctx context.Context, id uuid.UUID) (*DocumentUploadResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("invoices/%s/%s.pdf", inv.ID, inv.InvoiceNumber)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, pdfContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := inv.AttachPDF(key); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	return &DocumentUploadResponse{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// GetDocumentDownload issues a presigned download URL for the invoice PDF
func (s *Service) GetDocumentDownload(ctx context.Context, id uuid.UUID) (*DocumentDownloadResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.PDFKey == "" {
		return nil, shared.ErrNotFound
	}

	exists, err := s.storage.ObjectExists(ctx, inv.PDFKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, inv.PDFKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &DocumentDownloadResponse{
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) generateNumber(ctx context.Context, year int) (string, error) {
	seq, err := s.repo.NextSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", year, seq), nil
}

func (s *Service) toDomainFilter(filter ListFilter) (invoice.Filter, error) {
	domainFilter := invoice.Filter{
		Search:    filter.Search,
		Customer:  filter.Customer,
		IssueFrom: filter.IssueFrom,
		IssueTo:   filter.IssueTo,
		DueFrom:   filter.DueFrom,
		DueTo:     filter.DueTo,
	}

	if filter.Status != nil {
		status := invoice.Status(*filter.Status)
		if !status.IsValid() {
			return invoice.Filter{}, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", *filter.Status))
		}
		domainFilter.Status = &status
	}

	domainFilter.Limit = filter.PageSize
	domainFilter.Normalize(defaultPageSize, maxPageSize)
	if filter.Page > 1 {
		domainFilter.Offset = (filter.Page - 1) * domainFilter.Limit
	}

	return domainFilter, nil
}
