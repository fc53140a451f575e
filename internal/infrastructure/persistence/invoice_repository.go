package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/invoicedash/backend/internal/domain/analytics"
	"github.com/invoicedash/backend/internal/domain/invoice"
	"github.com/invoicedash/backend/internal/domain/shared"
	"github.com/invoicedash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements invoice.Repository using GORM. It also
// serves the analytics snapshot used by the dashboard.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its invoice number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("invoice_number = ?", invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter invoice.Filter) ([]invoice.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	query = query.Order(r.orderClause(filter))

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]invoice.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Count returns the number of invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter invoice.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence atomically advances and returns the invoice sequence for a year
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, year int) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO invoice_sequences (year, last_seq)
		VALUES (?, 1)
		ON CONFLICT (year)
		DO UPDATE SET last_seq = invoice_sequences.last_seq + 1
		RETURNING last_seq`, year).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(inv)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Snapshot loads every invoice as a raw analytics record. Dates travel as
// strings so the engine's normalization policy applies uniformly to data
// from any source.
func (r *GormInvoiceRepository) Snapshot(ctx context.Context) ([]analytics.RawRecord, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Order("issue_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	records := make([]analytics.RawRecord, len(invoiceModels))
	for i, m := range invoiceModels {
		amount, _ := m.TotalAmount.Float64()
		records[i] = analytics.RawRecord{
			ID:           m.ID.String(),
			CustomerName: m.CustomerName,
			TotalAmount:  amount,
			Status:       string(m.Status),
			DueDate:      formatDate(m.DueDate),
			IssueDate:    m.IssueDate.Format(time.RFC3339),
			CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		}
	}
	return records, nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter invoice.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Customer != "" {
		query = query.Where("customer_name ILIKE ?", "%"+filter.Customer+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"invoice_number ILIKE ? OR customer_name ILIKE ? OR notes ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.IssueFrom != nil {
		query = query.Where("issue_date >= ?", *filter.IssueFrom)
	}
	if filter.IssueTo != nil {
		query = query.Where("issue_date <= ?", *filter.IssueTo)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	return query
}

func (r *GormInvoiceRepository) orderClause(filter invoice.Filter) string {
	column := ValidateSortField(filter.SortBy, InvoiceSortFields, "issue_date")
	if filter.SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
