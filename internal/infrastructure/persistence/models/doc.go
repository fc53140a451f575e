// Package models contains the GORM persistence models that map domain
// entities to database tables. Keeping them here leaves the domain layer
// free of ORM tags.
//
// base.go holds BaseModel, the shared id/timestamp columns, with mappers
// to and from the domain's BaseEntity. invoice.go holds InvoiceModel for
// the invoices table, including the lifecycle timestamps (sent, paid,
// cancelled) and the stored PDF object key. Repositories convert through
// these models at their boundaries and never hand them to callers.
package models
