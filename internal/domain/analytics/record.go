// Package analytics implements the invoice analytics engine: pure,
// deterministic computations over an in-memory snapshot of invoice records
// and an explicit evaluation instant supplied by the caller.
package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownClient is the sentinel grouping identity for records without a
// customer name.
const UnknownClient = "Unknown"

// StatusPaid is the normalized status label for fully paid invoices.
const StatusPaid = "PAID"

// dateLayouts are the accepted date representations, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// RawRecord mirrors the loosely-typed invoice payloads received from
// upstream sources. Every field is optional; Normalize resolves missing or
// malformed values to defined defaults instead of failing.
type RawRecord struct {
	ID           string
	CustomerName string
	TotalAmount  float64
	Status       string
	DueDate      string
	IssueDate    string
	CreatedAt    string
}

// Record is the strictly-typed invoice record the engine operates on.
// All downstream components may assume TotalAmount is finite and
// non-negative and CustomerName is non-empty.
type Record struct {
	ID           string
	CustomerName string
	TotalAmount  decimal.Decimal
	Status       string
	DueDate      *time.Time
	IssueDate    *time.Time
}

// Normalize converts a raw record into a Record. Invalid amounts become
// zero, an empty customer name becomes UnknownClient, and unparseable dates
// become absent. It never returns an error.
func Normalize(raw RawRecord) Record {
	amount := raw.TotalAmount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		amount = 0
	}

	name := strings.TrimSpace(raw.CustomerName)
	if name == "" {
		name = UnknownClient
	}

	issue := parseDate(raw.IssueDate)
	if issue == nil {
		issue = parseDate(raw.CreatedAt)
	}

	return Record{
		ID:           raw.ID,
		CustomerName: name,
		TotalAmount:  decimal.NewFromFloat(amount),
		Status:       strings.ToUpper(strings.TrimSpace(raw.Status)),
		DueDate:      parseDate(raw.DueDate),
		IssueDate:    issue,
	}
}

// NormalizeAll normalizes a snapshot of raw records, preserving order.
func NormalizeAll(raws []RawRecord) []Record {
	records := make([]Record, len(raws))
	for i, raw := range raws {
		records[i] = Normalize(raw)
	}
	return records
}

// IsPaid reports whether the record's stored status is Paid.
func (r Record) IsPaid() bool {
	return r.Status == StatusPaid
}

// OverdueAt reports whether the record is overdue at the given instant,
// using the derived rule: not paid and due date strictly before now.
// Records without a due date are never overdue.
func (r Record) OverdueAt(now time.Time) bool {
	return !r.IsPaid() && r.DueDate != nil && r.DueDate.Before(now)
}

// parseDate parses a date string, returning nil when absent or malformed.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
