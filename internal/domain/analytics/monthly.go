package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWindowMonths is the trailing window used when the caller does not
// request a specific width.
const DefaultWindowMonths = 6

// MonthBucket is one calendar-month slice of the trailing series.
type MonthBucket struct {
	Label        string          `json:"label"`
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
	PaidCount    int             `json:"paid_count"`
	OverdueCount int             `json:"overdue_count"`
}

// MonthlySeries partitions records into the trailing windowMonths calendar
// months ending in the month containing now, ordered oldest first. The
// result always has exactly windowMonths entries; empty months are
// zero-filled rather than omitted.
//
// A record is assigned to the bucket its issue date falls in. Revenue sums
// paid records only; InvoiceCount counts every status; OverdueCount counts
// records issued in the bucket that are overdue at now, regardless of which
// month the due date falls in. Records with no issue date are excluded from
// every bucket.
func MonthlySeries(records []Record, now time.Time, windowMonths int) []MonthBucket {
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}

	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(windowMonths - 1), 0)

	buckets := make([]MonthBucket, windowMonths)
	for i := range buckets {
		start := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{
			Label:   start.Format("Jan 2006"),
			Year:    start.Year(),
			Month:   start.Month(),
			Revenue: decimal.Zero,
		}
	}

	for _, r := range records {
		if r.IssueDate == nil {
			continue
		}
		issued := r.IssueDate.In(loc)
		idx := monthsBetween(first, issued)
		if idx < 0 || idx >= windowMonths {
			continue
		}

		b := &buckets[idx]
		b.InvoiceCount++
		if r.IsPaid() {
			b.PaidCount++
			b.Revenue = b.Revenue.Add(r.TotalAmount)
		}
		if r.OverdueAt(now) {
			b.OverdueCount++
		}
	}

	return buckets
}

// monthsBetween returns the number of whole calendar months from the month
// of start to the month of t. Negative when t is earlier.
func monthsBetween(start, t time.Time) int {
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}
