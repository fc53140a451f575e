package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InsightCategory labels the kind of qualitative statement an insight
// carries, so the presentation layer can style them independently.
type InsightCategory string

const (
	InsightPaymentPattern InsightCategory = "PAYMENT_PATTERN"
	InsightRevenueImpact  InsightCategory = "REVENUE_IMPACT"
	InsightActionRequired InsightCategory = "ACTION_REQUIRED"
	InsightFollowUp       InsightCategory = "FOLLOW_UP"
)

// Insight is a human-readable statement derived from already-computed
// figures. Composition is pure formatting; no aggregation happens here.
type Insight struct {
	Category InsightCategory `json:"category"`
	Text     string          `json:"text"`
}

// ComposeInsights derives qualitative statements about the selected
// invoice's client from the snapshot. A nil selected invoice yields no
// insights. Both division-by-zero cases are defended: a client with zero
// invoices reports a 0% on-time rate, and a client with zero revenue
// reports a 0% revenue share.
func ComposeInsights(records []Record, selected *Record, now time.Time) []Insight {
	if selected == nil {
		return nil
	}

	var (
		clientCount  int
		clientPaid   int
		clientAmount = decimal.Zero
	)
	for _, r := range records {
		if r.CustomerName != selected.CustomerName {
			continue
		}
		clientCount++
		clientAmount = clientAmount.Add(r.TotalAmount)
		if r.IsPaid() {
			clientPaid++
		}
	}

	insights := make([]Insight, 0, 4)

	onTime := percentOfCount(clientPaid, clientCount)
	pattern := "concerning"
	if clientCount > 0 && float64(clientPaid)/float64(clientCount) > 0.7 {
		pattern = "good"
	}
	insights = append(insights, Insight{
		Category: InsightPaymentPattern,
		Text: fmt.Sprintf("%s has a %s payment history with %d%% of invoices paid on time.",
			selected.CustomerName, pattern, onTime),
	})

	share := percentOfValue(selected.TotalAmount, clientAmount)
	avg := decimal.Zero
	if clientCount > 0 {
		avg = clientAmount.Div(decimal.NewFromInt(int64(clientCount)))
	}
	insights = append(insights, Insight{
		Category: InsightRevenueImpact,
		Text: fmt.Sprintf("This invoice represents %d%% of total revenue from %s, with an average invoice value of $%s.",
			share, selected.CustomerName, avg.StringFixed(2)),
	})

	switch {
	case selected.OverdueAt(now):
		insights = append(insights, Insight{
			Category: InsightActionRequired,
			Text:     "This invoice is overdue. Consider sending a payment reminder or contacting the client directly to resolve payment delays.",
		})
	case !selected.IsPaid() && selected.DueDate != nil:
		insights = append(insights, Insight{
			Category: InsightFollowUp,
			Text:     "Invoice is approaching due date. Consider sending a friendly reminder to ensure timely payment.",
		})
	}

	return insights
}

// percentOfCount returns round(100*part/total), or 0 when total is zero.
func percentOfCount(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).Round(0).IntPart())
}

// percentOfValue returns round(100*part/total), or 0 when total is zero.
func percentOfValue(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(part.Div(total).Mul(hundred).Round(0).IntPart())
}
