package analytics

import (
	"time"

	"github.com/invoicedash/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// DashboardRequest represents the dashboard query parameters
type DashboardRequest struct {
	SelectedID string `form:"selected_id"`
	Months     int    `form:"months"`
	Top        int    `form:"top"`
}

// RiskResponse represents the risk assessment of the selected invoice
type RiskResponse struct {
	Tier            string `json:"tier"`
	DaysOutstanding int    `json:"days_outstanding"`
}

// MonthPoint represents one month in the revenue series
type MonthPoint struct {
	Label        string          `json:"label"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
	PaidCount    int             `json:"paid_count"`
	OverdueCount int             `json:"overdue_count"`
}

// ClientEntry represents one client in the top-client ranking
type ClientEntry struct {
	ClientName   string          `json:"client_name"`
	Amount       decimal.Decimal `json:"amount"`
	InvoiceCount int             `json:"invoice_count"`
	Selected     bool            `json:"selected"`
}

// DistributionResponse represents the status distribution
type DistributionResponse struct {
	Paid    int `json:"paid"`
	Unpaid  int `json:"unpaid"`
	Overdue int `json:"overdue"`
	Total   int `json:"total"`
}

// TotalsResponse represents the monetary totals of the snapshot
type TotalsResponse struct {
	PaidValue        decimal.Decimal `json:"paid_value"`
	OutstandingValue decimal.Decimal `json:"outstanding_value"`
	InvoiceCount     int             `json:"invoice_count"`
}

// InsightResponse represents one qualitative insight
type InsightResponse struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Dashboard is the composed analytics response
type Dashboard struct {
	PaymentScore int                  `json:"payment_score"`
	SelectedRisk *RiskResponse        `json:"selected_risk,omitempty"`
	Monthly      []MonthPoint         `json:"monthly"`
	TopClients   []ClientEntry        `json:"top_clients"`
	Distribution DistributionResponse `json:"distribution"`
	Totals       TotalsResponse       `json:"totals"`
	Insights     []InsightResponse    `json:"insights,omitempty"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

func toMonthPoints(series []analytics.MonthBucket) []MonthPoint {
	points := make([]MonthPoint, 0, len(series))
	for _, b := range series {
		points = append(points, MonthPoint{
			Label:        b.Label,
			Year:         b.Year,
			Month:        int(b.Month),
			Revenue:      b.Revenue,
			InvoiceCount: b.InvoiceCount,
			PaidCount:    b.PaidCount,
			OverdueCount: b.OverdueCount,
		})
	}
	return points
}

func toClientEntries(clients []analytics.ClientAggregate) []ClientEntry {
	entries := make([]ClientEntry, 0, len(clients))
	for _, c := range clients {
		entries = append(entries, ClientEntry{
			ClientName:   c.ClientName,
			Amount:       c.Amount,
			InvoiceCount: c.InvoiceCount,
			Selected:     c.Selected,
		})
	}
	return entries
}

func toInsightResponses(insights []analytics.Insight) []InsightResponse {
	if len(insights) == 0 {
		return nil
	}
	out := make([]InsightResponse, 0, len(insights))
	for _, in := range insights {
		out = append(out, InsightResponse{Category: string(in.Category), Text: in.Text})
	}
	return out
}
