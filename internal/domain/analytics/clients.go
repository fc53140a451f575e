package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopClients is the ranking size used when the caller does not
// request a specific limit.
const DefaultTopClients = 5

// ClientAggregate is one client's revenue summary in the ranking.
// Selected marks the entry matching the currently-selected invoice's
// client so the presentation layer can highlight it.
type ClientAggregate struct {
	ClientName   string          `json:"client_name"`
	Amount       decimal.Decimal `json:"amount"`
	InvoiceCount int             `json:"invoice_count"`
	Selected     bool            `json:"selected"`
}

// TopClients groups records by customer name, sums amounts and counts, and
// returns the top n clients by amount in descending order. Ties keep the
// order in which the clients first appear in the input, so the ranking is
// deterministic for a given snapshot. selectedClient, when non-empty, flags
// the matching aggregate.
func TopClients(records []Record, n int, selectedClient string) []ClientAggregate {
	if n <= 0 {
		n = DefaultTopClients
	}

	index := make(map[string]int, len(records))
	aggregates := make([]ClientAggregate, 0, len(records))

	for _, r := range records {
		i, ok := index[r.CustomerName]
		if !ok {
			i = len(aggregates)
			index[r.CustomerName] = i
			aggregates = append(aggregates, ClientAggregate{
				ClientName: r.CustomerName,
				Amount:     decimal.Zero,
				Selected:   r.CustomerName == selectedClient,
			})
		}
		aggregates[i].Amount = aggregates[i].Amount.Add(r.TotalAmount)
		aggregates[i].InvoiceCount++
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Amount.GreaterThan(aggregates[j].Amount)
	})

	if len(aggregates) > n {
		aggregates = aggregates[:n]
	}
	return aggregates
}
