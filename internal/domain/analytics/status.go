package analytics

import "time"

// StatusDistribution partitions an invoice set into three disjoint,
// exhaustive buckets at a single evaluation instant. Overdue uses the
// derived rule (due date strictly before now and not paid); the stored
// OVERDUE label is display-only and does not influence the partition.
type StatusDistribution struct {
	Paid    int `json:"paid"`
	Unpaid  int `json:"unpaid"`
	Overdue int `json:"overdue"`
}

// Total returns the sum of all three buckets. For every input set this
// equals the record count.
func (d StatusDistribution) Total() int {
	return d.Paid + d.Unpaid + d.Overdue
}

// Distribution classifies every record into exactly one bucket:
// Paid when the stored status is Paid, Overdue when unpaid with a due date
// strictly before now, Unpaid otherwise (including unpaid records without
// a due date).
func Distribution(records []Record, now time.Time) StatusDistribution {
	var d StatusDistribution
	for _, r := range records {
		switch {
		case r.IsPaid():
			d.Paid++
		case r.OverdueAt(now):
			d.Overdue++
		default:
			d.Unpaid++
		}
	}
	return d
}
