package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PaymentScore returns the share of invoiced monetary value that has been
// collected, as an integer percentage in [0,100].
//
// An empty set, or a set whose invoiced value sums to zero, scores 100:
// no invoiced value means no payment shortfall. Rounding is half away
// from zero.
func PaymentScore(records []Record) int {
	paid := decimal.Zero
	total := decimal.Zero

	for _, r := range records {
		total = total.Add(r.TotalAmount)
		if r.IsPaid() {
			paid = paid.Add(r.TotalAmount)
		}
	}

	if total.IsZero() {
		return 100
	}

	return int(paid.Div(total).Mul(hundred).Round(0).IntPart())
}

// PaidValue sums the total amount of paid records.
func PaidValue(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if r.IsPaid() {
			sum = sum.Add(r.TotalAmount)
		}
	}
	return sum
}

// OutstandingValue sums the total amount of records that are not paid.
func OutstandingValue(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if !r.IsPaid() {
			sum = sum.Add(r.TotalAmount)
		}
	}
	return sum
}
