package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func scoreRecord(amount float64, status string) Record {
	return Record{TotalAmount: decimal.NewFromFloat(amount), Status: status}
}

func TestPaymentScore(t *testing.T) {
	t.Run("empty set scores a perfect hundred", func(t *testing.T) {
		assert.Equal(t, 100, PaymentScore(nil))
	})

	t.Run("zero total value scores a perfect hundred", func(t *testing.T) {
		records := []Record{scoreRecord(0, "SENT"), scoreRecord(0, StatusPaid)}
		assert.Equal(t, 100, PaymentScore(records))
	})

	t.Run("all paid scores a hundred", func(t *testing.T) {
		records := []Record{scoreRecord(100, StatusPaid), scoreRecord(250, StatusPaid)}
		assert.Equal(t, 100, PaymentScore(records))
	})

	t.Run("none paid scores zero", func(t *testing.T) {
		records := []Record{scoreRecord(100, "SENT"), scoreRecord(250, "OVERDUE")}
		assert.Equal(t, 0, PaymentScore(records))
	})

	t.Run("rounds the paid ratio to the nearest integer", func(t *testing.T) {
		// 100 / 600 = 16.66..., rounds to 17.
		records := []Record{
			scoreRecord(100, StatusPaid),
			scoreRecord(200, "SENT"),
			scoreRecord(300, "SENT"),
		}
		assert.Equal(t, 17, PaymentScore(records))
	})

	t.Run("weights by value not by count", func(t *testing.T) {
		// One paid invoice carrying 90% of the value.
		records := []Record{
			scoreRecord(900, StatusPaid),
			scoreRecord(50, "SENT"),
			scoreRecord(50, "SENT"),
		}
		assert.Equal(t, 90, PaymentScore(records))
	})
}

func TestPaidAndOutstandingValue(t *testing.T) {
	records := []Record{
		scoreRecord(100, StatusPaid),
		scoreRecord(200, "SENT"),
		scoreRecord(300, "OVERDUE"),
	}

	assert.True(t, PaidValue(records).Equal(decimal.NewFromInt(100)))
	assert.True(t, OutstandingValue(records).Equal(decimal.NewFromInt(500)))
}
