package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientRecord(name string, amount float64) Record {
	return Record{CustomerName: name, TotalAmount: decimal.NewFromFloat(amount)}
}

func TestTopClients(t *testing.T) {
	t.Run("empty set yields no clients", func(t *testing.T) {
		assert.Empty(t, TopClients(nil, DefaultTopClients, ""))
	})

	t.Run("aggregates per client and sorts by value descending", func(t *testing.T) {
		records := []Record{
			clientRecord("Acme", 100),
			clientRecord("Globex", 500),
			clientRecord("Acme", 250),
		}

		clients := TopClients(records, DefaultTopClients, "")

		require.Len(t, clients, 2)
		assert.Equal(t, "Globex", clients[0].ClientName)
		assert.True(t, clients[0].Amount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, 1, clients[0].InvoiceCount)
		assert.Equal(t, "Acme", clients[1].ClientName)
		assert.True(t, clients[1].Amount.Equal(decimal.NewFromInt(350)))
		assert.Equal(t, 2, clients[1].InvoiceCount)
	})

	t.Run("ties keep first appearance order", func(t *testing.T) {
		records := []Record{
			clientRecord("Beta", 100),
			clientRecord("Alpha", 100),
			clientRecord("Gamma", 100),
		}

		clients := TopClients(records, DefaultTopClients, "")

		require.Len(t, clients, 3)
		assert.Equal(t, "Beta", clients[0].ClientName)
		assert.Equal(t, "Alpha", clients[1].ClientName)
		assert.Equal(t, "Gamma", clients[2].ClientName)
	})

	t.Run("truncates to the requested size", func(t *testing.T) {
		records := []Record{
			clientRecord("A", 600),
			clientRecord("B", 500),
			clientRecord("C", 400),
			clientRecord("D", 300),
			clientRecord("E", 200),
			clientRecord("F", 100),
		}

		clients := TopClients(records, DefaultTopClients, "")

		require.Len(t, clients, DefaultTopClients)
		assert.Equal(t, "E", clients[len(clients)-1].ClientName)
	})

	t.Run("flags the selected client", func(t *testing.T) {
		records := []Record{
			clientRecord("Acme", 100),
			clientRecord("Globex", 500),
		}

		clients := TopClients(records, DefaultTopClients, "Acme")

		require.Len(t, clients, 2)
		assert.False(t, clients[0].Selected)
		assert.True(t, clients[1].Selected)
	})

	t.Run("groups unnamed records under the unknown client", func(t *testing.T) {
		records := []Record{
			{CustomerName: UnknownClient, TotalAmount: decimal.NewFromInt(10)},
			{CustomerName: UnknownClient, TotalAmount: decimal.NewFromInt(20)},
		}

		clients := TopClients(records, DefaultTopClients, "")

		require.Len(t, clients, 1)
		assert.Equal(t, UnknownClient, clients[0].ClientName)
		assert.True(t, clients[0].Amount.Equal(decimal.NewFromInt(30)))
	})
}
