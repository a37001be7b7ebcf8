package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/papertrader/order"
)

func TestWeightedAverageCost(t *testing.T) {
	t.Parallel()

	v := NewView()
	v.ApplyBuy("AAPL", 10, 100)

	p, ok := v.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, 10.0, p.Quantity)
	assert.Equal(t, 100.0, p.AverageCost)

	// 10@100 + 10@200 -> 20@150
	v.ApplyBuy("AAPL", 10, 200)
	p, _ = v.Get("AAPL")
	assert.Equal(t, 20.0, p.Quantity)
	assert.Equal(t, 150.0, p.AverageCost)
}

func TestSellLeavesAverageCost(t *testing.T) {
	t.Parallel()

	v := NewView()
	v.ApplyBuy("AAPL", 10, 100)

	assert.True(t, v.ApplySell("AAPL", 4))
	p, _ := v.Get("AAPL")
	assert.Equal(t, 6.0, p.Quantity)
	assert.Equal(t, 100.0, p.AverageCost)

	// Selling more than held fails outright, no partial reduction.
	assert.False(t, v.ApplySell("AAPL", 7))
	p, _ = v.Get("AAPL")
	assert.Equal(t, 6.0, p.Quantity)

	assert.False(t, v.ApplySell("MSFT", 1))
}

func TestReserveShares(t *testing.T) {
	t.Parallel()

	v := NewView()
	v.ApplyBuy("AAPL", 10, 100)

	assert.True(t, v.Reserve("AAPL", 6))
	assert.Equal(t, 4.0, v.Available("AAPL"))

	// Reserved shares are unavailable for a second reservation.
	assert.False(t, v.Reserve("AAPL", 5))

	v.Release("AAPL", 6)
	assert.Equal(t, 10.0, v.Available("AAPL"))

	// Release never drives the reservation negative.
	v.Release("AAPL", 3)
	p, _ := v.Get("AAPL")
	assert.Equal(t, 0.0, p.Reserved)

	assert.False(t, v.Reserve("MSFT", 1))
	assert.Equal(t, 0.0, v.Available("MSFT"))
}

func TestRebuildMatchesIncremental(t *testing.T) {
	t.Parallel()

	events := []order.Event{
		{Type: order.EventCreate, Symbol: "AAPL", Side: order.Buy, Quantity: 5, Price: 90},
		{Type: order.EventFill, Symbol: "AAPL", Side: order.Buy, Quantity: 10, Price: 100},
		{Type: order.EventFill, Symbol: "AAPL", Side: order.Buy, Quantity: 10, Price: 200},
		{Type: order.EventFill, Symbol: "AAPL", Side: order.Sell, Quantity: 5, Price: 180},
		{Type: order.EventCancel, Symbol: "AAPL", Side: order.Buy, Quantity: 3, Price: 50},
		{Type: order.EventFill, Symbol: "GOOG", Side: order.Buy, Quantity: 1, Price: 2750},
	}

	v := Rebuild(events)

	aapl, ok := v.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, 15.0, aapl.Quantity)
	assert.Equal(t, 150.0, aapl.AverageCost)

	goog, ok := v.Get("GOOG")
	assert.True(t, ok)
	assert.Equal(t, 1.0, goog.Quantity)

	assert.Len(t, v.All(), 2)
}
