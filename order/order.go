// Package order holds the order model, its lifecycle state machine,
// the append-only lifecycle event log, and the open-order book the
// matching step works from.
package order

import "time"

// Side of an order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Status of an order. Transitions are one-way: OPEN moves to exactly
// one of FILLED, CANCELLED or EXPIRED; market orders are recorded
// already FILLED and never pass through OPEN.
type Status string

const (
	Open      Status = "OPEN"
	Filled    Status = "FILLED"
	Cancelled Status = "CANCELLED"
	Expired   Status = "EXPIRED"
)

// TIF is the time-in-force of a limit order.
type TIF string

const (
	GTC TIF = "GTC" // good till cancelled
	Day TIF = "DAY" // expires at trading-day end
)

// ValidTIF reports whether t is a recognized time-in-force.
func ValidTIF(t TIF) bool { return t == GTC || t == Day }

// Order is a single buy or sell order. Price is the price requested
// at submission; Limit is nil for market orders. FillPrice is set
// when the order fills (market orders fill at Price, limit orders at
// *Limit). Once terminal an order is never mutated again.
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	Quantity  float64
	Price     float64
	Limit     *float64
	TIF       TIF
	Status    Status
	CreatedAt time.Time
	ClosedAt  time.Time // zero while open
	FillPrice float64   // zero until filled
	Note      string
}

// Terminal reports whether the order has reached a final status.
func (o *Order) Terminal() bool { return o.Status != Open }

// Transition moves an open order to a terminal status at the given
// time. Calling it on an already terminal order is a programming
// error and reports false without mutating anything.
func (o *Order) Transition(to Status, at time.Time) bool {
	if o.Terminal() || to == Open {
		return false
	}
	o.Status = to
	o.ClosedAt = at
	return true
}

// BuyTriggers reports whether a limit buy triggers at price: the
// buyer never pays above the limit they set.
func (o *Order) BuyTriggers(price float64) bool {
	return o.Side == Buy && o.Limit != nil && price <= *o.Limit
}

// SellTriggers reports whether a limit sell triggers at price: the
// seller never sells below their floor.
func (o *Order) SellTriggers(price float64) bool {
	return o.Side == Sell && o.Limit != nil && price >= *o.Limit
}

// Triggers reports whether the order's limit condition is satisfied
// at price.
func (o *Order) Triggers(price float64) bool {
	return o.BuyTriggers(price) || o.SellTriggers(price)
}
