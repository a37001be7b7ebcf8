// Package position maintains the derived per-symbol holdings view:
// quantity, weighted average cost, and the share quantity reserved by
// open limit sells. The view is derived state; it can always be
// rebuilt from the order lifecycle log and must never drift from it.
package position

import "github.com/rustyeddy/papertrader/order"

// Position is the holdings in one symbol. Quantity never goes
// negative; Reserved is the portion of Quantity committed to open
// limit sells and unavailable for another close.
type Position struct {
	Symbol      string
	Quantity    float64
	AverageCost float64
	Reserved    float64
}

// Available is the quantity not reserved by open limit sells.
func (p Position) Available() float64 { return p.Quantity - p.Reserved }

// View is the derived positions map. Not goroutine safe; the owning
// engine serializes access.
type View struct {
	positions map[string]*Position
}

func NewView() *View {
	return &View{positions: make(map[string]*Position)}
}

// ApplyBuy folds a buy fill into the view using a quantity-weighted
// running average cost.
func (v *View) ApplyBuy(symbol string, qty, price float64) {
	p, ok := v.positions[symbol]
	if !ok {
		v.positions[symbol] = &Position{Symbol: symbol, Quantity: qty, AverageCost: price}
		return
	}
	total := p.AverageCost*p.Quantity + price*qty
	p.Quantity += qty
	if p.Quantity > 0 {
		p.AverageCost = total / p.Quantity
	}
}

// ApplySell reduces the held quantity. Average cost is unchanged;
// the caller realizes P&L against it. Reports false when qty exceeds
// the held quantity.
func (v *View) ApplySell(symbol string, qty float64) bool {
	p, ok := v.positions[symbol]
	if !ok || p.Quantity < qty {
		return false
	}
	p.Quantity -= qty
	return true
}

// Reserve marks qty shares as committed to an open limit sell.
// Reports false when qty exceeds the available quantity.
func (v *View) Reserve(symbol string, qty float64) bool {
	p, ok := v.positions[symbol]
	if !ok || p.Available() < qty {
		return false
	}
	p.Reserved += qty
	return true
}

// Release returns reserved shares to the available quantity.
func (v *View) Release(symbol string, qty float64) {
	p, ok := v.positions[symbol]
	if !ok {
		return
	}
	p.Reserved -= qty
	if p.Reserved < 0 {
		p.Reserved = 0
	}
}

// Get returns the position for symbol and whether one exists. The
// returned value is a copy; callers cannot mutate the view.
func (v *View) Get(symbol string) (Position, bool) {
	p, ok := v.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Available is the unreserved held quantity for symbol, zero when the
// symbol is not held.
func (v *View) Available(symbol string) float64 {
	p, ok := v.positions[symbol]
	if !ok {
		return 0
	}
	return p.Available()
}

// All returns a copy of every position, including fully closed ones
// (quantity zero), which the symbol queries distinguish from open
// holdings.
func (v *View) All() []Position {
	out := make([]Position, 0, len(v.positions))
	for _, p := range v.positions {
		out = append(out, *p)
	}
	return out
}

// Rebuild recomputes the whole view from an order lifecycle log.
// Only fills move holdings; reservations are transient and belong to
// whatever orders are still open, so they are not reconstructed here.
func Rebuild(events []order.Event) *View {
	v := NewView()
	for _, e := range events {
		if e.Type != order.EventFill {
			continue
		}
		switch e.Side {
		case order.Buy:
			v.ApplyBuy(e.Symbol, e.Quantity, e.Price)
		case order.Sell:
			v.ApplySell(e.Symbol, e.Quantity)
		}
	}
	return v
}
