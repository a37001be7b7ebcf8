package sim

import (
	"sort"
	"time"

	"github.com/rustyeddy/papertrader/account"
	"github.com/rustyeddy/papertrader/order"
	"github.com/rustyeddy/papertrader/position"
)

// PNL is a profit/loss figure as both an absolute value and a percent
// of the basis.
type PNL struct {
	Value   float64
	Percent float64
}

// Holding is one row of the portfolio report.
type Holding struct {
	Symbol              string
	Quantity            float64
	AverageCost         float64
	Price               float64
	MarketValue         float64
	UnrealizedPL        float64
	UnrealizedPLPercent float64
}

// SymbolTarget selects which class of symbols Symbols returns.
type SymbolTarget string

const (
	SymbolsAll    SymbolTarget = "all"    // touched by any order
	SymbolsOpen   SymbolTarget = "open"   // held quantity > 0
	SymbolsClosed SymbolTarget = "closed" // previously held, now zero
	SymbolsLimit  SymbolTarget = "limit"  // has at least one open limit order
)

// Balance is the total cash balance, reserved funds included.
func (e *Engine) Balance() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Balance()
}

// Available is the cash balance minus funds reserved by open limit
// buys.
func (e *Engine) Available() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Available()
}

// Transactions returns the full cash ledger, oldest first.
func (e *Engine) Transactions() []account.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Transactions()
}

// RealizedPL is the running profit/loss locked in by closes.
func (e *Engine) RealizedPL() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.realized
}

// PortfolioValue is the market value of all held positions at their
// latest observed prices. A symbol with no observed price contributes
// zero and is logged as stale.
func (e *Engine) PortfolioValue() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.portfolioValueLocked()
}

func (e *Engine) portfolioValueLocked() float64 {
	var total float64
	for _, p := range e.positions.All() {
		if p.Quantity <= 0 {
			continue
		}
		q, err := e.quotes.Get(p.Symbol)
		if err != nil {
			e.logger.Warn("no price observed, symbol excluded from valuation", "symbol", p.Symbol)
			continue
		}
		total += p.Quantity * q.Price
	}
	return total
}

// AccountValue is cash balance plus portfolio value.
func (e *Engine) AccountValue() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Balance() + e.portfolioValueLocked()
}

// AccountPNL is the account value measured against the starting
// balance captured at construction. Percent is zero when the basis
// is zero.
func (e *Engine) AccountPNL() PNL {
	e.mu.RLock()
	defer e.mu.RUnlock()

	value := e.ledger.Balance() + e.portfolioValueLocked() - e.basis
	pnl := PNL{Value: value}
	if e.basis != 0 {
		pnl.Percent = value / e.basis * 100
	}
	return pnl
}

// Portfolio reports every held position with its valuation and
// unrealized P&L, sorted by symbol. Symbols with no observed price
// report a zero price and market value.
func (e *Engine) Portfolio() []Holding {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []Holding
	for _, p := range e.positions.All() {
		if p.Quantity <= 0 {
			continue
		}

		h := Holding{
			Symbol:      p.Symbol,
			Quantity:    p.Quantity,
			AverageCost: p.AverageCost,
		}
		if q, err := e.quotes.Get(p.Symbol); err == nil {
			h.Price = q.Price
			h.MarketValue = p.Quantity * q.Price
			h.UnrealizedPL = (q.Price - p.AverageCost) * p.Quantity
			if basis := p.AverageCost * p.Quantity; basis != 0 {
				h.UnrealizedPLPercent = h.UnrealizedPL / basis * 100
			}
		} else {
			e.logger.Warn("no price observed, symbol excluded from valuation", "symbol", p.Symbol)
		}
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Position returns the holdings in one symbol.
func (e *Engine) Position(symbol string) (position.Position, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.positions.Get(symbol)
}

// Symbols returns the unique symbols in the requested class, sorted.
func (e *Engine) Symbols(target SymbolTarget) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	set := make(map[string]struct{})
	switch target {
	case SymbolsAll:
		for _, o := range e.orders {
			set[o.Symbol] = struct{}{}
		}
	case SymbolsOpen:
		for _, p := range e.positions.All() {
			if p.Quantity > 0 {
				set[p.Symbol] = struct{}{}
			}
		}
	case SymbolsClosed:
		for _, p := range e.positions.All() {
			if p.Quantity == 0 {
				set[p.Symbol] = struct{}{}
			}
		}
	case SymbolsLimit:
		for _, o := range e.book.Snapshot() {
			set[o.Symbol] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// OpenLimitOrders returns the currently open limit orders in
// placement order.
func (e *Engine) OpenLimitOrders() []order.Order {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := e.book.Snapshot()
	out := make([]order.Order, 0, len(snap))
	for _, o := range snap {
		out = append(out, *o)
	}
	return out
}

// Orders returns every order ever created, in creation order.
func (e *Engine) Orders() []order.Order {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]order.Order, 0, len(e.orders))
	for _, o := range e.orders {
		out = append(out, *o)
	}
	return out
}

// Events returns the append-only order lifecycle log.
func (e *Engine) Events() []order.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Events()
}

// LastTick is the timestamp of the most recent Tick call, zero before
// the first.
func (e *Engine) LastTick() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastTick
}
