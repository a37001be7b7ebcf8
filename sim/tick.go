package sim

import (
	"fmt"
	"time"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/order"
)

// tickAction is one planned state change, produced by the read-only
// evaluation pass and applied by the commit pass.
type tickAction struct {
	o      *order.Order
	expire bool // false means fill at the order's limit price
}

// Tick processes one market observation: prices maps each symbol to
// its latest trade price, at is the current timestamp. Every open
// order is evaluated in placement order against a snapshot of the
// book; an order whose symbol is absent from prices is untouched this
// tick. Triggered orders fill their entire quantity at their limit
// price, and unfilled DAY orders from an earlier date expire when the
// tick's date differs from the previous tick's. The whole pass is
// evaluated before anything is committed.
func (e *Engine) Tick(prices map[string]float64, at time.Time) error {
	for sym, p := range prices {
		if p <= 0 {
			return fmt.Errorf("tick price %v for %s: %w", p, sym, ErrInvalidParameters)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	newDay := !e.lastTick.IsZero() && !sameDate(e.lastTick, at)

	// Evaluation pass: read-only over the snapshot. An order whose
	// symbol carries no price this tick is skipped entirely, expiry
	// included.
	var actions []tickAction
	for _, o := range e.book.Snapshot() {
		if o.Terminal() {
			continue
		}

		price, ok := prices[o.Symbol]
		if !ok {
			continue
		}
		if o.Triggers(price) {
			actions = append(actions, tickAction{o: o})
			continue
		}
		if o.TIF == order.Day && newDay && dayBefore(o.CreatedAt, at) {
			actions = append(actions, tickAction{o: o, expire: true})
		}
	}

	// Commit pass.
	var firstErr error
	for _, a := range actions {
		if a.expire {
			e.cancelLocked(a.o, order.Expired, at, "DAY order expired at day boundary")
			continue
		}
		if err := e.fillLimitLocked(a.o, at); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// Latest prices feed the valuator regardless of fills.
	for sym, p := range prices {
		e.quotes.Set(market.Quote{Symbol: sym, Price: p, Time: at})
	}
	e.lastTick = at

	return firstErr
}

// fillLimitLocked executes an open limit order in full at its limit
// price, consuming the reservation made at placement. Because the
// funds or shares were reserved, the fill itself cannot be rejected.
func (e *Engine) fillLimitLocked(o *order.Order, at time.Time) error {
	limit := *o.Limit
	amount := limit * o.Quantity

	var err error
	switch o.Side {
	case order.Buy:
		e.ledger.Release(amount)
		txn, derr := e.ledger.Debit(amount, fmt.Sprintf("limit buy %v %s at %v", o.Quantity, o.Symbol, limit), at)
		if derr != nil {
			return derr
		}
		e.positions.ApplyBuy(o.Symbol, o.Quantity, limit)
		err = e.journal.RecordTransaction(txnRecord(txn))

	case order.Sell:
		pos, _ := e.positions.Get(o.Symbol)
		e.positions.Release(o.Symbol, o.Quantity)
		e.positions.ApplySell(o.Symbol, o.Quantity)
		e.realized += (limit - pos.AverageCost) * o.Quantity
		txn, cerr := e.ledger.Credit(amount, fmt.Sprintf("limit sell %v %s at %v", o.Quantity, o.Symbol, limit), at)
		if cerr != nil {
			return cerr
		}
		err = e.journal.RecordTransaction(txnRecord(txn))
	}

	o.Transition(order.Filled, at)
	o.FillPrice = limit
	e.book.Remove(o.ID)
	e.log.Append(order.Event{
		Time: at, Type: order.EventFill, OrderID: o.ID,
		Symbol: o.Symbol, Side: o.Side, Quantity: o.Quantity, Price: limit, Note: o.Note,
	})

	e.logger.Info("limit order filled", "symbol", o.Symbol, "side", o.Side, "qty", o.Quantity, "limit", limit)

	if jerr := e.journal.RecordOrder(orderRecord(o)); err == nil {
		err = jerr
	}
	return err
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dayBefore reports whether a falls on an earlier calendar date
// than b.
func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
