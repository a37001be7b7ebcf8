// Package sim is the paper-trading engine: a virtual cash account and
// security positions, market and limit orders executed against an
// externally supplied stream of price ticks, and consistent valuation
// and P&L reporting on top.
//
// The engine is single-writer: one logical caller drives the mutating
// operations sequentially. A mutex serializes mutations so the engine
// can be embedded in a concurrent host; read-only getters share a
// read lock and never observe a ledger mid-mutation.
package sim

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rustyeddy/papertrader/account"
	"github.com/rustyeddy/papertrader/config"
	"github.com/rustyeddy/papertrader/internal/id"
	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/order"
	"github.com/rustyeddy/papertrader/position"
)

type Engine struct {
	mu        sync.RWMutex
	ledger    *account.Ledger
	log       *order.Log
	book      *order.Book
	orders    []*order.Order // every order ever created, in creation order
	positions *position.View
	quotes    *market.QuoteStore
	journal   journal.Journal
	logger    *slog.Logger

	basis    float64 // starting balance, captured once for account P&L
	realized float64 // running realized P&L from closes
	lastTick time.Time
}

// New builds an engine with the given starting balance, recorded as
// the opening credit transaction. The journal may be nil for no
// persistence.
func New(startingBalance float64, j journal.Journal) (*Engine, error) {
	if startingBalance < 0 {
		return nil, fmt.Errorf("starting balance %.2f: %w", startingBalance, ErrInvalidParameters)
	}
	if j == nil {
		j = journal.Noop{}
	}

	e := &Engine{
		ledger:    account.NewLedger(),
		log:       order.NewLog(),
		book:      order.NewBook(),
		positions: position.NewView(),
		quotes:    market.NewQuoteStore(),
		journal:   j,
		logger:    slog.Default(),
		basis:     startingBalance,
	}

	if startingBalance > 0 {
		txn, err := e.ledger.Credit(startingBalance, "opening balance", time.Now())
		if err != nil {
			return nil, err
		}
		if err := e.journal.RecordTransaction(txnRecord(txn)); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// NewFromConfig builds an engine and its journal from a validated
// configuration.
func NewFromConfig(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	j, err := journal.Open(cfg.Journal.Format, cfg.Journal.Dir)
	if err != nil {
		return nil, err
	}
	e, err := New(cfg.Account.StartingBalance, j)
	if err != nil {
		j.Close()
		return nil, err
	}
	return e, nil
}

// SetLogger replaces the engine's logger (slog.Default otherwise).
func (e *Engine) SetLogger(l *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l != nil {
		e.logger = l
	}
}

// CloseJournal flushes and closes the underlying journal.
func (e *Engine) CloseJournal() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.Close()
}

// Credit deposits cash into the account.
func (e *Engine) Credit(amount float64, note string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn, err := e.ledger.Credit(amount, note, at)
	if err != nil {
		return err
	}
	e.logger.Info("credit", "amount", amount, "balance", e.ledger.Balance())
	return e.journal.RecordTransaction(txnRecord(txn))
}

// Debit withdraws cash from the account, failing without state change
// when the available balance cannot cover it.
func (e *Engine) Debit(amount float64, note string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn, err := e.ledger.Debit(amount, note, at)
	if err != nil {
		e.logger.Warn("debit rejected", "amount", amount, "available", e.ledger.Available())
		return err
	}
	e.logger.Info("debit", "amount", amount, "balance", e.ledger.Balance())
	return e.journal.RecordTransaction(txnRecord(txn))
}

// Buy purchases qty shares of symbol. With limit nil it fills
// immediately at price, requiring price*qty of available cash. With
// limit set it places an OPEN limit order and reserves limit*qty of
// cash until the order fills, cancels or expires.
func (e *Engine) Buy(symbol string, at time.Time, price, qty float64, note string, limit *float64, tif order.TIF) (order.Order, error) {
	if err := validateOrderParams(symbol, price, qty, limit, tif); err != nil {
		return order.Order{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if limit != nil {
		return e.placeLimitLocked(order.Buy, symbol, at, price, qty, note, *limit, tif)
	}

	cost := price * qty
	txn, err := e.ledger.Debit(cost, fmt.Sprintf("buy %v %s at %v", qty, symbol, price), at)
	if err != nil {
		e.logger.Warn("buy rejected", "symbol", symbol, "cost", cost, "available", e.ledger.Available())
		return order.Order{}, fmt.Errorf("buy %s: %w", symbol, err)
	}

	e.positions.ApplyBuy(symbol, qty, price)
	e.quotes.Set(market.Quote{Symbol: symbol, Price: price, Time: at})

	o := &order.Order{
		ID:        id.New(),
		Symbol:    symbol,
		Side:      order.Buy,
		Quantity:  qty,
		Price:     price,
		TIF:       tif,
		Status:    order.Filled,
		CreatedAt: at,
		ClosedAt:  at,
		FillPrice: price,
		Note:      note,
	}
	e.orders = append(e.orders, o)
	e.log.Append(order.Event{
		Time: at, Type: order.EventFill, OrderID: o.ID,
		Symbol: symbol, Side: order.Buy, Quantity: qty, Price: price, Note: note,
	})

	e.logger.Info("buy filled", "symbol", symbol, "qty", qty, "price", price, "balance", e.ledger.Balance())

	if err := e.journal.RecordTransaction(txnRecord(txn)); err != nil {
		return *o, err
	}
	return *o, e.journal.RecordOrder(orderRecord(o))
}

// Close sells qty shares of symbol. With limit nil it fills
// immediately at price, requiring qty unreserved held shares; the
// proceeds are credited and (price - averageCost)*qty is realized.
// With limit set it places an OPEN limit sell and reserves the shares
// against a second concurrent close.
func (e *Engine) Close(symbol string, at time.Time, price, qty float64, note string, limit *float64, tif order.TIF) (order.Order, error) {
	if err := validateOrderParams(symbol, price, qty, limit, tif); err != nil {
		return order.Order{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if qty > e.positions.Available(symbol) {
		e.logger.Warn("close rejected", "symbol", symbol, "qty", qty, "available", e.positions.Available(symbol))
		return order.Order{}, fmt.Errorf("close %v %s: %w", qty, symbol, ErrInsufficientShares)
	}

	if limit != nil {
		e.positions.Reserve(symbol, qty)
		return e.placeLimitLocked(order.Sell, symbol, at, price, qty, note, *limit, tif)
	}

	pos, _ := e.positions.Get(symbol)
	e.positions.ApplySell(symbol, qty)
	e.realized += (price - pos.AverageCost) * qty

	txn, err := e.ledger.Credit(price*qty, fmt.Sprintf("close %v %s at %v", qty, symbol, price), at)
	if err != nil {
		return order.Order{}, err
	}
	e.quotes.Set(market.Quote{Symbol: symbol, Price: price, Time: at})

	o := &order.Order{
		ID:        id.New(),
		Symbol:    symbol,
		Side:      order.Sell,
		Quantity:  qty,
		Price:     price,
		TIF:       tif,
		Status:    order.Filled,
		CreatedAt: at,
		ClosedAt:  at,
		FillPrice: price,
		Note:      note,
	}
	e.orders = append(e.orders, o)
	e.log.Append(order.Event{
		Time: at, Type: order.EventFill, OrderID: o.ID,
		Symbol: symbol, Side: order.Sell, Quantity: qty, Price: price, Note: note,
	})

	e.logger.Info("close filled", "symbol", symbol, "qty", qty, "price", price,
		"realized", (price-pos.AverageCost)*qty, "balance", e.ledger.Balance())

	if err := e.journal.RecordTransaction(txnRecord(txn)); err != nil {
		return *o, err
	}
	return *o, e.journal.RecordOrder(orderRecord(o))
}

// placeLimitLocked creates an OPEN limit order. For buys the required
// funds are already checked and held here; for sells the caller has
// reserved the shares.
func (e *Engine) placeLimitLocked(side order.Side, symbol string, at time.Time, price, qty float64, note string, limit float64, tif order.TIF) (order.Order, error) {
	if side == order.Buy {
		if err := e.ledger.Hold(limit * qty); err != nil {
			e.logger.Warn("limit buy rejected", "symbol", symbol, "required", limit*qty, "available", e.ledger.Available())
			return order.Order{}, fmt.Errorf("limit buy %s: %w", symbol, err)
		}
	}

	lim := limit
	o := &order.Order{
		ID:        id.New(),
		Symbol:    symbol,
		Side:      side,
		Quantity:  qty,
		Price:     price,
		Limit:     &lim,
		TIF:       tif,
		Status:    order.Open,
		CreatedAt: at,
		Note:      note,
	}
	e.orders = append(e.orders, o)
	e.book.Add(o)
	e.log.Append(order.Event{
		Time: at, Type: order.EventCreate, OrderID: o.ID,
		Symbol: symbol, Side: side, Quantity: qty, Price: limit, Note: note,
	})

	e.logger.Info("limit order placed", "symbol", symbol, "side", side, "qty", qty, "limit", limit, "tif", tif)

	return *o, e.journal.RecordOrder(orderRecord(o))
}

// Cancel cancels the earliest-placed open order matching symbol,
// limit price and quantity, releasing its reservation. No match means
// failure with no state change.
func (e *Engine) Cancel(symbol string, limit, qty float64, note string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.book.Find(symbol, limit, qty)
	if o == nil {
		e.logger.Warn("cancel target not found", "symbol", symbol, "limit", limit, "qty", qty)
		return fmt.Errorf("cancel %s %v@%v: %w", symbol, qty, limit, ErrOrderNotFound)
	}

	e.cancelLocked(o, order.Cancelled, time.Now(), note)
	return nil
}

// CancelAll cancels every open order for symbol, releasing the
// reservations. Zero matching orders is still success.
func (e *Engine) CancelAll(symbol string, note string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	for _, o := range e.book.BySymbol(symbol) {
		e.cancelLocked(o, order.Cancelled, now, note)
	}
	return nil
}

// cancelLocked moves an open order to status (CANCELLED or EXPIRED),
// releases its reservation, and records the event.
func (e *Engine) cancelLocked(o *order.Order, status order.Status, at time.Time, note string) {
	e.releaseLocked(o)

	o.Transition(status, at)
	e.book.Remove(o.ID)

	typ := order.EventCancel
	if status == order.Expired {
		typ = order.EventExpire
	}
	e.log.Append(order.Event{
		Time: at, Type: typ, OrderID: o.ID,
		Symbol: o.Symbol, Side: o.Side, Quantity: o.Quantity, Price: *o.Limit, Note: note,
	})

	e.logger.Info("order closed without fill", "symbol", o.Symbol, "status", status, "qty", o.Quantity, "limit", *o.Limit)

	if err := e.journal.RecordOrder(orderRecord(o)); err != nil {
		e.logger.Warn("journal order record failed", "order", o.ID, "err", err)
	}
}

// releaseLocked returns the reservation backing an open limit order.
func (e *Engine) releaseLocked(o *order.Order) {
	if o.Side == order.Buy {
		e.ledger.Release(*o.Limit * o.Quantity)
	} else {
		e.positions.Release(o.Symbol, o.Quantity)
	}
}

func validateOrderParams(symbol string, price, qty float64, limit *float64, tif order.TIF) error {
	switch {
	case symbol == "":
		return fmt.Errorf("empty symbol: %w", ErrInvalidParameters)
	case qty <= 0:
		return fmt.Errorf("quantity %v: %w", qty, ErrInvalidParameters)
	case price <= 0:
		return fmt.Errorf("price %v: %w", price, ErrInvalidParameters)
	case limit != nil && *limit <= 0:
		return fmt.Errorf("limit price %v: %w", *limit, ErrInvalidParameters)
	case !order.ValidTIF(tif):
		return fmt.Errorf("time in force %q: %w", tif, ErrInvalidParameters)
	}
	return nil
}

func txnRecord(t account.Transaction) journal.TransactionRecord {
	return journal.TransactionRecord{
		ID:      t.ID,
		Time:    t.Time,
		Kind:    string(t.Kind),
		Amount:  t.Amount,
		Balance: t.Balance,
		Note:    t.Note,
	}
}

func orderRecord(o *order.Order) journal.OrderRecord {
	rec := journal.OrderRecord{
		ID:        o.ID,
		Symbol:    o.Symbol,
		Side:      string(o.Side),
		Quantity:  o.Quantity,
		Price:     o.Price,
		Limit:     o.Limit,
		TIF:       string(o.TIF),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Note:      o.Note,
	}
	if !o.ClosedAt.IsZero() {
		closed := o.ClosedAt
		rec.ClosedAt = &closed
	}
	return rec
}
