// Package account implements the cash side of a paper-trading
// account: an append-only log of credit and debit transactions, a
// cached balance that always equals the fold of that log, and a held
// figure backing funds reserved by open limit buys.
package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/papertrader/internal/id"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the
	// available (unreserved) balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned for non-positive amounts. This is a
	// caller contract violation, not a business rejection.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Kind classifies a transaction.
type Kind string

const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

// Transaction is one immutable ledger entry. Balance is the account
// balance immediately after the entry was applied.
type Transaction struct {
	ID      string
	Time    time.Time
	Kind    Kind
	Amount  float64
	Balance float64
	Note    string
}

// Ledger is an append-only cash ledger. It is not goroutine safe;
// the owning engine serializes access.
type Ledger struct {
	txns    []Transaction
	balance float64
	held    float64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Credit appends a credit transaction and raises the balance.
func (l *Ledger) Credit(amount float64, note string, at time.Time) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("credit %.2f: %w", amount, ErrInvalidAmount)
	}

	l.balance += amount
	txn := Transaction{
		ID:      id.New(),
		Time:    at,
		Kind:    Credit,
		Amount:  amount,
		Balance: l.balance,
		Note:    note,
	}
	l.txns = append(l.txns, txn)
	return txn, nil
}

// Debit appends a debit transaction if amount does not exceed the
// available balance. On rejection the ledger is untouched.
func (l *Ledger) Debit(amount float64, note string, at time.Time) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("debit %.2f: %w", amount, ErrInvalidAmount)
	}
	if amount > l.Available() {
		return Transaction{}, fmt.Errorf("debit %.2f with %.2f available: %w", amount, l.Available(), ErrInsufficientFunds)
	}

	l.balance -= amount
	txn := Transaction{
		ID:      id.New(),
		Time:    at,
		Kind:    Debit,
		Amount:  amount,
		Balance: l.balance,
		Note:    note,
	}
	l.txns = append(l.txns, txn)
	return txn, nil
}

// Hold reserves funds against the available balance without moving
// the balance itself. Reserved funds cannot be debited by anyone but
// the holder, which keeps many simultaneous open limit buys from
// overcommitting the account.
func (l *Ledger) Hold(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("hold %.2f: %w", amount, ErrInvalidAmount)
	}
	if amount > l.Available() {
		return fmt.Errorf("hold %.2f with %.2f available: %w", amount, l.Available(), ErrInsufficientFunds)
	}
	l.held += amount
	return nil
}

// Release returns previously held funds to the available balance.
func (l *Ledger) Release(amount float64) {
	l.held -= amount
	if l.held < 0 {
		l.held = 0
	}
}

// Balance is the total cash balance, held funds included.
func (l *Ledger) Balance() float64 { return l.balance }

// Held is the cash currently reserved by open limit buys.
func (l *Ledger) Held() float64 { return l.held }

// Available is the balance minus held funds.
func (l *Ledger) Available() float64 { return l.balance - l.held }

// Transactions returns a copy of the transaction log, oldest first.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// Fold recomputes the balance from the transaction log. The cached
// balance must always equal this value.
func (l *Ledger) Fold() float64 {
	var b float64
	for _, t := range l.txns {
		switch t.Kind {
		case Credit:
			b += t.Amount
		case Debit:
			b -= t.Amount
		}
	}
	return b
}
