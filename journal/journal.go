// Package journal persists the engine's two append-only tables:
// account transactions and order lifecycle rows. Backends share one
// record shape; the engine does not care which representation is
// behind the interface.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TransactionRecord is one cash ledger row.
type TransactionRecord struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind"`
	Amount  float64   `json:"amount"`
	Balance float64   `json:"balance"`
	Note    string    `json:"note,omitempty"`
}

// OrderRecord is one order lifecycle row. A limit order produces two
// rows, one at creation and one at its terminal transition; a market
// order produces a single already-terminal row.
type OrderRecord struct {
	ID        string     `json:"id"`
	Symbol    string     `json:"symbol"`
	Side      string     `json:"side"`
	Quantity  float64    `json:"quantity"`
	Price     float64    `json:"price"`
	Limit     *float64   `json:"limit,omitempty"`
	TIF       string     `json:"tif"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Note      string     `json:"note,omitempty"`
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	RecordOrder(OrderRecord) error
	Close() error
}

// Noop discards every record. Used when persistence is disabled.
type Noop struct{}

func (Noop) RecordTransaction(TransactionRecord) error { return nil }
func (Noop) RecordOrder(OrderRecord) error             { return nil }
func (Noop) Close() error                              { return nil }

// Persistence formats accepted by Open and config validation.
const (
	FormatNone   = "none"
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// ValidFormat reports whether format names a known backend.
func ValidFormat(format string) bool {
	switch format {
	case FormatNone, FormatCSV, FormatJSON, FormatSQLite:
		return true
	}
	return false
}

// Open builds the journal for a persistence format rooted at dir,
// creating the directory as needed.
func Open(format, dir string) (Journal, error) {
	if format == FormatNone {
		return Noop{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal dir %s: %w", dir, err)
	}

	switch format {
	case FormatCSV:
		return NewCSV(filepath.Join(dir, "transactions.csv"), filepath.Join(dir, "orders.csv"))
	case FormatJSON:
		return NewBolt(filepath.Join(dir, "papertrader.db"))
	case FormatSQLite:
		return NewSQLite(filepath.Join(dir, "papertrader.sqlite"))
	}
	return nil, fmt.Errorf("unknown journal format %q", format)
}
