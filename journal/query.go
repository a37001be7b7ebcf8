package journal

import (
	"fmt"
	"time"
)

// OrderHistory returns every recorded row for an order id, oldest
// first: the creation row followed by the terminal row, if any.
func (j *SQLite) OrderHistory(orderID string) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, symbol, side, quantity, price, limit_price, tif, status, created_at, closed_at, note
		FROM orders
		WHERE id = ?
		ORDER BY rowid ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("order %q not found", orderID)
	}
	return out, nil
}

// ListOrdersBySymbol returns every order row for a symbol in the
// order it was written.
func (j *SQLite) ListOrdersBySymbol(symbol string) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, symbol, side, quantity, price, limit_price, tif, status, created_at, closed_at, note
		FROM orders
		WHERE symbol = ?
		ORDER BY rowid ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListTransactionsBetween returns transactions with time in
// [start, end), oldest first.
func (j *SQLite) ListTransactionsBetween(start, end time.Time) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, kind, amount, balance, note
		FROM transactions
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Time,
			&rec.Kind,
			&rec.Amount,
			&rec.Balance,
			&rec.Note,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrders(rows rowScanner) ([]OrderRecord, error) {
	var out []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Symbol,
			&rec.Side,
			&rec.Quantity,
			&rec.Price,
			&rec.Limit,
			&rec.TIF,
			&rec.Status,
			&rec.CreatedAt,
			&rec.ClosedAt,
			&rec.Note,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
