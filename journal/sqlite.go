package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the structured journal backend. Rows are append-only;
// neither table has a unique key on the order id because a limit
// order contributes one row per lifecycle transition.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(t TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(id, time, kind, amount, balance, note)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Time, t.Kind, t.Amount, t.Balance, t.Note,
	)
	return err
}

func (j *SQLite) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(id, symbol, side, quantity, price, limit_price, tif, status, created_at, closed_at, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Symbol, o.Side, o.Quantity, o.Price, o.Limit,
		o.TIF, o.Status, o.CreatedAt, o.ClosedAt, o.Note,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
