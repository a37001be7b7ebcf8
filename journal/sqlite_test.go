package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.sqlite")

	j, err := NewSQLite(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('transactions','orders')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["transactions"])
	assert.True(t, found["orders"])
}

func TestSQLiteTransactionsRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	base := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	assert.NoError(t, j.RecordTransaction(TransactionRecord{
		ID: "T1", Time: base, Kind: "credit", Amount: 10000, Balance: 10000, Note: "opening balance",
	}))
	assert.NoError(t, j.RecordTransaction(TransactionRecord{
		ID: "T2", Time: base.Add(time.Minute), Kind: "debit", Amount: 1000, Balance: 9000,
	}))

	got, err := j.ListTransactionsBetween(base, base.Add(time.Hour))
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "T1", got[0].ID)
	assert.Equal(t, "credit", got[0].Kind)
	assert.Equal(t, 10000.0, got[0].Amount)
	assert.Equal(t, "opening balance", got[0].Note)
	assert.Equal(t, "T2", got[1].ID)
	assert.Equal(t, 9000.0, got[1].Balance)

	// Half-open interval excludes the upper bound.
	got, err = j.ListTransactionsBetween(base, base.Add(time.Minute))
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLiteOrderLifecycleRows(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	created := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	closed := created.Add(2 * time.Minute)
	limit := 100.0

	// A limit order appends one row per lifecycle transition.
	assert.NoError(t, j.RecordOrder(OrderRecord{
		ID: "O1", Symbol: "AAPL", Side: "buy", Quantity: 10, Price: 105,
		Limit: &limit, TIF: "GTC", Status: "OPEN", CreatedAt: created,
	}))
	assert.NoError(t, j.RecordOrder(OrderRecord{
		ID: "O1", Symbol: "AAPL", Side: "buy", Quantity: 10, Price: 105,
		Limit: &limit, TIF: "GTC", Status: "FILLED", CreatedAt: created, ClosedAt: &closed,
	}))

	history, err := j.OrderHistory("O1")
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "OPEN", history[0].Status)
	assert.Nil(t, history[0].ClosedAt)
	assert.Equal(t, "FILLED", history[1].Status)
	if assert.NotNil(t, history[1].ClosedAt) {
		assert.True(t, history[1].ClosedAt.Equal(closed))
	}
	if assert.NotNil(t, history[1].Limit) {
		assert.Equal(t, 100.0, *history[1].Limit)
	}

	_, err = j.OrderHistory("missing")
	assert.Error(t, err)
}

func TestSQLiteListOrdersBySymbol(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	created := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	assert.NoError(t, j.RecordOrder(OrderRecord{
		ID: "O1", Symbol: "AAPL", Side: "buy", Quantity: 10, Price: 100,
		TIF: "GTC", Status: "FILLED", CreatedAt: created,
	}))
	assert.NoError(t, j.RecordOrder(OrderRecord{
		ID: "O2", Symbol: "GOOG", Side: "buy", Quantity: 1, Price: 2750,
		TIF: "GTC", Status: "FILLED", CreatedAt: created,
	}))

	got, err := j.ListOrdersBySymbol("AAPL")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "O1", got[0].ID)
	assert.Nil(t, got[0].Limit)
}
