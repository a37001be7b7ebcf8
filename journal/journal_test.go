package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{FormatNone, FormatCSV, FormatJSON, FormatSQLite} {
		assert.True(t, ValidFormat(format), format)
	}
	assert.False(t, ValidFormat("parquet"))
	assert.False(t, ValidFormat(""))
}

func TestOpenByFormat(t *testing.T) {
	t.Parallel()

	j, err := Open(FormatNone, "")
	assert.NoError(t, err)
	assert.IsType(t, Noop{}, j)

	dir := filepath.Join(t.TempDir(), "nested", "data")

	j, err = Open(FormatCSV, dir)
	assert.NoError(t, err)
	assert.IsType(t, &CSV{}, j)
	assert.NoError(t, j.Close())
	assert.FileExists(t, filepath.Join(dir, "transactions.csv"))
	assert.FileExists(t, filepath.Join(dir, "orders.csv"))

	j, err = Open(FormatJSON, dir)
	assert.NoError(t, err)
	assert.IsType(t, &Bolt{}, j)
	assert.NoError(t, j.Close())

	j, err = Open(FormatSQLite, dir)
	assert.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	assert.NoError(t, j.Close())

	_, err = Open("parquet", dir)
	assert.Error(t, err)
}

func TestNoopDiscards(t *testing.T) {
	t.Parallel()

	var j Journal = Noop{}
	assert.NoError(t, j.RecordTransaction(TransactionRecord{}))
	assert.NoError(t, j.RecordOrder(OrderRecord{}))
	assert.NoError(t, j.Close())
}
