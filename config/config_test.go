package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", `
account:
  starting_balance: 25000
  currency: USD
journal:
  format: sqlite
  dir: ./data
`)

	cfg, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 25000.0, cfg.Account.StartingBalance)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, "sqlite", cfg.Journal.Format)
	assert.Equal(t, "./data", cfg.Journal.Dir)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.json", `{
  "account": {"starting_balance": 5000},
  "journal": {"format": "none"}
}`)

	cfg, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 5000.0, cfg.Account.StartingBalance)
	assert.Equal(t, "none", cfg.Journal.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad format":   "account:\n  starting_balance: 100\njournal:\n  format: parquet\n",
		"missing dir":  "account:\n  starting_balance: 100\njournal:\n  format: csv\n",
		"negative bal": "account:\n  starting_balance: -1\njournal:\n  format: none\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", content)
			_, err := LoadFromFile(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Account.StartingBalance = 42000
	cfg.Journal.Format = "csv"
	cfg.Journal.Dir = "./journal"

	for _, name := range []string{"out.yaml", "out.json"} {
		path := filepath.Join(t.TempDir(), name)
		assert.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		assert.NoError(t, err)
		assert.Equal(t, cfg.Account.StartingBalance, got.Account.StartingBalance)
		assert.Equal(t, cfg.Journal.Format, got.Journal.Format)
	}
}
