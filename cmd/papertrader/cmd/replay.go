package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrader/config"
	"github.com/rustyeddy/papertrader/sim"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay recorded price ticks against a configured account",
	Long: `Replay a CSV file of price ticks through the engine.

Expected columns (header allowed):
  time,symbol,price

Rows sharing a timestamp are batched into a single tick. The account
and journal come from the config file.

Example:
  papertrader replay --config account.yaml --ticks prices.csv`,
	RunE: runReplay,
}

var (
	replayConfigPath string
	replayTicksPath  string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	replayCmd.Flags().StringVarP(&replayTicksPath, "ticks", "t", "", "path to tick CSV file (required)")
	replayCmd.MarkFlagRequired("config")
	replayCmd.MarkFlagRequired("ticks")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(replayConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine, err := sim.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer engine.CloseJournal()

	f, err := os.Open(replayTicksPath)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		batch    = map[string]float64{}
		batchAt  time.Time
		sawFirst bool
		ticks    int
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := engine.Tick(batch, batchAt); err != nil {
			return err
		}
		ticks++
		batch = map[string]float64{}
		return nil
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) < 3 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		at, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
		if err != nil {
			return fmt.Errorf("parse tick time %q: %w", row[0], err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return fmt.Errorf("parse tick price %q: %w", row[2], err)
		}

		if !at.Equal(batchAt) {
			if err := flush(); err != nil {
				return err
			}
			batchAt = at
		}
		batch[strings.TrimSpace(row[1])] = price
	}
	if err := flush(); err != nil {
		return err
	}

	pnl := engine.AccountPNL()
	fmt.Printf("Replayed %d ticks\n", ticks)
	fmt.Printf("  Balance:         $%.2f\n", engine.Balance())
	fmt.Printf("  Portfolio value: $%.2f\n", engine.PortfolioValue())
	fmt.Printf("  Account value:   $%.2f\n", engine.AccountValue())
	fmt.Printf("  P&L:             $%.2f (%.2f%%)\n", pnl.Value, pnl.Percent)

	return nil
}
