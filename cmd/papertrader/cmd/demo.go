package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/order"
	"github.com/rustyeddy/papertrader/sim"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run example simulations",
	Long: `Run example paper-trading sessions to learn how the engine works.

Available demos:
  basic    - Deposit, market buy, limit order, partial close, one tick

Example:
  papertrader demo basic`,
}

var demoBasicCmd = &cobra.Command{
	Use:   "basic",
	Short: "Run a basic trading session demo",
	Long: `Demonstrates the full order lifecycle:

  1. Opening an account with a cash deposit
  2. An immediate market buy
  3. Placing a DAY limit buy order
  4. Partially closing a position
  5. Processing a market tick that fills the limit order
  6. Reporting balance, portfolio, open orders, and P&L`,
	RunE: runDemoBasic,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.AddCommand(demoBasicCmd)
}

func runDemoBasic(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Basic Trading Demo ===")
	fmt.Println()

	engine, err := sim.New(10000, journal.Noop{})
	if err != nil {
		return err
	}

	now := time.Now()

	// Immediate buy: 10 shares of AAPL at $150.
	if _, err := engine.Buy("AAPL", now, 150, 10, "buy AAPL immediate", nil, order.GTC); err != nil {
		return err
	}

	// Limit buy: 1 share of GOOG at $2750 or better, good for the day.
	limit := 2750.0
	if _, err := engine.Buy("GOOG", now, 2800, 1, "limit buy GOOG", &limit, order.Day); err != nil {
		return err
	}

	// Close 5 of the AAPL shares at $155.
	if _, err := engine.Close("AAPL", now, 155, 5, "sell some AAPL", nil, order.GTC); err != nil {
		return err
	}

	// One market tick: GOOG crosses the limit, AAPL marks up.
	if err := engine.Tick(map[string]float64{"GOOG": 2745, "AAPL": 156}, now.Add(time.Minute)); err != nil {
		return err
	}

	fmt.Printf("Account balance: $%.2f\n", engine.Balance())
	fmt.Printf("Portfolio value: $%.2f\n", engine.PortfolioValue())
	fmt.Printf("Account value:   $%.2f\n", engine.AccountValue())

	pnl := engine.AccountPNL()
	fmt.Printf("Account P&L:     $%.2f (%.2f%%)\n", pnl.Value, pnl.Percent)
	fmt.Printf("Realized P&L:    $%.2f\n", engine.RealizedPL())
	fmt.Println()

	fmt.Println("Holdings:")
	for _, h := range engine.Portfolio() {
		fmt.Printf("  %-6s qty %-6g avg $%-10.2f last $%-10.2f unrealized $%.2f (%.2f%%)\n",
			h.Symbol, h.Quantity, h.AverageCost, h.Price, h.UnrealizedPL, h.UnrealizedPLPercent)
	}

	open := engine.OpenLimitOrders()
	fmt.Printf("\nOpen limit orders: %d\n", len(open))
	for _, o := range open {
		fmt.Printf("  %s %s %g @ %g (%s)\n", o.Side, o.Symbol, o.Quantity, *o.Limit, o.TIF)
	}

	return nil
}
