package sim

import (
	"errors"

	"github.com/rustyeddy/papertrader/account"
)

var (
	// ErrInsufficientFunds rejects a buy the cash balance cannot cover.
	ErrInsufficientFunds = account.ErrInsufficientFunds

	// ErrInsufficientShares rejects a close for more shares than are
	// held and unreserved. Closes never partially fill.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrOrderNotFound rejects a cancel whose (symbol, limit, qty)
	// triple matches no open order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidParameters flags malformed input: non-positive
	// quantity or price, unrecognized time-in-force. A caller contract
	// violation, distinct from the business rejections above.
	ErrInvalidParameters = errors.New("invalid parameters")
)
