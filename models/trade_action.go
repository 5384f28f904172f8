package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuySellHold is the decision a strategy produces for one market at one
// point in time. Inconclusive means a required indicator could not be
// computed; callers treat it as Hold but it stays distinguishable for
// diagnostics.
type BuySellHold int

const (
	Inconclusive BuySellHold = iota
	Hold
	Buy
	Sell
)

func (b BuySellHold) String() string {
	switch b {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	case Hold:
		return "Hold"
	default:
		return "Inconclusive"
	}
}

// TradeAction is one concrete trade decision, ready to be applied to a
// portfolio. Immutable once created.
type TradeAction struct {
	Timestamp         time.Time
	Action            BuySellHold
	AmountInEuro      decimal.Decimal
	CurrentTokenPrice decimal.Decimal
	Market            string
}
