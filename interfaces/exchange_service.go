package interfaces

import (
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

// ExchangeService is the narrow surface of the exchange the bot consumes:
// candle history for analysis, ticker price and balances for sizing, and
// market orders for the live path.
type ExchangeService interface {
	GetPrice(market string) (decimal.Decimal, error)

	// GetCandleData returns the most recent candles before end, at most
	// limit of them and none before start, ascending and deduplicated by
	// timestamp. Backfill loops walk end toward older data.
	GetCandleData(market string, interval string, limit int, start time.Time, end time.Time) ([]models.Quote, error)
	GetBalances() ([]models.Balance, error)
	Buy(market string, amount decimal.Decimal) (string, error)
	Sell(market string, amount decimal.Decimal) (string, error)
}
