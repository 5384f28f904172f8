package interfaces

import (
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

type (
	// TradingStrategy scores a market from a trailing window of quotes and
	// converts the score into a concrete trade size against a portfolio.
	// Implementations are pure over (quotes, thresholds): calling
	// AnalyzeMarket twice with the same input yields the same output.
	TradingStrategy interface {
		// AnalyzeMarket returns the signal and its confidence score for the
		// given window. The window must hold at least Limit() quotes;
		// anything less yields (Inconclusive, 0).
		AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int)

		// CalculateOutcome converts a signal and score into a euro trade
		// amount given the current portfolio state, plus a human-readable
		// description of the decision.
		CalculateOutcome(currentPrice decimal.Decimal, score int, signal models.BuySellHold, portfolio Portfolio, market string) (decimal.Decimal, string)

		// Interval is the candle granularity this strategy operates on.
		Interval() string

		// Limit is the number of trailing quotes the strategy needs to
		// compute its indicators, i.e. the executor's sliding-window size.
		Limit() int

		// Name identifies the strategy for persistence and the factory.
		Name() string

		Thresholds() *models.IndicatorThresholds

		// WithThresholds returns a fresh instance of the same strategy kind
		// parameterized by the given threshold set. The receiver is left
		// untouched.
		WithThresholds(thresholds models.IndicatorThresholds) TradingStrategy
	}
)
