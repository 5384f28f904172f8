package analytics

import "github.com/shopspring/decimal"

// Metrics holds the risk/performance numbers derived from one completed
// backtest run. Recomputed fresh per analysis, never mutated afterwards.
type Metrics struct {
	SharpeRatio     float64
	MaximumDrawdown float64
	ProfitFactor    float64
	WinLossRatio    float64
}

// TradeQuality grades a trade-action sequence by whether each trade's
// direction was confirmed by the price movement up to the next trade.
type TradeQuality struct {
	CorrectTradePercentage float64
	AverageDelta           float64
	TotalTrades            int
	CorrectTrades          int
}

// StrategyRunResult is the outcome of running one strategy variant across
// the short/medium/long backtest windows.
type StrategyRunResult struct {
	StrategyName        string
	FinalPortfolioValue decimal.Decimal
	ResultText          string
	Metrics             Metrics
	TradeQuality        TradeQuality
}

// RankedResult is the winner of a batch of variant runs, with the
// batch-normalized composite score it won on.
type RankedResult struct {
	StrategyName        string
	Score               float64
	TradeQuality        TradeQuality
	FinalPortfolioValue decimal.Decimal
}
