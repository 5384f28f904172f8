package backtesting

import (
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/models/analytics"
	"github.com/shopspring/decimal"
)

const (
	qualityWeight = 0.45
	deltaWeight   = 0.05
	valueWeight   = 0.5
)

// StrategyRun is one candidate's backtest outcome entering the ranking.
type StrategyRun struct {
	StrategyName        string
	Thresholds          models.IndicatorThresholds
	TradeQuality        analytics.TradeQuality
	FinalPortfolioValue decimal.Decimal
}

// RankStrategiesByScore combines trade quality, average correct-trade delta
// and final portfolio value into one score per run and returns the best one.
// Each component is normalized against the batch maximum, so the scores are
// relative to this batch only.
func RankStrategiesByScore(runs []StrategyRun) (analytics.RankedResult, models.IndicatorThresholds) {
	if len(runs) == 0 {
		return analytics.RankedResult{}, models.IndicatorThresholds{}
	}

	maxQuality, maxDelta, maxValue := 0.0, 0.0, 0.0
	for _, run := range runs {
		if run.TradeQuality.CorrectTradePercentage > maxQuality {
			maxQuality = run.TradeQuality.CorrectTradePercentage
		}
		if run.TradeQuality.AverageDelta > maxDelta {
			maxDelta = run.TradeQuality.AverageDelta
		}
		if v := run.FinalPortfolioValue.InexactFloat64(); v > maxValue {
			maxValue = v
		}
	}

	best := runs[0]
	bestScore := -1.0
	for _, run := range runs {
		score := 0.0
		if maxQuality > 0 {
			score += qualityWeight * run.TradeQuality.CorrectTradePercentage / maxQuality
		}
		if maxDelta > 0 {
			score += deltaWeight * run.TradeQuality.AverageDelta / maxDelta
		}
		if maxValue > 0 {
			score += valueWeight * run.FinalPortfolioValue.InexactFloat64() / maxValue
		}
		if score > bestScore {
			bestScore = score
			best = run
		}
	}

	return analytics.RankedResult{
		StrategyName:        best.StrategyName,
		Score:               bestScore,
		TradeQuality:        best.TradeQuality,
		FinalPortfolioValue: best.FinalPortfolioValue,
	}, best.Thresholds
}
