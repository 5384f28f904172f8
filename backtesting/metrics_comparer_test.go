package backtesting

import (
	"testing"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/models/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRankStrategiesByScorePrefersValueAndQuality(t *testing.T) {
	weak := StrategyRun{
		StrategyName:        "ModerateStrategy",
		Thresholds:          models.DefaultThresholds(),
		TradeQuality:        analytics.TradeQuality{CorrectTradePercentage: 40, AverageDelta: 1},
		FinalPortfolioValue: decimal.NewFromInt(250),
	}

	strongThresholds := models.DefaultThresholds()
	strongThresholds.BuyThreshold = 60
	strong := StrategyRun{
		StrategyName:        "ModerateStrategy",
		Thresholds:          strongThresholds,
		TradeQuality:        analytics.TradeQuality{CorrectTradePercentage: 80, AverageDelta: 2},
		FinalPortfolioValue: decimal.NewFromInt(350),
	}

	ranked, winner := RankStrategiesByScore([]StrategyRun{weak, strong})

	assert.Equal(t, 60, winner.BuyThreshold)
	assert.True(t, ranked.FinalPortfolioValue.Equal(decimal.NewFromInt(350)))
	// The best run tops every normalized component, so it scores the full
	// weight budget.
	assert.InDelta(t, 1.0, ranked.Score, 1e-9)
}

func TestRankStrategiesByScoreQualityCanBeatValue(t *testing.T) {
	sloppy := StrategyRun{
		StrategyName:        "ScoredStrategy",
		TradeQuality:        analytics.TradeQuality{CorrectTradePercentage: 10, AverageDelta: 0.5},
		FinalPortfolioValue: decimal.NewFromInt(320),
	}
	precise := StrategyRun{
		StrategyName:        "ScoredStrategy",
		TradeQuality:        analytics.TradeQuality{CorrectTradePercentage: 90, AverageDelta: 3},
		FinalPortfolioValue: decimal.NewFromInt(310),
	}

	ranked, _ := RankStrategiesByScore([]StrategyRun{sloppy, precise})

	assert.True(t, ranked.FinalPortfolioValue.Equal(decimal.NewFromInt(310)))
}

func TestRankStrategiesByScoreEmptyBatch(t *testing.T) {
	ranked, _ := RankStrategiesByScore(nil)
	assert.Empty(t, ranked.StrategyName)
}
