package backtesting

import (
	"testing"
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/strategies"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateMaximumDrawdownStaysWithinUnitRange(t *testing.T) {
	cases := [][]float64{
		{300},
		{300, 310, 320},
		{300, 150, 300},
		{300, 0},
		{100, 200, 50, 400, 10},
	}

	for _, values := range cases {
		dd := CalculateMaximumDrawdown(values)
		assert.GreaterOrEqual(t, dd, 0.0)
		assert.LessOrEqual(t, dd, 1.0)
	}
}

func TestCalculateMaximumDrawdownPeakToTrough(t *testing.T) {
	dd := CalculateMaximumDrawdown([]float64{100, 200, 100, 150})
	assert.InDelta(t, 0.5, dd, 1e-9)

	assert.Equal(t, 0.0, CalculateMaximumDrawdown([]float64{100, 110, 120}))
}

func TestSharpeRatioOfFlatSeriesIsZero(t *testing.T) {
	assert.Equal(t, 0.0, calculateSharpeRatio([]float64{300, 300, 300}))
	assert.Equal(t, 0.0, calculateSharpeRatio(nil))
}

func TestAnalyzeReportsTradeQuality(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	actions := []models.TradeAction{
		{
			Timestamp:         start,
			Action:            models.Buy,
			AmountInEuro:      decimal.NewFromInt(100),
			CurrentTokenPrice: decimal.NewFromInt(100),
			Market:            BtcMarket,
		},
		{
			Timestamp:         start.Add(time.Hour),
			Action:            models.Hold,
			AmountInEuro:      decimal.Zero,
			CurrentTokenPrice: decimal.NewFromInt(110),
			Market:            BtcMarket,
		},
		{
			Timestamp:         start.Add(2 * time.Hour),
			Action:            models.Sell,
			AmountInEuro:      decimal.NewFromInt(80),
			CurrentTokenPrice: decimal.NewFromInt(120),
			Market:            BtcMarket,
		},
		{
			Timestamp:         start.Add(3 * time.Hour),
			Action:            models.Buy,
			AmountInEuro:      decimal.NewFromInt(50),
			CurrentTokenPrice: decimal.NewFromInt(110),
			Market:            BtcMarket,
		},
	}

	final := NewPortfolioManager()
	final.SetCash(decimal.NewFromInt(300))
	for _, action := range actions {
		final.ExecuteTrade(action)
	}

	analyzer := NewResultAnalyzer(strategies.NewModerateStrategy(), actions, final)
	text, metrics, quality := analyzer.Analyze()

	assert.Contains(t, text, "ModerateStrategy")

	// Buy at 100 before a rise to 120 and sell at 120 before a drop to 110
	// are both correct; the trailing buy has no successor to judge it by.
	assert.Equal(t, 2, quality.TotalTrades)
	assert.Equal(t, 2, quality.CorrectTrades)
	assert.InDelta(t, 100.0, quality.CorrectTradePercentage, 1e-9)
	assert.Greater(t, quality.AverageDelta, 0.0)

	assert.GreaterOrEqual(t, metrics.MaximumDrawdown, 0.0)
	assert.LessOrEqual(t, metrics.MaximumDrawdown, 1.0)
}

func TestAnalyzeOnEmptyRunIsNeutral(t *testing.T) {
	final := NewPortfolioManager()
	final.SetCash(decimal.NewFromInt(300))

	analyzer := NewResultAnalyzer(strategies.NewHoldStrategy(), nil, final)
	_, metrics, quality := analyzer.Analyze()

	assert.Equal(t, 0.0, metrics.SharpeRatio)
	assert.Equal(t, 0.0, metrics.MaximumDrawdown)
	assert.Equal(t, 0, quality.TotalTrades)
	assert.Equal(t, 0.0, quality.CorrectTradePercentage)
}
