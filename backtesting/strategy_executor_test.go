package backtesting

import (
	"testing"
	"time"

	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/strategies"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// windowRecorder captures every window AnalyzeMarket receives.
type windowRecorder struct {
	limit      int
	windows    [][]models.Quote
	thresholds models.IndicatorThresholds
}

func (w *windowRecorder) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	window := make([]models.Quote, len(quotes))
	copy(window, quotes)
	w.windows = append(w.windows, window)
	return models.Hold, 0
}

func (w *windowRecorder) CalculateOutcome(currentPrice decimal.Decimal, score int, signal models.BuySellHold, portfolio interfaces.Portfolio, market string) (decimal.Decimal, string) {
	return decimal.Zero, "Hold"
}

func (w *windowRecorder) Interval() string { return "1h" }

func (w *windowRecorder) Limit() int { return w.limit }

func (w *windowRecorder) Name() string { return "windowRecorder" }

func (w *windowRecorder) Thresholds() *models.IndicatorThresholds { return &w.thresholds }

func (w *windowRecorder) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &windowRecorder{limit: w.limit, thresholds: thresholds}
}

func flatQuotes(count int, price float64) []models.Quote {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	quotes := make([]models.Quote, 0, count)
	for i := 0; i < count; i++ {
		quotes = append(quotes, models.NewQuote(start.Add(time.Duration(i)*time.Hour), price, price, price, price, 1))
	}
	return quotes
}

func TestExecuteStrategyWindowSizeContract(t *testing.T) {
	recorder := &windowRecorder{limit: 5}
	executor := NewStrategyExecutor(recorder)
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))

	quotes := flatQuotes(12, 100)
	actions := executor.ExecuteStrategy(BtcMarket, quotes, pm)

	assert.Len(t, actions, 8)
	assert.Len(t, recorder.windows, 8)
	for _, window := range recorder.windows {
		assert.Len(t, window, 5)
	}
}

func TestExecuteStrategyShortSeriesYieldsNoTrades(t *testing.T) {
	recorder := &windowRecorder{limit: 10}
	executor := NewStrategyExecutor(recorder)
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))

	actions := executor.ExecuteStrategy(BtcMarket, flatQuotes(9, 100), pm)

	assert.Empty(t, actions)
	assert.Empty(t, recorder.windows)
}

func TestExecuteStrategySortsQuotesBeforeWindowing(t *testing.T) {
	recorder := &windowRecorder{limit: 3}
	executor := NewStrategyExecutor(recorder)
	pm := NewPortfolioManager()

	quotes := flatQuotes(6, 100)
	shuffled := []models.Quote{quotes[3], quotes[0], quotes[5], quotes[1], quotes[4], quotes[2]}
	executor.ExecuteStrategy(BtcMarket, shuffled, pm)

	for _, window := range recorder.windows {
		for i := 1; i < len(window); i++ {
			assert.True(t, window[i].Date.After(window[i-1].Date))
		}
	}
}

func TestExecuteStrategyHoldBaselineBuysOnceWithFullBalance(t *testing.T) {
	thresholds := models.DefaultThresholds()
	thresholds.SmaLongTerm = 3
	holdStrategy := strategies.NewHoldStrategy().WithThresholds(thresholds)

	executor := NewStrategyExecutor(holdStrategy)
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))

	actions := executor.ExecuteStrategy(BtcMarket, flatQuotes(10, 100), pm)

	assert.NotEmpty(t, actions)
	assert.Equal(t, models.Buy, actions[0].Action)
	assert.True(t, actions[0].AmountInEuro.Equal(decimal.NewFromInt(300)))
	for _, action := range actions[1:] {
		assert.Equal(t, models.Hold, action.Action)
	}

	assert.True(t, pm.GetCashBalance().IsZero())
	assert.True(t, pm.GetAssetTokenBalance(BtcMarket).GreaterThan(decimal.Zero))
}
