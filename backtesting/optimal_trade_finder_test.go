package backtesting

import (
	"testing"
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func flaggedSeries(prices []float64) []models.FlaggedQuote {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.FlaggedQuote, 0, len(prices))
	for i, p := range prices {
		quote := models.NewQuote(start.Add(time.Duration(i)*time.Hour), p, p*1.05, p*0.95, p, 1)
		candles = append(candles, models.FlaggedQuote{Quote: quote, TradeAction: models.Hold})
	}
	return candles
}

func TestMaxProfitFindsTheObviousSwing(t *testing.T) {
	candles := flaggedSeries([]float64{100, 90, 80, 120, 160, 150})

	profit, transactions := MaxProfit(1, candles)

	assert.True(t, profit.GreaterThan(decimal.Zero))
	assert.Len(t, transactions, 1)
	assert.Equal(t, 2, transactions[0].Buy)
	assert.Greater(t, transactions[0].Sell, transactions[0].Buy)
}

func TestMaxProfitOnDecliningSeriesFindsNothing(t *testing.T) {
	candles := flaggedSeries([]float64{160, 150, 140, 130, 120, 110})

	_, transactions := MaxProfit(2, candles)
	assert.Empty(t, transactions)
}

func TestMaxProfitDegenerateInputs(t *testing.T) {
	profit, transactions := MaxProfit(0, flaggedSeries([]float64{100, 110}))
	assert.True(t, profit.IsZero())
	assert.Empty(t, transactions)

	profit, transactions = MaxProfit(3, flaggedSeries([]float64{100}))
	assert.True(t, profit.IsZero())
	assert.Empty(t, transactions)
}

func TestFlagOptimalTradesLabelsBuysAndSells(t *testing.T) {
	prices := make([]float64, 0, 40)
	for i := 0; i < 40; i++ {
		// Repeating dip-and-rally pattern with plenty of profit per swing.
		switch i % 4 {
		case 0:
			prices = append(prices, 100)
		case 1:
			prices = append(prices, 80)
		case 2:
			prices = append(prices, 130)
		case 3:
			prices = append(prices, 110)
		}
	}

	quotes := make([]models.Quote, 0, len(prices))
	for _, fq := range flaggedSeries(prices) {
		quotes = append(quotes, fq.Quote)
	}

	flagged, report := FlagOptimalTrades(quotes)

	buys, sells := 0, 0
	for _, fq := range flagged {
		switch fq.TradeAction {
		case models.Buy:
			buys++
		case models.Sell:
			sells++
		}
	}

	assert.Greater(t, buys, 0)
	assert.Equal(t, buys, sells)
	assert.Contains(t, report, "Maximum achievable profit")
}
