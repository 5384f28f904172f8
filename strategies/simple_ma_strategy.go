package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
)

// SimpleMAStrategy is the dumbest tradeable baseline: a fast/slow EMA cross
// that always goes all-in on whichever side it picks.
type SimpleMAStrategy struct {
	baseStrategy
}

func NewSimpleMAStrategy() *SimpleMAStrategy {
	t := models.DefaultThresholds()
	t.RsiOverbought = 69
	t.RsiOversold = 25
	t.SmaShortTerm = 20
	t.SmaLongTerm = 169
	return &SimpleMAStrategy{baseStrategy{thresholds: t}}
}

func (s *SimpleMAStrategy) Name() string { return "SimpleMAStrategy" }

func (s *SimpleMAStrategy) Interval() string { return "15m" }

func (s *SimpleMAStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *SimpleMAStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &SimpleMAStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *SimpleMAStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	t := s.thresholds
	if len(quotes) < s.Limit() {
		return models.Inconclusive, 0
	}

	series := toTimeSeries(quotes, s.Interval())
	last := len(series.Candles) - 1
	closePrices := techan.NewClosePriceIndicator(series)

	emaFast := techan.NewEMAIndicator(closePrices, t.SmaShortTerm).Calculate(last)
	emaSlow := techan.NewEMAIndicator(closePrices, 50).Calculate(last)

	// Score deliberately saturates CalculateOutcome's score/1000 sizing
	if emaFast.GT(emaSlow) {
		return models.Buy, 30000
	}
	return models.Sell, 30000
}
