package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/strategies/indicators"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
)

// ModerateStrategy combines the long-term EMA cross with RSI, MACD
// histogram, Bollinger Bands and ROC momentum into one signed score. The
// signal flips to Buy or Sell once the score crosses the buy threshold, with
// the direction decided by price versus the long EMA.
type ModerateStrategy struct {
	baseStrategy
}

func NewModerateStrategy() *ModerateStrategy {
	return &ModerateStrategy{baseStrategy{thresholds: models.DefaultThresholds()}}
}

func (s *ModerateStrategy) Name() string { return "ModerateStrategy" }

func (s *ModerateStrategy) Interval() string { return "1h" }

func (s *ModerateStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *ModerateStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &ModerateStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *ModerateStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	t := s.thresholds
	if len(quotes) < s.Limit() {
		return models.Inconclusive, 0
	}

	series := toTimeSeries(quotes, s.Interval())
	last := len(series.Candles) - 1
	closePrices := techan.NewClosePriceIndicator(series)

	ema := techan.NewEMAIndicator(closePrices, t.SmaLongTerm).Calculate(last).Float()
	rsi := techan.NewRelativeStrengthIndexIndicator(closePrices, t.RsiPeriod).Calculate(last).Float()
	macdHistogram := techan.NewMACDHistogramIndicator(
		techan.NewMACDIndicator(closePrices, t.MacdFastPeriod, t.MacdSlowPeriod), t.MacdSignalPeriod).Calculate(last).Float()
	bbUpper := techan.NewBollingerUpperBandIndicator(closePrices, t.BollingerBandsPeriod, t.BollingerBandsDeviation).Calculate(last).Float()
	bbLower := techan.NewBollingerLowerBandIndicator(closePrices, t.BollingerBandsPeriod, t.BollingerBandsDeviation).Calculate(last).Float()
	roc := indicators.NewRateOfChangeIndicator(closePrices, t.RocPeriod).Calculate(last).Float()

	price := currentPrice.InexactFloat64()
	score := 0
	signal := models.Hold

	// RSI scoring
	if rsi < float64(t.RsiOversold) {
		score += truncScore(float64(t.RsiOversold)-rsi, float64(t.RsiOversold))
	} else if rsi > float64(t.RsiOverbought) {
		score += truncScore(rsi-float64(t.RsiOverbought), float64(100-t.RsiOverbought))
	}

	// MACD scoring
	score += truncScore(abs(macdHistogram), 100)

	// Bollinger Bands scoring
	if price < bbLower {
		score += truncScore(bbLower-price, bbLower)
	} else if price > bbUpper {
		score += truncScore(price-bbUpper, bbUpper)
	}

	// EMA cross scoring
	if price > ema {
		score += truncScore(price-ema, ema)
	} else if price < ema {
		score += truncScore(ema-price, ema)
	}

	// ROC (momentum) scoring
	score += truncScore(abs(roc), 100)

	if score >= t.BuyThreshold {
		if price > ema {
			signal = models.Buy
		} else {
			signal = models.Sell
		}
	}

	return signal, score
}
