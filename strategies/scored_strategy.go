package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/strategies/indicators"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
)

// ScoredStrategy accumulates a signed score: bullish factors add, bearish
// factors subtract. Buy and Sell have independent thresholds instead of one
// symmetric |score| test, and the ATR is computed for parity with the other
// variants even though the decision does not use it.
type ScoredStrategy struct {
	baseStrategy
}

func NewScoredStrategy() *ScoredStrategy {
	t := models.DefaultThresholds()
	t.RsiOverbought = 74
	t.RsiOversold = 21
	t.SmaLongTerm = 149
	t.BollingerBandsPeriod = 16
	t.BollingerBandsDeviation = 2.5925600633477703
	t.BuyThreshold = 40
	t.SellThreshold = -43
	t.MacdFastPeriod = 3
	t.MacdSlowPeriod = 35
	t.RocPeriod = 9
	return &ScoredStrategy{baseStrategy{thresholds: t}}
}

func (s *ScoredStrategy) Name() string { return "ScoredStrategy" }

func (s *ScoredStrategy) Interval() string { return "15m" }

func (s *ScoredStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *ScoredStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &ScoredStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *ScoredStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
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
	stochasticK := indicators.NewStochasticOscillatorKIndicator(series, t.StochasticPeriod).Calculate(last).Float()

	// Computed for signature parity with the other variants; the decision
	// rule below does not consume it.
	_ = techan.NewAverageTrueRangeIndicator(series, t.AtrPeriod).Calculate(last)

	price := currentPrice.InexactFloat64()
	score := 0
	signal := models.Hold

	// RSI scoring
	if rsi < float64(t.RsiOversold) {
		score += truncScore(float64(t.RsiOversold)-rsi, float64(t.RsiOversold))
	} else if rsi > float64(t.RsiOverbought) {
		score -= truncScore(rsi-float64(t.RsiOverbought), float64(100-t.RsiOverbought))
	}

	// MACD scoring
	score += truncScore(abs(macdHistogram), 100)

	// Bollinger Bands scoring
	if price < bbLower {
		score += truncScore(bbLower-price, bbLower)
	} else if price > bbUpper {
		score -= truncScore(price-bbUpper, bbUpper)
	}

	// EMA cross scoring
	if price > ema {
		score += truncScore(price-ema, ema)
	} else if price < ema {
		score -= truncScore(ema-price, ema)
	}

	// Stochastic oscillator scoring
	if stochasticK > t.StochasticOverbought {
		score -= truncScore(stochasticK-t.StochasticOverbought, 100-t.StochasticOverbought)
	} else if stochasticK < t.StochasticOversold {
		score += truncScore(t.StochasticOversold-stochasticK, t.StochasticOversold)
	}

	if score >= t.BuyThreshold {
		signal = models.Buy
	} else if score <= t.SellThreshold {
		signal = models.Sell
	}

	if score < 0 {
		return signal, -score
	}
	return signal, score
}
