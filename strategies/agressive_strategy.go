package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/strategies/indicators"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
)

// AgressiveStrategy layers the short-term EMA, the stochastic oscillator and
// ADX trend strength on top of the moderate factor set, on a shorter candle
// interval. Same threshold-crossing decision rule as ModerateStrategy.
type AgressiveStrategy struct {
	baseStrategy
}

func NewAgressiveStrategy() *AgressiveStrategy {
	t := models.DefaultThresholds()
	t.RsiOverbought = 74
	t.RsiOversold = 12
	t.RsiPeriod = 12
	t.SmaLongTerm = 172
	t.BollingerBandsPeriod = 10
	t.BollingerBandsDeviation = 2.981814445647155
	t.BuyThreshold = 76
	t.SellThreshold = -17
	t.MacdFastPeriod = 17
	t.MacdSlowPeriod = 18
	t.MacdSignalPeriod = 4
	t.RocPeriod = 21
	return &AgressiveStrategy{baseStrategy{thresholds: t}}
}

func (s *AgressiveStrategy) Name() string { return "AgressiveStrategy" }

func (s *AgressiveStrategy) Interval() string { return "15m" }

func (s *AgressiveStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *AgressiveStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &AgressiveStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *AgressiveStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	t := s.thresholds
	if len(quotes) < s.Limit() {
		return models.Inconclusive, 0
	}

	series := toTimeSeries(quotes, s.Interval())
	last := len(series.Candles) - 1
	closePrices := techan.NewClosePriceIndicator(series)

	emaShort := techan.NewEMAIndicator(closePrices, t.SmaShortTerm).Calculate(last).Float()
	emaLong := techan.NewEMAIndicator(closePrices, t.SmaLongTerm).Calculate(last).Float()
	rsi := techan.NewRelativeStrengthIndexIndicator(closePrices, t.RsiPeriod).Calculate(last).Float()
	macdHistogram := techan.NewMACDHistogramIndicator(
		techan.NewMACDIndicator(closePrices, t.MacdFastPeriod, t.MacdSlowPeriod), t.MacdSignalPeriod).Calculate(last).Float()
	bbUpper := techan.NewBollingerUpperBandIndicator(closePrices, t.BollingerBandsPeriod, t.BollingerBandsDeviation).Calculate(last).Float()
	bbLower := techan.NewBollingerLowerBandIndicator(closePrices, t.BollingerBandsPeriod, t.BollingerBandsDeviation).Calculate(last).Float()
	stochasticK := indicators.NewStochasticOscillatorKIndicator(series, t.StochasticPeriod).Calculate(last).Float()
	adx := indicators.NewAverageDirectionalIndexIndicator(series, t.AdxPeriod).Calculate(last).Float()

	price := currentPrice.InexactFloat64()
	score := 0
	signal := models.Hold

	// RSI scoring
	if rsi < float64(t.RsiOversold) {
		score += truncScore(float64(t.RsiOversold)-rsi, float64(t.RsiOversold))
	} else if rsi > float64(t.RsiOverbought) {
		score += truncScore(rsi-float64(t.RsiOverbought), float64(100-t.RsiOverbought))
	}

	// MACD scoring, increased sensitivity
	score += truncScore(abs(macdHistogram), 50)

	// Bollinger Bands scoring
	if price < bbLower {
		score += truncScore(bbLower-price, bbLower)
	} else if price > bbUpper {
		score += truncScore(price-bbUpper, bbUpper)
	}

	// EMA cross scoring, short and long term
	if price > emaShort {
		score += truncScore(price-emaShort, emaShort)
	}
	if price > emaLong {
		score += truncScore(price-emaLong, emaLong)
	} else if price < emaLong {
		score += truncScore(emaLong-price, emaLong)
	}

	// Stochastic oscillator scoring
	if stochasticK < t.StochasticOversold {
		score += truncScore(t.StochasticOversold-stochasticK, t.StochasticOversold)
	} else if stochasticK > t.StochasticOverbought {
		score += truncScore(stochasticK-t.StochasticOverbought, 100-t.StochasticOverbought)
	}

	// ADX scoring
	if adx > t.AdxStrongTrend {
		score += truncScore(adx-t.AdxStrongTrend, 100-t.AdxStrongTrend)
	}

	if score >= t.BuyThreshold {
		if price > emaLong {
			signal = models.Buy
		} else {
			signal = models.Sell
		}
	}

	return signal, score
}
