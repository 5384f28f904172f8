package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
)

// forcedSellScore is returned when the ATR stop-loss rule fires, overriding
// whatever the indicator scoring produced.
const forcedSellScore = 200

// StoplossStrategy scores like ModerateStrategy but overrides the outcome
// with a hard rule: when the current price falls below the dynamic stop
// level (last close minus AtrMultiplier*ATR) it forces an immediate Sell.
type StoplossStrategy struct {
	baseStrategy
}

func NewStoplossStrategy() *StoplossStrategy {
	t := models.DefaultThresholds()
	t.RsiOversold = 32
	return &StoplossStrategy{baseStrategy{thresholds: t}}
}

func (s *StoplossStrategy) Name() string { return "StoplossStrategy" }

func (s *StoplossStrategy) Interval() string { return "1h" }

func (s *StoplossStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *StoplossStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &StoplossStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *StoplossStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	t := s.thresholds
	if len(quotes) < s.Limit() {
		return models.Inconclusive, 0
	}

	series := toTimeSeries(quotes, s.Interval())
	last := len(series.Candles) - 1
	closePrices := techan.NewClosePriceIndicator(series)

	atr := techan.NewAverageTrueRangeIndicator(series, t.AtrPeriod).Calculate(last).Float()
	ema := techan.NewEMAIndicator(closePrices, t.SmaLongTerm).Calculate(last).Float()
	rsi := techan.NewRelativeStrengthIndexIndicator(closePrices, t.RsiPeriod).Calculate(last).Float()
	macdHistogram := techan.NewMACDHistogramIndicator(
		techan.NewMACDIndicator(closePrices, t.MacdFastPeriod, t.MacdSlowPeriod), t.MacdSignalPeriod).Calculate(last).Float()
	bbUpper := techan.NewBollingerUpperBandIndicator(closePrices, t.BollingerBandsPeriod, t.BollingerBandsDeviation).Calculate(last).Float()
	bbLower := techan.NewBollingerLowerBandIndicator(closePrices, t.BollingerBandsPeriod, t.BollingerBandsDeviation).Calculate(last).Float()

	price := currentPrice.InexactFloat64()
	lastClose := series.Candles[last].ClosePrice.Float()
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

	// Dynamic stop-loss: anchored on the window's closing price so a live
	// tick below the band triggers the exit.
	stopLossLevel := lastClose - t.AtrMultiplier*atr
	if price < stopLossLevel {
		return models.Sell, forcedSellScore
	}

	if score >= t.BuyThreshold {
		if price > ema {
			signal = models.Buy
		} else {
			signal = models.Sell
		}
	}

	return signal, score
}
