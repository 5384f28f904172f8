package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/strategies/indicators"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
)

// AdvancedStrategy keeps separate buy and sell scores instead of one signed
// accumulator. Whichever side accumulates strictly more wins; a tie holds.
type AdvancedStrategy struct {
	baseStrategy
}

func NewAdvancedStrategy() *AdvancedStrategy {
	return &AdvancedStrategy{baseStrategy{thresholds: models.DefaultThresholds()}}
}

func (s *AdvancedStrategy) Name() string { return "AdvancedStrategy" }

func (s *AdvancedStrategy) Interval() string { return "1h" }

func (s *AdvancedStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *AdvancedStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &AdvancedStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *AdvancedStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
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
	adx := indicators.NewAverageDirectionalIndexIndicator(series, t.AdxPeriod).Calculate(last).Float()
	psar := indicators.NewParabolicSarIndicator(series, t.ParabolicSarStep, t.ParabolicSarMax).Calculate(last).Float()

	price := currentPrice.InexactFloat64()
	buyScore := 0
	sellScore := 0

	// RSI scoring
	if rsi < float64(t.RsiOversold) {
		buyScore += truncScore(float64(t.RsiOversold)-rsi, float64(t.RsiOversold))
	} else if rsi > float64(t.RsiOverbought) {
		sellScore += truncScore(rsi-float64(t.RsiOverbought), float64(100-t.RsiOverbought))
	}

	// MACD scoring: the histogram sign tells which side of the signal line
	// the MACD line sits on.
	if macdHistogram > 0 {
		buyScore += truncScore(abs(macdHistogram), 100)
	} else {
		sellScore += truncScore(abs(macdHistogram), 100)
	}

	// Bollinger Bands scoring
	if price < bbLower {
		buyScore += truncScore(bbLower-price, bbLower)
	} else if price > bbUpper {
		sellScore += truncScore(price-bbUpper, bbUpper)
	}

	// EMA cross scoring
	if price > ema {
		buyScore += truncScore(price-ema, ema)
	} else if price < ema {
		sellScore += truncScore(ema-price, ema)
	}

	// ADX scoring: strength confirms whichever side of the EMA we are on
	if adx > t.AdxStrongTrend {
		if price > ema {
			buyScore += truncScore(adx, 50)
		} else {
			sellScore += truncScore(adx, 50)
		}
	}

	// Parabolic SAR scoring
	if price > psar {
		buyScore += 50
	} else if price < psar {
		sellScore += 50
	}

	if buyScore > sellScore {
		return models.Buy, buyScore
	}
	if sellScore > buyScore {
		return models.Sell, sellScore
	}
	return models.Hold, 0
}
