package backtesting

import (
	"math"
	"math/rand"

	"github.com/EschauzierRob/BitBetMatic/models"
)

// GenerateThresholdVariations produces count mutated copies of the base
// thresholds. Every numeric field is perturbed independently by uniform
// noise of up to maxDeviationPercentage percent of its own magnitude, then
// clamped to its floor so the variant stays computable: periods keep their
// minimum lookback, the MACD slow period stays above the fast one and the
// parabolic SAR maximum stays above its step.
func GenerateThresholdVariations(base models.IndicatorThresholds, count int, maxDeviationPercentage float64) []models.IndicatorThresholds {
	variants := make([]models.IndicatorThresholds, 0, count)

	randomInt := func(baseValue int) int {
		deviation := int(math.Round(math.Abs(float64(baseValue)) * maxDeviationPercentage / 100))
		if deviation == 0 {
			return baseValue
		}
		return baseValue + rand.Intn(2*deviation+1) - deviation
	}
	randomFloat := func(baseValue float64) float64 {
		deviation := math.Abs(baseValue) * maxDeviationPercentage / 100
		return baseValue + rand.Float64()*2*deviation - deviation
	}
	maxInt := func(a, b int) int {
		if a > b {
			return a
		}
		return b
	}

	for i := 0; i < count; i++ {
		macdFast := maxInt(1, randomInt(base.MacdFastPeriod))
		smaShort := maxInt(1, randomInt(base.SmaShortTerm))

		variants = append(variants, models.IndicatorThresholds{
			RsiOverbought: intAbs(randomInt(base.RsiOverbought)),
			RsiOversold:   intAbs(randomInt(base.RsiOversold)),
			RsiPeriod:     maxInt(1, randomInt(base.RsiPeriod)),

			MacdFastPeriod:   macdFast,
			MacdSlowPeriod:   maxInt(macdFast+1, randomInt(base.MacdSlowPeriod)),
			MacdSignalPeriod: maxInt(1, randomInt(base.MacdSignalPeriod)),
			MacdSignalLine:   randomFloat(base.MacdSignalLine),

			AtrMultiplier: randomFloat(base.AtrMultiplier),
			AtrPeriod:     maxInt(2, randomInt(base.AtrPeriod)),

			SmaShortTerm: smaShort,
			SmaLongTerm:  maxInt(smaShort+1, randomInt(base.SmaLongTerm)),

			ParabolicSarStep: math.Max(0.005, randomFloat(base.ParabolicSarStep)),
			ParabolicSarMax:  math.Max(randomFloat(base.ParabolicSarMax), base.ParabolicSarStep*1.1),

			BollingerBandsPeriod:    maxInt(2, randomInt(base.BollingerBandsPeriod)),
			BollingerBandsDeviation: randomFloat(base.BollingerBandsDeviation),

			AdxStrongTrend: randomFloat(base.AdxStrongTrend),
			AdxPeriod:      maxInt(2, randomInt(base.AdxPeriod)),

			StochasticOverbought:   randomFloat(base.StochasticOverbought),
			StochasticOversold:     randomFloat(base.StochasticOversold),
			StochasticPeriod:       maxInt(1, randomInt(base.StochasticPeriod)),
			StochasticSignalPeriod: maxInt(1, randomInt(base.StochasticSignalPeriod)),

			RocPeriod: maxInt(1, randomInt(base.RocPeriod)),

			BuyThreshold:  intAbs(randomInt(base.BuyThreshold)),
			SellThreshold: intAbs(randomInt(base.SellThreshold)),

			ScoreMultiplier: randomFloat(base.ScoreMultiplier),
		})
	}

	return variants
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
