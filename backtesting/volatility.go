package backtesting

import (
	"math"

	"github.com/EschauzierRob/BitBetMatic/helpers"
)

const (
	volatilityWindowSize = 30
	minDecayRate         = 0.01
	maxDecayRate         = 0.1
)

// CalculateLogReturns maps a price series onto its log returns.
func CalculateLogReturns(prices []float64) []float64 {
	var logReturns []float64
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			continue
		}
		logReturns = append(logReturns, math.Log(prices[i]/prices[i-1]))
	}
	return logReturns
}

// CalculateVolatilityMetrics computes rolling-window volatilities over the
// log returns and reports the current, lowest and highest window.
func CalculateVolatilityMetrics(prices []float64, windowSize int) (current, min, max float64) {
	logReturns := CalculateLogReturns(prices)
	if len(logReturns) < windowSize {
		return 0, 0, 0
	}

	min = math.Inf(1)
	max = math.Inf(-1)
	for i := 0; i <= len(logReturns)-windowSize; i++ {
		vol := helpers.StdDev(logReturns[i : i+windowSize])
		if vol < min {
			min = vol
		}
		if vol > max {
			max = vol
		}
	}

	current = helpers.StdDev(logReturns[len(logReturns)-windowSize:])
	return current, min, max
}

// CalculateDecayRate maps recent price volatility onto the highscore decay
// rate: the more volatile the market, the faster a stored winner goes stale.
// The result is clamped to [0.01, 0.1].
func CalculateDecayRate(prices []float64) float64 {
	current, min, max := CalculateVolatilityMetrics(prices, volatilityWindowSize)
	if max <= min {
		return minDecayRate
	}

	normalized := (current - min) / (max - min)
	decayRate := minDecayRate + (maxDecayRate-minDecayRate)*normalized

	return math.Min(math.Max(decayRate, minDecayRate), maxDecayRate)
}
