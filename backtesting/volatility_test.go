package backtesting

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLogReturns(t *testing.T) {
	returns := CalculateLogReturns([]float64{100, 110, 99})

	assert.Len(t, returns, 2)
	assert.InDelta(t, math.Log(1.1), returns[0], 1e-9)
	assert.InDelta(t, math.Log(0.9), returns[1], 1e-9)
}

func TestCalculateLogReturnsSkipsNonPositivePrices(t *testing.T) {
	returns := CalculateLogReturns([]float64{100, 0, 110})
	assert.Empty(t, returns)
}

func TestCalculateDecayRateStaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Calm first half, wild second half: current volatility sits near the
	// observed maximum, so the decay rate should be pushed toward the cap.
	prices := make([]float64, 0, 200)
	price := 100.0
	for i := 0; i < 100; i++ {
		price *= 1 + rng.Float64()*0.002 - 0.001
		prices = append(prices, price)
	}
	for i := 0; i < 100; i++ {
		price *= 1 + rng.Float64()*0.2 - 0.1
		prices = append(prices, price)
	}

	rate := CalculateDecayRate(prices)
	assert.GreaterOrEqual(t, rate, 0.01)
	assert.LessOrEqual(t, rate, 0.1)
	assert.Greater(t, rate, 0.05)
}

func TestCalculateDecayRateOnShortSeriesFallsBack(t *testing.T) {
	assert.Equal(t, 0.01, CalculateDecayRate([]float64{100, 101, 102}))
	assert.Equal(t, 0.01, CalculateDecayRate(nil))
}
