package helpers

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMeanAndSum(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.Equal(t, 10.0, Sum(values))
	assert.Equal(t, 2.5, Mean(values))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestStdDevVariants(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 2.0, StdDevPopulation(values), 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(values), 1e-9)
	assert.Equal(t, 0.0, StdDev([]float64{42}))
}

func TestDecimalMinMax(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(7)

	assert.True(t, DecimalMin(a, b).Equal(a))
	assert.True(t, DecimalMax(a, b).Equal(b))
}

func TestGetSymbolFromMarket(t *testing.T) {
	assert.Equal(t, "BTC", GetSymbolFromMarket("BTC-EUR"))
	assert.Equal(t, "ETH", GetSymbolFromMarket("ETH-EUR"))
	assert.Equal(t, "SOL", GetSymbolFromMarket("SOL"))
}
