package helpers

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

func Sum(numbers []float64) (total float64) {
	for _, x := range numbers {
		total += x
	}
	return total
}

func Mean(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	return Sum(numbers) / float64(len(numbers))
}

// StdDev is the sample standard deviation (divide by N-1), used for the
// volatility windows.
func StdDev(numbers []float64) float64 {
	if len(numbers) < 2 {
		return 0
	}
	mean := Mean(numbers)
	total := 0.0
	for _, number := range numbers {
		total += math.Pow(number-mean, 2)
	}
	variance := total / float64(len(numbers)-1)
	return math.Sqrt(variance)
}

// StdDevPopulation divides by N. The Sharpe computation depends on this
// exact variant.
func StdDevPopulation(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	mean := Mean(numbers)
	total := 0.0
	for _, number := range numbers {
		total += math.Pow(number-mean, 2)
	}
	variance := total / float64(len(numbers))
	return math.Sqrt(variance)
}

func DecimalMin(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return b
	}
	return a
}

func DecimalMax(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return b
	}
	return a
}

// GetSymbolFromMarket turns a market pair like "BTC-EUR" into its base
// symbol "BTC".
func GetSymbolFromMarket(market string) string {
	return strings.SplitN(market, "-", 2)[0]
}
