package indicators

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

type stochasticOscillatorKIndicator struct {
	closePrice techan.Indicator
	minLow     techan.Indicator
	maxHigh    techan.Indicator
}

// NewStochasticOscillatorKIndicator is the raw %K line: where the close sits
// inside the trailing high/low range, on a 0-100 scale.
func NewStochasticOscillatorKIndicator(series *techan.TimeSeries, window int) techan.Indicator {
	return stochasticOscillatorKIndicator{
		closePrice: techan.NewClosePriceIndicator(series),
		minLow:     techan.NewMinimumValueIndicator(techan.NewLowPriceIndicator(series), window),
		maxHigh:    techan.NewMaximumValueIndicator(techan.NewHighPriceIndicator(series), window),
	}
}

func (sto stochasticOscillatorKIndicator) Calculate(index int) big.Decimal {
	lowest := sto.minLow.Calculate(index)
	highest := sto.maxHigh.Calculate(index)

	divisor := highest.Sub(lowest)
	if divisor.EQ(big.ZERO) {
		return big.ZERO
	}

	return sto.closePrice.Calculate(index).Sub(lowest).Div(divisor).Mul(big.NewDecimal(100))
}

// NewStochasticOscillatorDIndicator smooths %K into the %D signal line.
func NewStochasticOscillatorDIndicator(k techan.Indicator, window int) techan.Indicator {
	return techan.NewSimpleMovingAverage(k, window)
}
