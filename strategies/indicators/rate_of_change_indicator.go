package indicators

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

type rateOfChangeIndicator struct {
	indicator techan.Indicator
	window    int
}

// NewRateOfChangeIndicator measures momentum as the percentage change of the
// base indicator over the trailing window.
func NewRateOfChangeIndicator(baseIndicator techan.Indicator, window int) techan.Indicator {
	return rateOfChangeIndicator{
		indicator: baseIndicator,
		window:    window,
	}
}

func (roc rateOfChangeIndicator) Calculate(index int) big.Decimal {
	if index < roc.window {
		return big.ZERO
	}

	current := roc.indicator.Calculate(index)
	previous := roc.indicator.Calculate(index - roc.window)

	if previous.EQ(big.ZERO) {
		return big.ZERO
	}

	return current.Sub(previous).Div(previous).Mul(big.NewDecimal(100))
}
