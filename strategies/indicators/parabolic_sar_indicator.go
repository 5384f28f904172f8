package indicators

import (
	"math"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

type parabolicSarIndicator struct {
	series *techan.TimeSeries
	step   float64
	max    float64
}

// NewParabolicSarIndicator is the parabolic stop-and-reverse level: it
// trails price during a trend and flips side on reversal. Step is the
// acceleration increment, max its ceiling.
func NewParabolicSarIndicator(series *techan.TimeSeries, step float64, max float64) techan.Indicator {
	return parabolicSarIndicator{
		series: series,
		step:   step,
		max:    max,
	}
}

func (psar parabolicSarIndicator) Calculate(index int) big.Decimal {
	candles := psar.series.Candles
	if index < 1 {
		return big.ZERO
	}

	uptrend := candles[1].ClosePrice.GT(candles[0].ClosePrice)
	sar := candles[0].MinPrice.Float()
	extremePoint := candles[0].MaxPrice.Float()
	if !uptrend {
		sar = candles[0].MaxPrice.Float()
		extremePoint = candles[0].MinPrice.Float()
	}
	accelerationFactor := psar.step

	for i := 1; i <= index; i++ {
		high := candles[i].MaxPrice.Float()
		low := candles[i].MinPrice.Float()

		sar = sar + accelerationFactor*(extremePoint-sar)

		if uptrend {
			// SAR may never move above the prior low
			sar = math.Min(sar, candles[i-1].MinPrice.Float())
			if low < sar {
				uptrend = false
				sar = extremePoint
				extremePoint = low
				accelerationFactor = psar.step
				continue
			}
			if high > extremePoint {
				extremePoint = high
				accelerationFactor = math.Min(accelerationFactor+psar.step, psar.max)
			}
		} else {
			sar = math.Max(sar, candles[i-1].MaxPrice.Float())
			if high > sar {
				uptrend = true
				sar = extremePoint
				extremePoint = high
				accelerationFactor = psar.step
				continue
			}
			if low < extremePoint {
				extremePoint = low
				accelerationFactor = math.Min(accelerationFactor+psar.step, psar.max)
			}
		}
	}

	return big.NewDecimal(sar)
}
