package indicators

import (
	"math"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

type averageDirectionalIndexIndicator struct {
	series *techan.TimeSeries
	window int
}

// NewAverageDirectionalIndexIndicator is Wilder's ADX: trend strength on a
// 0-100 scale, needing roughly two windows of history before it reads.
func NewAverageDirectionalIndexIndicator(series *techan.TimeSeries, window int) techan.Indicator {
	return averageDirectionalIndexIndicator{
		series: series,
		window: window,
	}
}

func (adx averageDirectionalIndexIndicator) Calculate(index int) big.Decimal {
	w := adx.window
	if w < 1 || index < 2*w {
		return big.ZERO
	}

	candles := adx.series.Candles

	var smoothedTR, smoothedPlusDM, smoothedMinusDM float64
	var adxValue float64
	dxCount := 0

	for i := 1; i <= index; i++ {
		high := candles[i].MaxPrice.Float()
		low := candles[i].MinPrice.Float()
		prevHigh := candles[i-1].MaxPrice.Float()
		prevLow := candles[i-1].MinPrice.Float()
		prevClose := candles[i-1].ClosePrice.Float()

		tr := math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))

		upMove := high - prevHigh
		downMove := prevLow - low
		plusDM := 0.0
		minusDM := 0.0
		if upMove > downMove && upMove > 0 {
			plusDM = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM = downMove
		}

		if i <= w {
			smoothedTR += tr
			smoothedPlusDM += plusDM
			smoothedMinusDM += minusDM
			if i < w {
				continue
			}
		} else {
			smoothedTR = smoothedTR - smoothedTR/float64(w) + tr
			smoothedPlusDM = smoothedPlusDM - smoothedPlusDM/float64(w) + plusDM
			smoothedMinusDM = smoothedMinusDM - smoothedMinusDM/float64(w) + minusDM
		}

		if smoothedTR == 0 {
			continue
		}

		plusDI := 100 * smoothedPlusDM / smoothedTR
		minusDI := 100 * smoothedMinusDM / smoothedTR
		diSum := plusDI + minusDI
		if diSum == 0 {
			continue
		}
		dx := 100 * math.Abs(plusDI-minusDI) / diSum

		dxCount++
		if dxCount <= w {
			adxValue += dx
			if dxCount == w {
				adxValue /= float64(w)
			}
		} else {
			adxValue = (adxValue*float64(w-1) + dx) / float64(w)
		}
	}

	if dxCount < w {
		return big.ZERO
	}

	return big.NewDecimal(adxValue)
}
