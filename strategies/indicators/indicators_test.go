package indicators

import (
	"testing"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
)

func seriesFromCloses(closes []float64) *techan.TimeSeries {
	series := techan.NewTimeSeries()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candle := techan.NewCandle(techan.NewTimePeriod(start.Add(time.Duration(i)*time.Hour), time.Hour))
		candle.OpenPrice = big.NewDecimal(c)
		candle.ClosePrice = big.NewDecimal(c)
		candle.MaxPrice = big.NewDecimal(c * 1.02)
		candle.MinPrice = big.NewDecimal(c * 0.98)
		candle.Volume = big.NewDecimal(1000)
		series.AddCandle(candle)
	}
	return series
}

func TestRateOfChangeIndicator(t *testing.T) {
	series := seriesFromCloses([]float64{100, 102, 104, 106, 108, 110})
	roc := NewRateOfChangeIndicator(techan.NewClosePriceIndicator(series), 5)

	// (110 - 100) / 100 * 100
	assert.InDelta(t, 10.0, roc.Calculate(5).Float(), 1e-9)
}

func TestRateOfChangeIndicatorInsufficientHistory(t *testing.T) {
	series := seriesFromCloses([]float64{100, 102})
	roc := NewRateOfChangeIndicator(techan.NewClosePriceIndicator(series), 5)

	assert.True(t, roc.Calculate(1).EQ(big.ZERO))
}

func TestStochasticOscillatorKStaysInRange(t *testing.T) {
	series := seriesFromCloses([]float64{100, 105, 95, 110, 90, 115, 85, 120, 80, 125, 100, 105, 98, 112, 96})
	k := NewStochasticOscillatorKIndicator(series, 14)

	value := k.Calculate(14).Float()
	assert.GreaterOrEqual(t, value, 0.0)
	assert.LessOrEqual(t, value, 100.0)
}

func TestAverageDirectionalIndexNeedsWarmup(t *testing.T) {
	series := seriesFromCloses([]float64{100, 101, 102, 103, 104})
	adx := NewAverageDirectionalIndexIndicator(series, 14)

	assert.True(t, adx.Calculate(4).EQ(big.ZERO))
}

func TestParabolicSarTracksUptrendFromBelow(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + 2*float64(i)
	}
	series := seriesFromCloses(closes)
	psar := NewParabolicSarIndicator(series, 0.02, 0.2)

	last := len(closes) - 1
	sar := psar.Calculate(last).Float()
	assert.Less(t, sar, closes[last], "SAR should trail below price in an uptrend")
	assert.Greater(t, sar, 0.0)
}
