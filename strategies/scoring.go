package strategies

import (
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// toTimeSeries converts a quote window into a techan series. Quotes are
// expected ascending by date; the interval string sets the candle period.
func toTimeSeries(quotes []models.Quote, interval string) *techan.TimeSeries {
	period, err := str2duration.ParseDuration(interval)
	if err != nil {
		period = time.Hour
	}

	series := techan.NewTimeSeries()
	for _, q := range quotes {
		candle := techan.NewCandle(techan.NewTimePeriod(q.Date, period))
		candle.OpenPrice = big.NewFromString(q.Open.String())
		candle.ClosePrice = big.NewFromString(q.Close.String())
		candle.MaxPrice = big.NewFromString(q.High.String())
		candle.MinPrice = big.NewFromString(q.Low.String())
		candle.Volume = big.NewFromString(q.Volume.String())
		series.AddCandle(candle)
	}
	return series
}

// truncScore is the shared per-indicator normalization: distance from the
// threshold over the threshold's magnitude, on a 0-100 scale, truncated to
// int per component. Thresholds are calibrated against the truncation, so
// components must not be accumulated as floats. A zero magnitude scores 0
// rather than faulting.
func truncScore(distance, magnitude float64) int {
	if magnitude == 0 {
		return 0
	}
	return int(distance / magnitude * 100)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
