package interfaces

import (
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
)

// CandleRepository stores and retrieves historical candles, deduplicated by
// (market, date) and returned ascending by date.
type CandleRepository interface {
	GetCandles(market string, start time.Time, end time.Time) ([]models.Quote, error)
	AddCandles(market string, quotes []models.Quote) error
}

// ThresholdRepository persists tuned threshold sets keyed by
// (strategy, market, createdAt). A missing row is (nil, nil), not an error.
type ThresholdRepository interface {
	GetLatestThresholds(strategy string, market string) (*models.IndicatorThresholds, error)

	// GetLatestDecayedThresholds reads the latest thresholds with the
	// persisted highscore decayed by age: highscore *= exp(-decayRate*days).
	GetLatestDecayedThresholds(strategy string, market string, decayRate float64) (*models.IndicatorThresholds, error)

	InsertThresholds(thresholds *models.IndicatorThresholds) error
}
