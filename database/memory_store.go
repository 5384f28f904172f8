package database

import (
	"math"
	"sync"
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
)

// MemoryStore is the in-process fallback for runs without a database: same
// repository contracts, nothing survives the process.
type MemoryStore struct {
	mu         sync.Mutex
	candles    map[string]map[time.Time]models.Quote
	thresholds []models.IndicatorThresholds
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		candles: make(map[string]map[time.Time]models.Quote),
	}
}

func (m *MemoryStore) GetCandles(market string, start time.Time, end time.Time) ([]models.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var quotes []models.Quote
	for date, q := range m.candles[market] {
		if date.Before(start) || date.After(end) {
			continue
		}
		quotes = append(quotes, q)
	}
	return models.SortQuotes(quotes), nil
}

func (m *MemoryStore) AddCandles(market string, quotes []models.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.candles[market] == nil {
		m.candles[market] = make(map[time.Time]models.Quote)
	}
	for _, q := range quotes {
		m.candles[market][q.Date] = q
	}
	return nil
}

func (m *MemoryStore) GetLatestThresholds(strategy string, market string) (*models.IndicatorThresholds, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *models.IndicatorThresholds
	for i := range m.thresholds {
		t := &m.thresholds[i]
		if t.Strategy != strategy || t.Market != market {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	if latest == nil {
		return nil, nil
	}

	copied := *latest
	return &copied, nil
}

func (m *MemoryStore) GetLatestDecayedThresholds(strategy string, market string, decayRate float64) (*models.IndicatorThresholds, error) {
	thresholds, err := m.GetLatestThresholds(strategy, market)
	if err != nil || thresholds == nil {
		return thresholds, err
	}

	ageInDays := time.Since(thresholds.CreatedAt).Hours() / 24
	thresholds.Highscore *= math.Exp(-decayRate * ageInDays)
	return thresholds, nil
}

func (m *MemoryStore) InsertThresholds(thresholds *models.IndicatorThresholds) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.thresholds = append(m.thresholds, *thresholds)
	return nil
}
