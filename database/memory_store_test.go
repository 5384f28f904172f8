package database

import (
	"testing"
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreCandlesDeduplicateAndSort(t *testing.T) {
	store := NewMemoryStore()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := models.NewQuote(start, 100, 101, 99, 100, 1)
	second := models.NewQuote(start.Add(time.Hour), 101, 102, 100, 101, 1)
	updated := models.NewQuote(start, 100, 105, 99, 104, 2)

	assert.NoError(t, store.AddCandles("BTC-EUR", []models.Quote{second, first}))
	assert.NoError(t, store.AddCandles("BTC-EUR", []models.Quote{updated}))

	quotes, err := store.GetCandles("BTC-EUR", start, start.Add(2*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, quotes, 2)
	assert.True(t, quotes[0].Date.Before(quotes[1].Date))
	assert.True(t, quotes[0].Close.Equal(updated.Close), "latest write should win")
}

func TestMemoryStoreCandleRangeFilter(t *testing.T) {
	store := NewMemoryStore()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var quotes []models.Quote
	for i := 0; i < 10; i++ {
		quotes = append(quotes, models.NewQuote(start.Add(time.Duration(i)*time.Hour), 100, 101, 99, 100, 1))
	}
	assert.NoError(t, store.AddCandles("BTC-EUR", quotes))

	got, err := store.GetCandles("BTC-EUR", start.Add(2*time.Hour), start.Add(5*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestMemoryStoreThresholdsLatestWins(t *testing.T) {
	store := NewMemoryStore()

	older := models.DefaultThresholds()
	older.Strategy = "ModerateStrategy"
	older.Market = "BTC-EUR"
	older.Highscore = 320
	older.CreatedAt = time.Now().Add(-48 * time.Hour)

	newer := models.DefaultThresholds()
	newer.Strategy = "ModerateStrategy"
	newer.Market = "BTC-EUR"
	newer.Highscore = 340
	newer.CreatedAt = time.Now().Add(-time.Hour)

	assert.NoError(t, store.InsertThresholds(&older))
	assert.NoError(t, store.InsertThresholds(&newer))

	latest, err := store.GetLatestThresholds("ModerateStrategy", "BTC-EUR")
	assert.NoError(t, err)
	assert.NotNil(t, latest)
	assert.Equal(t, 340.0, latest.Highscore)

	missing, err := store.GetLatestThresholds("ModerateStrategy", "ETH-EUR")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreDecayedHighscore(t *testing.T) {
	store := NewMemoryStore()

	thresholds := models.DefaultThresholds()
	thresholds.Strategy = "ScoredStrategy"
	thresholds.Market = "BTC-EUR"
	thresholds.Highscore = 100
	thresholds.CreatedAt = time.Now().Add(-10 * 24 * time.Hour)
	assert.NoError(t, store.InsertThresholds(&thresholds))

	decayed, err := store.GetLatestDecayedThresholds("ScoredStrategy", "BTC-EUR", 0.1)
	assert.NoError(t, err)
	assert.NotNil(t, decayed)
	// 100 * exp(-0.1 * 10)
	assert.InDelta(t, 36.79, decayed.Highscore, 0.1)

	// The stored record keeps its undecayed highscore.
	stored, err := store.GetLatestThresholds("ScoredStrategy", "BTC-EUR")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, stored.Highscore)
}
