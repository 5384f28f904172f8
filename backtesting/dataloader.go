package backtesting

import (
	"sync"
	"time"

	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
)

// DataLoader fetches historical candles through the exchange service and
// caches them per (interval, market). Requests for a range that reaches
// further back than the cache trigger backfill fetches, walking the end of
// the request window toward the oldest quote on record until the exchange
// has nothing older to give.
type DataLoader struct {
	exchange interfaces.ExchangeService

	mu    sync.Mutex
	cache map[string][]models.Quote
}

func NewDataLoader(exchange interfaces.ExchangeService) *DataLoader {
	return &DataLoader{
		exchange: exchange,
		cache:    make(map[string][]models.Quote),
	}
}

func (dl *DataLoader) LoadHistoricalData(market, interval string, limit int, start, end time.Time) ([]models.Quote, error) {
	key := interval + market

	dl.mu.Lock()
	defer dl.mu.Unlock()

	if dl.covers(key, start) {
		return dl.rangeFromCache(key, start, end), nil
	}

	fetchEnd := end
	if cached := dl.cache[key]; len(cached) > 0 {
		oldest := cached[0].Date
		if oldest.Before(fetchEnd) {
			fetchEnd = oldest
		}
	}

	for fetchEnd.After(start) {
		quotes, err := dl.exchange.GetCandleData(market, interval, limit, start, fetchEnd)
		if err != nil {
			return nil, err
		}
		if len(quotes) == 0 {
			break
		}

		dl.merge(key, quotes)

		oldest := dl.cache[key][0].Date
		if !oldest.Before(fetchEnd) {
			break
		}
		fetchEnd = oldest
	}

	return dl.rangeFromCache(key, start, end), nil
}

func (dl *DataLoader) covers(key string, start time.Time) bool {
	cached := dl.cache[key]
	return len(cached) > 0 && !cached[0].Date.After(start)
}

// merge folds new quotes into the cache, deduplicated by timestamp and
// sorted ascending.
func (dl *DataLoader) merge(key string, quotes []models.Quote) {
	seen := make(map[time.Time]struct{}, len(dl.cache[key]))
	for _, q := range dl.cache[key] {
		seen[q.Date] = struct{}{}
	}

	merged := dl.cache[key]
	for _, q := range quotes {
		if _, ok := seen[q.Date]; ok {
			continue
		}
		seen[q.Date] = struct{}{}
		merged = append(merged, q)
	}

	dl.cache[key] = models.SortQuotes(merged)
}

func (dl *DataLoader) rangeFromCache(key string, start, end time.Time) []models.Quote {
	var result []models.Quote
	for _, q := range dl.cache[key] {
		if q.Date.Before(start) || q.Date.After(end) {
			continue
		}
		result = append(result, q)
	}
	return result
}
