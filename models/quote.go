package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a single OHLCV candle. Quotes are immutable once loaded and are
// unique per (market, date).
type Quote struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

func NewQuote(date time.Time, open, high, low, closePrice, volume float64) Quote {
	return Quote{
		Date:   date,
		Open:   decimal.NewFromFloat(open),
		High:   decimal.NewFromFloat(high),
		Low:    decimal.NewFromFloat(low),
		Close:  decimal.NewFromFloat(closePrice),
		Volume: decimal.NewFromFloat(volume),
	}
}

// FlaggedQuote is a Quote annotated with the trade the optimal trade finder
// decided should happen on it. Used as ML training material.
type FlaggedQuote struct {
	Quote
	TradeAction BuySellHold
}

// SortQuotes returns a copy of quotes ordered ascending by date.
func SortQuotes(quotes []Quote) []Quote {
	sorted := make([]Quote, len(quotes))
	copy(sorted, quotes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
