package strategies

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

// HoldStrategy never trades on its own. The executor special-cases it into a
// buy-once-hold-forever baseline by replacing its first action with a
// full-balance buy.
type HoldStrategy struct {
	baseStrategy
}

func NewHoldStrategy() *HoldStrategy {
	return &HoldStrategy{baseStrategy{thresholds: models.DefaultThresholds()}}
}

func (s *HoldStrategy) Name() string { return "HoldStrategy" }

func (s *HoldStrategy) Interval() string { return "1h" }

func (s *HoldStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *HoldStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &HoldStrategy{baseStrategy{thresholds: thresholds}}
}

func (s *HoldStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	return models.Hold, 0
}
