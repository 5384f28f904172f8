package backtesting

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// RiskOverlay guards an open position with two stop losses at once: a
// trailing stop that follows the highest price seen, and a static stop
// anchored on the entry price. The effective stop is the higher of the two.
type RiskOverlay struct {
	staticStopLossThreshold    decimal.Decimal
	trailingStopLossPercentage decimal.Decimal

	highestPrice  decimal.Decimal
	stopLossPrice decimal.Decimal
	entryPrice    decimal.Decimal
}

func NewRiskOverlay(staticStopLossThreshold, trailingStopLossPercentage decimal.Decimal) *RiskOverlay {
	return &RiskOverlay{
		staticStopLossThreshold:    staticStopLossThreshold,
		trailingStopLossPercentage: trailingStopLossPercentage,
	}
}

func (r *RiskOverlay) UpdateEntryPrice(currentPrice decimal.Decimal) {
	r.entryPrice = currentPrice
}

func (r *RiskOverlay) UpdatePrice(currentPrice decimal.Decimal) {
	if r.entryPrice.IsZero() {
		r.entryPrice = currentPrice
	}

	if currentPrice.GreaterThan(r.highestPrice) {
		r.highestPrice = currentPrice
		trailingFactor := decimal.NewFromInt(1).Sub(r.trailingStopLossPercentage.Div(oneHundred))
		r.stopLossPrice = r.highestPrice.Mul(trailingFactor)
	}

	staticFactor := decimal.NewFromInt(1).Sub(r.staticStopLossThreshold.Div(oneHundred))
	staticLevel := r.entryPrice.Mul(staticFactor)
	if staticLevel.GreaterThan(r.stopLossPrice) {
		r.stopLossPrice = staticLevel
	}
}

func (r *RiskOverlay) ShouldSell(currentPrice decimal.Decimal) bool {
	return currentPrice.LessThanOrEqual(r.stopLossPrice)
}
