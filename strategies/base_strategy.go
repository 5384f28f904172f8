package strategies

import (
	"fmt"

	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

// minimumOrderSize is the exchange's smallest accepted order in euro.
var minimumOrderSize = decimal.NewFromInt(5)

var scoreScale = decimal.NewFromInt(1000)

// baseStrategy holds the threshold set and implements the trade sizing every
// variant shares: score/1000 of the relevant balance, floored at the minimum
// order size.
type baseStrategy struct {
	thresholds models.IndicatorThresholds
}

func (b *baseStrategy) Thresholds() *models.IndicatorThresholds {
	return &b.thresholds
}

func (b *baseStrategy) CalculateOutcome(currentPrice decimal.Decimal, score int, signal models.BuySellHold, portfolio interfaces.Portfolio, market string) (decimal.Decimal, string) {
	switch signal {
	case models.Buy:
		cash := portfolio.GetCashBalance()
		if cash.LessThan(minimumOrderSize) {
			return decimal.Zero, fmt.Sprintf("Hold %s: cash balance %s is below the minimum order size", market, cash.StringFixed(2))
		}
		amount := sizeOrder(cash, score)
		return amount, fmt.Sprintf("Buy %s euro of %s at %s", amount.StringFixed(2), market, currentPrice.StringFixed(2))
	case models.Sell:
		assetValue := portfolio.GetAssetEuroBalance(market)
		if assetValue.LessThan(minimumOrderSize) {
			return decimal.Zero, fmt.Sprintf("Hold %s: asset balance %s is below the minimum order size", market, assetValue.StringFixed(2))
		}
		amount := sizeOrder(assetValue, score)
		return amount, fmt.Sprintf("Sell %s euro of %s at %s", amount.StringFixed(2), market, currentPrice.StringFixed(2))
	default:
		return decimal.Zero, fmt.Sprintf("Hold %s at %s", market, currentPrice.StringFixed(2))
	}
}

func sizeOrder(available decimal.Decimal, score int) decimal.Decimal {
	amount := available.Mul(decimal.NewFromInt(int64(score))).Div(scoreScale)
	amount = helpers.DecimalMax(amount, minimumOrderSize)
	return helpers.DecimalMin(amount, available)
}
