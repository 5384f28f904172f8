package backtesting

import (
	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

var (
	tradeMargin      = decimal.NewFromFloat(0.9975)
	minimumTradeSize = decimal.NewFromInt(5)
)

type assetBalance struct {
	tokenAmount  decimal.Decimal
	currentPrice decimal.Decimal
}

// PortfolioManager is the simulated ledger of cash plus per-market token
// balances. All mutation is in-memory; trades that fail a balance check are
// skipped silently, modeling an exchange rejection.
type PortfolioManager struct {
	cashBalance decimal.Decimal
	assets      map[string]*assetBalance
}

func NewPortfolioManager() *PortfolioManager {
	return &PortfolioManager{
		cashBalance: decimal.Zero,
		assets:      make(map[string]*assetBalance),
	}
}

func (pm *PortfolioManager) SetCash(amount decimal.Decimal) {
	pm.cashBalance = amount
}

func (pm *PortfolioManager) SetTokenBalance(market string, amount decimal.Decimal) {
	pm.asset(market).tokenAmount = amount
}

func (pm *PortfolioManager) SetTokenCurrentPrice(market string, price decimal.Decimal) {
	pm.asset(market).currentPrice = price
}

func (pm *PortfolioManager) GetCashBalance() decimal.Decimal {
	return pm.cashBalance
}

func (pm *PortfolioManager) GetAssetTokenBalance(market string) decimal.Decimal {
	return pm.asset(market).tokenAmount
}

func (pm *PortfolioManager) GetCurrentTokenPrice(market string) decimal.Decimal {
	return pm.asset(market).currentPrice
}

func (pm *PortfolioManager) GetAssetEuroBalance(market string) decimal.Decimal {
	a := pm.asset(market)
	return a.tokenAmount.Mul(a.currentPrice)
}

// GetAccountTotal sums every asset valued at its current price plus cash.
func (pm *PortfolioManager) GetAccountTotal() decimal.Decimal {
	total := pm.cashBalance
	for _, a := range pm.assets {
		total = total.Add(a.tokenAmount.Mul(a.currentPrice))
	}
	return total
}

// ExecuteTrade applies a single trade action to the ledger. The asset is
// marked to the action's price before anything else, even for trades that
// end up skipped. Buys and sells below the minimum order size are ignored.
func (pm *PortfolioManager) ExecuteTrade(action models.TradeAction) {
	a := pm.asset(action.Market)
	a.currentPrice = action.CurrentTokenPrice

	if action.AmountInEuro.LessThan(minimumTradeSize) {
		return
	}

	switch action.Action {
	case models.Buy:
		effective := helpers.DecimalMin(pm.cashBalance, action.AmountInEuro)
		if pm.cashBalance.LessThan(effective) || action.CurrentTokenPrice.IsZero() {
			return
		}
		tokenAmount := effective.Div(action.CurrentTokenPrice)
		a.tokenAmount = a.tokenAmount.Add(tokenAmount.Mul(tradeMargin))
		pm.cashBalance = pm.cashBalance.Sub(effective)
	case models.Sell:
		if action.CurrentTokenPrice.IsZero() {
			return
		}
		effective := helpers.DecimalMin(pm.GetAssetEuroBalance(action.Market), action.AmountInEuro)
		tokenAmount := effective.Div(action.CurrentTokenPrice)
		if a.tokenAmount.LessThan(tokenAmount) {
			return
		}
		a.tokenAmount = a.tokenAmount.Sub(tokenAmount)
		pm.cashBalance = pm.cashBalance.Add(effective.Mul(tradeMargin))
	}
}

func (pm *PortfolioManager) asset(market string) *assetBalance {
	if a, ok := pm.assets[market]; ok {
		return a
	}
	a := &assetBalance{tokenAmount: decimal.Zero, currentPrice: decimal.Zero}
	pm.assets[market] = a
	return a
}
