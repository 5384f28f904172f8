package interfaces

import "github.com/shopspring/decimal"

// Portfolio is the read surface strategies use to size trades. The full
// mutable ledger lives in the backtesting package.
type Portfolio interface {
	GetCashBalance() decimal.Decimal
	GetAssetTokenBalance(market string) decimal.Decimal
	GetAssetEuroBalance(market string) decimal.Decimal
	GetCurrentTokenPrice(market string) decimal.Decimal
	GetAccountTotal() decimal.Decimal
}
