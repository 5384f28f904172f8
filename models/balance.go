package models

import "github.com/shopspring/decimal"

// Balance is an exchange account balance for one symbol.
type Balance struct {
	Symbol    string
	Available decimal.Decimal
	InOrder   decimal.Decimal
}
