package database

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Candle struct {
	gorm.Model
	Market string          `json:"market" gorm:"uniqueIndex:idx_market_date;size:200"`
	Date   time.Time       `json:"date" gorm:"uniqueIndex:idx_market_date"`
	Open   decimal.Decimal `json:"open" gorm:"type:decimal(30,10)"`
	High   decimal.Decimal `json:"high" gorm:"type:decimal(30,10)"`
	Low    decimal.Decimal `json:"low" gorm:"type:decimal(30,10)"`
	Close  decimal.Decimal `json:"close" gorm:"type:decimal(30,10)"`
	Volume decimal.Decimal `json:"volume" gorm:"type:decimal(30,10)"`
}
