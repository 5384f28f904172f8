package backtesting

import (
	"testing"
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExecuteTradeBuyAndSellRoundTrip(t *testing.T) {
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))

	price := decimal.NewFromInt(50000)
	pm.ExecuteTrade(models.TradeAction{
		Timestamp:         time.Now(),
		Action:            models.Buy,
		AmountInEuro:      decimal.NewFromInt(100),
		CurrentTokenPrice: price,
		Market:            BtcMarket,
	})

	assert.True(t, pm.GetAssetTokenBalance(BtcMarket).Equal(decimal.NewFromFloat(0.001995)),
		"got %s", pm.GetAssetTokenBalance(BtcMarket))
	assert.True(t, pm.GetCashBalance().Equal(decimal.NewFromInt(200)))

	pm.ExecuteTrade(models.TradeAction{
		Timestamp:         time.Now(),
		Action:            models.Sell,
		AmountInEuro:      decimal.NewFromFloat(99.75),
		CurrentTokenPrice: price,
		Market:            BtcMarket,
	})

	assert.True(t, pm.GetAssetTokenBalance(BtcMarket).IsZero())
	assert.True(t, pm.GetCashBalance().Equal(decimal.NewFromFloat(299.500625)),
		"got %s", pm.GetCashBalance())
}

func TestExecuteTradeBelowMinimumOnlyMarksToMarket(t *testing.T) {
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))
	pm.SetTokenBalance(BtcMarket, decimal.NewFromInt(1))

	pm.ExecuteTrade(models.TradeAction{
		Action:            models.Buy,
		AmountInEuro:      decimal.NewFromFloat(4.99),
		CurrentTokenPrice: decimal.NewFromInt(42000),
		Market:            BtcMarket,
	})

	assert.True(t, pm.GetCashBalance().Equal(decimal.NewFromInt(300)))
	assert.True(t, pm.GetAssetTokenBalance(BtcMarket).Equal(decimal.NewFromInt(1)))
	assert.True(t, pm.GetCurrentTokenPrice(BtcMarket).Equal(decimal.NewFromInt(42000)))
}

func TestExecuteTradeHoldIsIgnored(t *testing.T) {
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))

	pm.ExecuteTrade(models.TradeAction{
		Action:            models.Hold,
		AmountInEuro:      decimal.NewFromInt(100),
		CurrentTokenPrice: decimal.NewFromInt(42000),
		Market:            BtcMarket,
	})

	assert.True(t, pm.GetCashBalance().Equal(decimal.NewFromInt(300)))
	assert.True(t, pm.GetAssetTokenBalance(BtcMarket).IsZero())
	assert.True(t, pm.GetCurrentTokenPrice(BtcMarket).Equal(decimal.NewFromInt(42000)))
}

func TestExecuteTradeSellWithoutHoldingsIsRejected(t *testing.T) {
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))

	pm.ExecuteTrade(models.TradeAction{
		Action:            models.Sell,
		AmountInEuro:      decimal.NewFromInt(50),
		CurrentTokenPrice: decimal.NewFromInt(42000),
		Market:            BtcMarket,
	})

	assert.True(t, pm.GetCashBalance().Equal(decimal.NewFromInt(300)))
	assert.True(t, pm.GetAssetTokenBalance(BtcMarket).IsZero())
}

func TestAccountTotalNeverGainsFromRoundTrips(t *testing.T) {
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(300))
	price := decimal.NewFromInt(20000)

	previousTotal := pm.GetAccountTotal()
	for i := 0; i < 10; i++ {
		pm.ExecuteTrade(models.TradeAction{
			Action:            models.Buy,
			AmountInEuro:      decimal.NewFromInt(100),
			CurrentTokenPrice: price,
			Market:            BtcMarket,
		})
		pm.ExecuteTrade(models.TradeAction{
			Action:            models.Sell,
			AmountInEuro:      pm.GetAssetEuroBalance(BtcMarket),
			CurrentTokenPrice: price,
			Market:            BtcMarket,
		})

		total := pm.GetAccountTotal()
		assert.True(t, total.LessThanOrEqual(previousTotal),
			"round trip %d increased the total from %s to %s", i, previousTotal, total)
		previousTotal = total
	}
}

func TestGetAccountTotalSumsAssetsAndCash(t *testing.T) {
	pm := NewPortfolioManager()
	pm.SetCash(decimal.NewFromInt(100))
	pm.SetTokenBalance(BtcMarket, decimal.NewFromInt(2))
	pm.SetTokenCurrentPrice(BtcMarket, decimal.NewFromInt(30000))
	pm.SetTokenBalance(EthMarket, decimal.NewFromInt(3))
	pm.SetTokenCurrentPrice(EthMarket, decimal.NewFromInt(2000))

	assert.True(t, pm.GetAccountTotal().Equal(decimal.NewFromInt(66100)))
}
