package backtesting

import (
	"fmt"
	"strings"

	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

var (
	slippageFactor      = decimal.NewFromFloat(0.001)
	minProfitPercentage = decimal.NewFromInt(1)
)

// Transaction is one buy/sell index pair in a quote series.
type Transaction struct {
	Buy  int
	Sell int
}

// MaxProfit solves the classic at-most-k-transactions problem over the
// candle series with dynamic programming, using slippage-adjusted buy and
// sell prices. It returns the achievable profit and the reconstructed
// transactions whose individual profit clears the minimum percentage.
func MaxProfit(maxTransactions int, candles []models.FlaggedQuote) (decimal.Decimal, []Transaction) {
	if len(candles) < 2 || maxTransactions < 1 {
		return decimal.Zero, nil
	}

	n := len(candles)
	dp := make([][]decimal.Decimal, maxTransactions+1)
	buyIndex := make([][]int, maxTransactions+1)
	for k := range dp {
		dp[k] = make([]decimal.Decimal, n)
		buyIndex[k] = make([]int, n)
		for t := range dp[k] {
			dp[k][t] = decimal.Zero
		}
	}

	for k := 1; k <= maxTransactions; k++ {
		maxDiff := buyPrice(candles[0]).Neg()
		tempBuyIndex := 0
		for t := 1; t < n; t++ {
			sell := sellPrice(candles[t])
			if sell.Add(maxDiff).GreaterThan(dp[k][t-1]) {
				dp[k][t] = sell.Add(maxDiff)
				buyIndex[k][t] = tempBuyIndex
			} else {
				dp[k][t] = dp[k][t-1]
				buyIndex[k][t] = buyIndex[k][t-1]
			}

			buy := buyPrice(candles[t])
			if dp[k-1][t].Sub(buy).GreaterThan(maxDiff) {
				maxDiff = dp[k-1][t].Sub(buy)
				tempBuyIndex = t
			}
		}
	}

	maxProfit := dp[maxTransactions][n-1]

	var transactions []Transaction
	remaining := maxTransactions
	tIndex := n - 1
	for remaining > 0 && tIndex > 0 {
		sellIdx := tIndex
		buyIdx := buyIndex[remaining][sellIdx]
		if buyIdx < sellIdx && profitPercentage(buyPrice(candles[buyIdx]), sellPrice(candles[sellIdx])).GreaterThan(minProfitPercentage) {
			transactions = append(transactions, Transaction{Buy: buyIdx, Sell: sellIdx})
			remaining--
		}
		tIndex = buyIdx - 1
	}

	// Reconstruction walks backwards, so reverse into chronological order.
	for i, j := 0, len(transactions)-1; i < j; i, j = i+1, j-1 {
		transactions[i], transactions[j] = transactions[j], transactions[i]
	}

	return maxProfit, transactions
}

// FlagOptimalTrades labels the candles with the buys and sells an oracle
// with hindsight would have made, capped at one transaction per ten candles.
// The flagged series is the training input for the ML strategy.
func FlagOptimalTrades(quotes []models.Quote) ([]models.FlaggedQuote, string) {
	candles := make([]models.FlaggedQuote, 0, len(quotes))
	for _, q := range quotes {
		candles = append(candles, models.FlaggedQuote{Quote: q, TradeAction: models.Hold})
	}

	maxProfit, transactions := MaxProfit(len(candles)/10, candles)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Maximum achievable profit: %s\n", maxProfit.StringFixed(2))
	sb.WriteString("Optimal transactions:\n")

	initialValue := decimal.NewFromInt(300)
	summedPercentage := decimal.NewFromInt(100)
	hundred := decimal.NewFromInt(100)

	for _, tx := range transactions {
		candles[tx.Buy].TradeAction = models.Buy
		candles[tx.Sell].TradeAction = models.Sell

		profit := candles[tx.Sell].Close.Sub(candles[tx.Buy].Close)
		percentage := decimal.Zero
		if !candles[tx.Buy].Close.IsZero() {
			percentage = profit.Div(candles[tx.Buy].Close).Mul(hundred)
		}
		summedPercentage = summedPercentage.Mul(decimal.NewFromInt(1).Add(percentage.Div(hundred)))

		fmt.Fprintf(&sb, "Buy at index %d (price %s), Sell at index %d (price %s) -> %s euro (%s%%) profit, running stake %s\n",
			tx.Buy, candles[tx.Buy].Close.StringFixed(2),
			tx.Sell, candles[tx.Sell].Close.StringFixed(2),
			profit.StringFixed(2), percentage.StringFixed(2),
			initialValue.Mul(summedPercentage.Div(hundred)).StringFixed(2))
	}

	return candles, sb.String()
}

func buyPrice(candle models.FlaggedQuote) decimal.Decimal {
	slipped := candle.Close.Mul(decimal.NewFromInt(1).Add(slippageFactor))
	return helpers.DecimalMax(candle.Low, slipped)
}

func sellPrice(candle models.FlaggedQuote) decimal.Decimal {
	slipped := candle.Close.Mul(decimal.NewFromInt(1).Sub(slippageFactor))
	return helpers.DecimalMin(candle.High, slipped)
}

func profitPercentage(buy, sell decimal.Decimal) decimal.Decimal {
	if buy.IsZero() {
		return decimal.Zero
	}
	return sell.Sub(buy).Div(buy).Mul(decimal.NewFromInt(100))
}
