package backtesting

import (
	"fmt"
	"math"

	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/models/analytics"
)

const dailyRiskFreeRate = 0.01 / 365

// ResultAnalyzer turns one backtest run (its ordered trade actions plus the
// final portfolio) into a narrative string, risk metrics and trade quality.
type ResultAnalyzer struct {
	strategy  interfaces.TradingStrategy
	actions   []models.TradeAction
	portfolio *PortfolioManager
}

func NewResultAnalyzer(strategy interfaces.TradingStrategy, actions []models.TradeAction, portfolio *PortfolioManager) *ResultAnalyzer {
	return &ResultAnalyzer{strategy: strategy, actions: actions, portfolio: portfolio}
}

func (ra *ResultAnalyzer) Analyze() (string, analytics.Metrics, analytics.TradeQuality) {
	values := ra.portfolioValueSeries()

	metrics := analytics.Metrics{
		SharpeRatio:     calculateSharpeRatio(values),
		MaximumDrawdown: CalculateMaximumDrawdown(values),
	}
	metrics.ProfitFactor, metrics.WinLossRatio = ra.calculateProfitMetrics()

	quality := ra.calculateTradeQuality(values)

	text := fmt.Sprintf("Strategy '%s' has a total of %s", ra.strategy.Name(), ra.portfolio.GetAccountTotal().StringFixed(2))
	return text, metrics, quality
}

// portfolioValueSeries replays the trade actions through a fresh portfolio
// and records the account total after every action.
func (ra *ResultAnalyzer) portfolioValueSeries() []float64 {
	replay := NewPortfolioManager()
	replay.SetCash(startingBalance)

	values := make([]float64, 0, len(ra.actions))
	for _, action := range ra.actions {
		replay.ExecuteTrade(action)
		values = append(values, replay.GetAccountTotal().InexactFloat64())
	}
	return values
}

func calculateSharpeRatio(values []float64) float64 {
	returns := pairwiseReturns(values)
	if len(returns) == 0 {
		return 0
	}
	stdDev := helpers.StdDevPopulation(returns)
	if stdDev == 0 {
		return 0
	}
	return (helpers.Mean(returns) - dailyRiskFreeRate) / stdDev
}

// CalculateMaximumDrawdown returns the largest peak-to-trough relative
// decline over the value series, as a fraction in [0, 1].
func CalculateMaximumDrawdown(values []float64) float64 {
	peak := math.Inf(-1)
	maxDrawdown := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			drawdown := (peak - v) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}
	return maxDrawdown
}

func pairwiseReturns(values []float64) []float64 {
	var returns []float64
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}
	return returns
}

// calculateProfitMetrics walks the trades keeping a weighted-average buy
// cost per market. Each sell is classified win or loss against that average.
// Total loss is taken from the negative unrealized P&L still held at the
// end, matching how the fitness scale was calibrated.
func (ra *ResultAnalyzer) calculateProfitMetrics() (profitFactor, winLossRatio float64) {
	type position struct {
		tokens  float64
		avgCost float64
	}
	positions := make(map[string]*position)

	totalProfit := 0.0
	totalLoss := 0.0
	wins, losses := 0, 0

	for _, action := range ra.actions {
		price := action.CurrentTokenPrice.InexactFloat64()
		amount := action.AmountInEuro.InexactFloat64()
		if price == 0 || amount == 0 {
			continue
		}

		pos, ok := positions[action.Market]
		if !ok {
			pos = &position{}
			positions[action.Market] = pos
		}

		switch action.Action {
		case models.Buy:
			tokens := amount / price * 0.9975
			totalCost := pos.avgCost*pos.tokens + amount
			pos.tokens += tokens
			if pos.tokens > 0 {
				pos.avgCost = totalCost / pos.tokens
			}
		case models.Sell:
			tokens := amount / price
			if tokens > pos.tokens {
				tokens = pos.tokens
			}
			if tokens == 0 {
				continue
			}
			pnl := (price - pos.avgCost) * tokens
			if pnl > 0 {
				totalProfit += pnl
				wins++
			} else {
				losses++
			}
			pos.tokens -= tokens
		}
	}

	for market, pos := range positions {
		if pos.tokens <= 0 {
			continue
		}
		price := ra.portfolio.GetCurrentTokenPrice(market).InexactFloat64()
		unrealized := (price - pos.avgCost) * pos.tokens
		if unrealized < 0 {
			totalLoss += -unrealized
		}
	}

	if totalLoss > 0 {
		profitFactor = totalProfit / totalLoss
	}
	if losses > 0 {
		winLossRatio = float64(wins) / float64(losses)
	}
	return profitFactor, winLossRatio
}

// calculateTradeQuality scores each executed trade against the price at the
// next executed trade: a buy followed by a rise or a sell followed by a drop
// counts as correct.
func (ra *ResultAnalyzer) calculateTradeQuality(values []float64) analytics.TradeQuality {
	type executed struct {
		action models.TradeAction
		value  float64
	}

	var trades []executed
	for i, action := range ra.actions {
		if action.Action != models.Buy && action.Action != models.Sell {
			continue
		}
		if action.AmountInEuro.IsZero() {
			continue
		}
		value := 0.0
		if i < len(values) {
			value = values[i]
		}
		trades = append(trades, executed{action: action, value: value})
	}

	quality := analytics.TradeQuality{}
	if len(trades) < 2 {
		return quality
	}

	deltaSum := 0.0
	for i := 0; i < len(trades)-1; i++ {
		cur, next := trades[i], trades[i+1]
		quality.TotalTrades++

		curPrice := cur.action.CurrentTokenPrice.InexactFloat64()
		nextPrice := next.action.CurrentTokenPrice.InexactFloat64()

		correct := (cur.action.Action == models.Buy && nextPrice > curPrice) ||
			(cur.action.Action == models.Sell && nextPrice < curPrice)
		if !correct {
			continue
		}

		quality.CorrectTrades++
		if cur.value > 0 {
			deltaSum += cur.action.AmountInEuro.InexactFloat64() / cur.value * 100
		}
	}

	if quality.TotalTrades > 0 {
		quality.CorrectTradePercentage = float64(quality.CorrectTrades) / float64(quality.TotalTrades) * 100
	}
	if quality.CorrectTrades > 0 {
		quality.AverageDelta = deltaSum / float64(quality.CorrectTrades)
	}
	return quality
}
