package backtesting

import (
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
)

// StrategyExecutor replays a quote series through a strategy, applying each
// resulting trade to the portfolio before the next window is evaluated, so
// every decision sees the effect of the ones before it.
type StrategyExecutor struct {
	strategy interfaces.TradingStrategy
}

func NewStrategyExecutor(strategy interfaces.TradingStrategy) *StrategyExecutor {
	return &StrategyExecutor{strategy: strategy}
}

// ExecuteStrategy slides a Limit()-sized window over the sorted quotes and
// returns the ordered trade actions it produced. The portfolio is mutated in
// place. A series shorter than the window yields no trades.
func (e *StrategyExecutor) ExecuteStrategy(market string, quotes []models.Quote, portfolio *PortfolioManager) []models.TradeAction {
	sorted := models.SortQuotes(quotes)
	size := e.strategy.Limit()

	var actions []models.TradeAction
	if len(sorted) < size {
		return actions
	}

	holdBaseline := e.strategy.Name() == "HoldStrategy"

	for i := size; i <= len(sorted); i++ {
		window := sorted[i-size : i]
		currentPrice := window[len(window)-1].Close

		signal, score := e.strategy.AnalyzeMarket(market, window, currentPrice)
		amount, _ := e.strategy.CalculateOutcome(currentPrice, score, signal, portfolio, market)

		action := models.TradeAction{
			Timestamp:         window[len(window)-1].Date,
			Action:            signal,
			AmountInEuro:      amount,
			CurrentTokenPrice: currentPrice,
			Market:            market,
		}

		// The buy-and-hold baseline goes all-in on the first window.
		if holdBaseline && len(actions) == 0 {
			action.Action = models.Buy
			action.AmountInEuro = portfolio.GetCashBalance()
		}

		actions = append(actions, action)
		portfolio.ExecuteTrade(action)
	}

	portfolio.SetTokenCurrentPrice(market, sorted[len(sorted)-1].Close)
	return actions
}
