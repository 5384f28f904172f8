package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/EschauzierRob/BitBetMatic/backtesting"
	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/shopspring/decimal"
)

// Processor is the live trading path: it feeds fresh candles and live
// balances through a strategy and optionally places the resulting orders on
// the exchange. The same portfolio ledger used by the backtester sizes the
// orders, seeded with real balances instead of simulated ones.
type Processor struct {
	exchange  interfaces.ExchangeService
	candles   interfaces.CandleRepository
	portfolio *backtesting.PortfolioManager
}

func NewProcessor(exchange interfaces.ExchangeService, candles interfaces.CandleRepository) *Processor {
	return &Processor{
		exchange: exchange,
		candles:  candles,
	}
}

// RunStrategies produces trading advice for BTC and ETH with the given
// strategies and, when transact is set, places the orders.
func (p *Processor) RunStrategies(btcStrategy, ethStrategy interfaces.TradingStrategy, transact bool) (string, error) {
	p.portfolio = backtesting.NewPortfolioManager()

	var sb strings.Builder
	sb.WriteString("\nTrading advice:\n")

	balances, err := p.exchange.GetBalances()
	if err != nil {
		return "", err
	}

	balances, err = p.enactStrategy(balances, transact, &sb, []string{backtesting.BtcMarket}, btcStrategy)
	if err != nil {
		return "", err
	}
	if _, err := p.enactStrategy(balances, transact, &sb, []string{backtesting.EthMarket}, ethStrategy); err != nil {
		return "", err
	}

	result := sb.String()
	helpers.Logger.Infoln(result)
	return result, nil
}

type marketAnalysis struct {
	market string
	signal models.BuySellHold
	score  int
}

var (
	staticStopLossPercent   = decimal.NewFromInt(10)
	trailingStopLossPercent = decimal.NewFromInt(5)
)

// stopLossTriggered replays the recent candle window through the risk
// overlay and reports whether the current price sits below the effective
// stop. Entry is anchored on the oldest close in the window; the trailing
// stop follows the window high.
func stopLossTriggered(quotes []models.Quote, currentPrice decimal.Decimal) bool {
	if len(quotes) == 0 {
		return false
	}
	overlay := backtesting.NewRiskOverlay(staticStopLossPercent, trailingStopLossPercent)
	for _, q := range quotes {
		overlay.UpdatePrice(q.Close)
	}
	return overlay.ShouldSell(currentPrice)
}

func (p *Processor) enactStrategy(balances []models.Balance, transact bool, sb *strings.Builder, markets []string, strategy interfaces.TradingStrategy) ([]models.Balance, error) {
	fmt.Fprintf(sb, "\nEnacting strategy '%s':\n", strategy.Name())

	var analyses []marketAnalysis
	for _, market := range markets {
		quotes, err := p.loadCandles(market, strategy)
		if err != nil {
			return balances, err
		}

		currentPrice, err := p.exchange.GetPrice(market)
		if err != nil {
			return balances, err
		}

		signal, score := strategy.AnalyzeMarket(market, quotes, currentPrice)

		holding := availableBalance(balances, helpers.GetSymbolFromMarket(market)).GreaterThan(decimal.Zero)
		if holding && signal != models.Sell && stopLossTriggered(quotes, currentPrice) {
			fmt.Fprintf(sb, " - stop loss hit on %s, overriding %s signal\n", market, signal)
			signal, score = models.Sell, 200
		}

		analyses = append(analyses, marketAnalysis{market: market, signal: signal, score: score})
	}

	// Sells free up cash for buys, so order Hold, Sell, Buy.
	sort.SliceStable(analyses, func(i, j int) bool {
		return signalRank(analyses[i].signal) < signalRank(analyses[j].signal)
	})

	for _, analysis := range analyses {
		price, err := p.exchange.GetPrice(analysis.market)
		if err != nil {
			return balances, err
		}

		p.portfolio.SetCash(availableBalance(balances, "EUR"))
		p.portfolio.SetTokenBalance(analysis.market, availableBalance(balances, helpers.GetSymbolFromMarket(analysis.market)))
		p.portfolio.SetTokenCurrentPrice(analysis.market, price)

		amount, action := strategy.CalculateOutcome(price, analysis.score, analysis.signal, p.portfolio, analysis.market)
		fmt.Fprintf(sb, " - %s, at a score of %d\n", action, analysis.score)

		if transact && amount.GreaterThan(decimal.Zero) {
			fmt.Fprintf(sb, "TRANSACTING: %s order for %s in %s market\n", analysis.signal, amount.StringFixed(2), analysis.market)
			if err := p.processOrdering(analysis.signal, amount, analysis.market); err != nil {
				return balances, err
			}
		}

		if analysis.signal == models.Buy || analysis.signal == models.Sell {
			balances, err = p.exchange.GetBalances()
			if err != nil {
				return balances, err
			}
		}
	}

	return balances, nil
}

// loadCandles reads recent candles from the store, falling back to the
// exchange and populating the store when nothing is cached yet.
func (p *Processor) loadCandles(market string, strategy interfaces.TradingStrategy) ([]models.Quote, error) {
	start := time.Now().AddDate(0, 0, -15)
	end := time.Now()

	quotes, err := p.candles.GetCandles(market, start, end)
	if err != nil {
		return nil, err
	}
	if len(quotes) > 0 {
		return quotes, nil
	}

	quotes, err = p.exchange.GetCandleData(market, strategy.Interval(), strategy.Limit(), start, end)
	if err != nil {
		return nil, err
	}
	if err := p.candles.AddCandles(market, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (p *Processor) processOrdering(signal models.BuySellHold, amount decimal.Decimal, market string) error {
	switch signal {
	case models.Buy:
		_, err := p.exchange.Buy(market, amount)
		return err
	case models.Sell:
		_, err := p.exchange.Sell(market, amount)
		return err
	default:
		return nil
	}
}

func signalRank(signal models.BuySellHold) int {
	switch signal {
	case models.Sell:
		return 1
	case models.Buy:
		return 2
	default:
		return 0
	}
}

func availableBalance(balances []models.Balance, symbol string) decimal.Decimal {
	for _, b := range balances {
		if b.Symbol == symbol {
			return b.Available
		}
	}
	return decimal.Zero
}
