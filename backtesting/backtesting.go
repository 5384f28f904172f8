package backtesting

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/EschauzierRob/BitBetMatic/models/analytics"
	"github.com/EschauzierRob/BitBetMatic/strategies"
	"github.com/shopspring/decimal"
)

const (
	BtcMarket = "BTC-EUR"
	EthMarket = "ETH-EUR"

	maxDeviation = 50.0
	candleLimit  = 1440
	longSpanDays = 360
)

var startingBalance = decimal.NewFromInt(300)

// BackTesting drives the strategy shoot-out and the threshold variant
// search. Historical data comes through the data loader, tuned thresholds
// go in and out of the threshold repository.
type BackTesting struct {
	dataLoader *DataLoader
	thresholds interfaces.ThresholdRepository
}

func New(exchange interfaces.ExchangeService, thresholds interfaces.ThresholdRepository) *BackTesting {
	return &BackTesting{
		dataLoader: NewDataLoader(exchange),
		thresholds: thresholds,
	}
}

// runBacktest executes one strategy over one quote series with a fresh
// portfolio and analyzes the outcome.
func (bt *BackTesting) runBacktest(strategy interfaces.TradingStrategy, market string, historicalData []models.Quote) (decimal.Decimal, string, analytics.Metrics, analytics.TradeQuality) {
	portfolio := NewPortfolioManager()
	portfolio.SetCash(startingBalance)

	executor := NewStrategyExecutor(strategy)
	actions := executor.ExecuteStrategy(market, historicalData, portfolio)

	analyzer := NewResultAnalyzer(strategy, actions, portfolio)
	text, metrics, quality := analyzer.Analyze()

	return portfolio.GetAccountTotal(), text, metrics, quality
}

// RunBacktesting runs every registered strategy head to head on BTC and ETH
// and reports the best performer per market. The buy-and-hold baseline is
// included in the report but never wins.
func (bt *BackTesting) RunBacktesting(sb *strings.Builder) (interfaces.TradingStrategy, interfaces.TradingStrategy, string, error) {
	sb.WriteString("BTC backtesting:\n")
	strategyBtc, err := bt.getMostPerformantStrategy(sb, BtcMarket)
	if err != nil {
		return nil, nil, "", err
	}

	sb.WriteString("ETH backtesting:\n")
	strategyEth, err := bt.getMostPerformantStrategy(sb, EthMarket)
	if err != nil {
		return nil, nil, "", err
	}

	result := sb.String()
	helpers.Logger.Infoln(result)

	return strategyBtc, strategyEth, result, nil
}

// RunSingle backtests one strategy over the default window and returns its
// final account total with the run narrative.
func (bt *BackTesting) RunSingle(strategy interfaces.TradingStrategy, market string) (decimal.Decimal, string, error) {
	historicalData, err := bt.getHistoricalData(market, strategy.Interval(), nil, nil)
	if err != nil {
		return decimal.Zero, "", err
	}

	total, text, _, _ := bt.runBacktest(strategy, market, historicalData)
	return total, text, nil
}

func (bt *BackTesting) getMostPerformantStrategy(sb *strings.Builder, market string) (interfaces.TradingStrategy, error) {
	candidates := strategies.AllStrategies()

	best := candidates[0]
	bestTotal := decimal.Zero

	historicalData, err := bt.getHistoricalData(market, "1h", nil, nil)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		stored, err := bt.thresholds.GetLatestThresholds(candidate.Name(), market)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			candidate = candidate.WithThresholds(*stored)
		}

		total, text, _, _ := bt.runBacktest(candidate, market, historicalData)
		sb.WriteString(text)
		sb.WriteString("\n")

		if bestTotal.LessThan(total) && candidate.Name() != "HoldStrategy" {
			best = candidate
			bestTotal = total
		}
	}

	return best, nil
}

func (bt *BackTesting) getHistoricalData(market, interval string, start, end *time.Time) ([]models.Quote, error) {
	s := time.Now().AddDate(0, 0, -60)
	e := time.Now()
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	return bt.dataLoader.LoadHistoricalData(market, interval, candleLimit, s, e)
}

// DoBacktestTuning runs one variant-search round for the named strategy and
// persists the winner's thresholds when it beats the decayed highscore.
func (bt *BackTesting) DoBacktestTuning(sb *strings.Builder, strategyName, market string, numberOfVariants int) (interfaces.TradingStrategy, string, error) {
	strategy, err := bt.seededStrategy(strategyName, market)
	if err != nil {
		return nil, "", err
	}

	winner, highscore, err := bt.getMostPerformantStrategyVariant(strategy, sb, market, numberOfVariants, maxDeviation)
	if err != nil {
		return nil, "", err
	}

	if err := bt.persistIfImproved(sb, strategy, winner, highscore, market); err != nil {
		return nil, "", err
	}

	result := sb.String()
	helpers.Logger.Infoln(result)
	return winner, result, nil
}

// DoBacktestDeepTuning chains four search rounds with a shrinking deviation
// radius, each seeded from the previous round's winner.
func (bt *BackTesting) DoBacktestDeepTuning(sb *strings.Builder, strategyName, market string, numberOfVariants int) (interfaces.TradingStrategy, string, error) {
	strategy, err := bt.seededStrategy(strategyName, market)
	if err != nil {
		return nil, "", err
	}

	winner := strategy
	highscore := decimal.Zero
	for _, radius := range []float64{50, 25, 10, 5} {
		winner, highscore, err = bt.getMostPerformantStrategyVariant(winner, sb, market, numberOfVariants, radius)
		if err != nil {
			return nil, "", err
		}
	}

	if err := bt.persistIfImproved(sb, strategy, winner, highscore, market); err != nil {
		return nil, "", err
	}

	result := sb.String()
	helpers.Logger.Infoln(result)
	return winner, result, nil
}

// seededStrategy instantiates the named strategy and, when a stored
// threshold set exists, seeds it with the decayed persisted winner. The
// decay rate follows recent price volatility.
func (bt *BackTesting) seededStrategy(strategyName, market string) (interfaces.TradingStrategy, error) {
	strategy, err := strategies.StrategyFactory(strategyName)
	if err != nil {
		return nil, err
	}

	start := time.Now().AddDate(0, 0, -15)
	end := time.Now()
	quotes, err := bt.getHistoricalData(market, strategy.Interval(), &start, &end)
	if err != nil {
		return nil, err
	}

	prices := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		prices = append(prices, q.Close.InexactFloat64())
	}
	decayRate := CalculateDecayRate(prices)

	stored, err := bt.thresholds.GetLatestDecayedThresholds(strategy.Name(), market, decayRate)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		strategy = strategy.WithThresholds(*stored)
	}

	return strategy, nil
}

func (bt *BackTesting) persistIfImproved(sb *strings.Builder, seed, winner interfaces.TradingStrategy, highscore decimal.Decimal, market string) error {
	if highscore.InexactFloat64() <= seed.Thresholds().Highscore {
		return nil
	}

	fmt.Fprintf(sb, "SAVING NEW HIGHSCORE: %s for %s - %s\n", highscore.StringFixed(2), winner.Name(), market)

	thresholds := *winner.Thresholds()
	thresholds.ID = 0
	thresholds.Market = market
	thresholds.Strategy = winner.Name()
	thresholds.Highscore = highscore.InexactFloat64()
	thresholds.CreatedAt = time.Now().UTC()

	return bt.thresholds.InsertThresholds(&thresholds)
}

type variantOutcome struct {
	run StrategyRun
	err error
}

// getMostPerformantStrategyVariant evaluates the seeded strategy plus
// numberOfVariants-1 perturbed copies across three recency-weighted windows
// and returns the ranked winner with its combined portfolio value. Variants
// run on a worker pool sized to the CPU count; a variant that fails is
// logged and dropped rather than aborting the batch.
func (bt *BackTesting) getMostPerformantStrategyVariant(strategy interfaces.TradingStrategy, sb *strings.Builder, market string, numberOfVariants int, deviation float64) (interfaces.TradingStrategy, decimal.Decimal, error) {
	variants := GenerateThresholdVariations(*strategy.Thresholds(), numberOfVariants-1, deviation)

	candidates := []interfaces.TradingStrategy{strategy}
	for _, variant := range variants {
		candidates = append(candidates, strategy.WithThresholds(variant))
	}

	longStart := time.Now().AddDate(0, 0, -longSpanDays)
	now := time.Now()
	historicalLong, err := bt.getHistoricalData(market, strategy.Interval(), &longStart, &now)
	if err != nil {
		return nil, decimal.Zero, err
	}

	mediumCutoff := time.Now().AddDate(0, 0, -longSpanDays/2)
	shortCutoff := time.Now().AddDate(0, 0, -longSpanDays/12)
	historicalMedium := quotesAfter(historicalLong, mediumCutoff)
	historicalShort := quotesAfter(historicalMedium, shortCutoff)

	jobs := make(chan interfaces.TradingStrategy)
	outcomes := make(chan variantOutcome, len(candidates))

	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range jobs {
				outcomes <- bt.evaluateVariant(candidate, market, historicalShort, historicalMedium, historicalLong)
			}
		}()
	}

	for _, candidate := range candidates {
		jobs <- candidate
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	var runs []StrategyRun
	for outcome := range outcomes {
		if outcome.err != nil {
			helpers.Logger.Warnln("variant evaluation failed:", outcome.err)
			continue
		}
		runs = append(runs, outcome.run)
	}
	if len(runs) == 0 {
		return nil, decimal.Zero, fmt.Errorf("no variant of %s produced a result for %s", strategy.Name(), market)
	}

	ranked, winningThresholds := RankStrategiesByScore(runs)

	fmt.Fprintf(sb, "Winning variant of %s - %s got a total result of %s and a combined score of %.2f\n",
		ranked.StrategyName, market, ranked.FinalPortfolioValue.StringFixed(2), ranked.Score)
	helpers.Logger.Debugln(fmt.Sprintf(
		"Strategy: %s, Score: %.2f, Correct Trades: %.2f%%, Average Delta: %.2f%%, Final Portfolio: %s",
		ranked.StrategyName, ranked.Score,
		ranked.TradeQuality.CorrectTradePercentage, ranked.TradeQuality.AverageDelta,
		ranked.FinalPortfolioValue.StringFixed(2)))

	return strategy.WithThresholds(winningThresholds), ranked.FinalPortfolioValue, nil
}

// evaluateVariant backtests one candidate over the short, medium and long
// windows, each on its own portfolio, and blends the final values with
// recency weights (0.5 short, 0.3 medium, 0.2 long). The short window's
// trade quality represents the variant in the ranking.
func (bt *BackTesting) evaluateVariant(candidate interfaces.TradingStrategy, market string, short, medium, long []models.Quote) (outcome variantOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = variantOutcome{err: fmt.Errorf("variant %s panicked: %v", candidate.Name(), r)}
		}
	}()

	shortResult, _, _, shortQuality := bt.runBacktest(candidate, market, short)
	mediumResult, _, _, _ := bt.runBacktest(candidate, market, medium)
	longResult, _, _, _ := bt.runBacktest(candidate, market, long)

	combined := decimal.NewFromFloat(0.5).Mul(shortResult).
		Add(decimal.NewFromFloat(0.3).Mul(mediumResult)).
		Add(decimal.NewFromFloat(0.2).Mul(longResult))

	return variantOutcome{run: StrategyRun{
		StrategyName:        candidate.Name(),
		Thresholds:          *candidate.Thresholds(),
		TradeQuality:        shortQuality,
		FinalPortfolioValue: combined,
	}}
}

func quotesAfter(quotes []models.Quote, cutoff time.Time) []models.Quote {
	var filtered []models.Quote
	for _, q := range quotes {
		if q.Date.After(cutoff) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
