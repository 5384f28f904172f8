package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/EschauzierRob/BitBetMatic/backtesting"
	"github.com/EschauzierRob/BitBetMatic/bot"
	"github.com/EschauzierRob/BitBetMatic/database"
	"github.com/EschauzierRob/BitBetMatic/helpers"
	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/providers/binance"
	"github.com/EschauzierRob/BitBetMatic/strategies"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func init() {
	cwd, _ := os.Getwd()
	_ = godotenv.Load(cwd + "/conf.env")
}

func main() {
	app := &cli.App{
		Name:  "bitbetmatic",
		Usage: "crypto trading signal bot with a backtesting strategy tuner",
		Commands: []*cli.Command{
			{
				Name:   "backtest",
				Usage:  "run every strategy head to head on BTC and ETH",
				Action: runBacktest,
			},
			{
				Name:  "tune",
				Usage: "search threshold variants for one strategy on one market",
				Flags: tuningFlags(),
				Action: func(c *cli.Context) error {
					return runTuning(c, false)
				},
			},
			{
				Name:  "deep-tune",
				Usage: "chained variant search with a shrinking deviation radius",
				Flags: tuningFlags(),
				Action: func(c *cli.Context) error {
					return runTuning(c, true)
				},
			},
			{
				Name:  "train-ml",
				Usage: "flag optimal trades with hindsight and train the ML strategy on them",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "market",
						Usage: "market to train against",
						Value: backtesting.BtcMarket,
					},
					&cli.IntFlag{
						Name:  "iterations",
						Usage: "training iterations over the flagged series",
						Value: 1000,
					},
				},
				Action: runMLTraining,
			},
			{
				Name:  "advise",
				Usage: "print trading advice for the current balances without ordering",
				Action: func(c *cli.Context) error {
					return runStrategies(c, false)
				},
			},
			{
				Name:  "trade",
				Usage: "run the strategies and place the resulting orders",
				Action: func(c *cli.Context) error {
					return runStrategies(c, true)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		helpers.Logger.Fatalln(err)
	}
}

func tuningFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "strategy name to tune",
			Value: "ModerateStrategy",
		},
		&cli.StringFlag{
			Name:  "market",
			Usage: "market to tune against",
			Value: backtesting.BtcMarket,
		},
		&cli.IntFlag{
			Name:  "variants",
			Usage: "number of threshold variants per search round",
			Value: 20,
		},
	}
}

func runBacktest(c *cli.Context) error {
	bt, _, err := newBacktesting()
	if err != nil {
		return err
	}

	var sb strings.Builder
	_, _, _, err = bt.RunBacktesting(&sb)
	return err
}

func runTuning(c *cli.Context, deep bool) error {
	bt, _, err := newBacktesting()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if deep {
		_, _, err = bt.DoBacktestDeepTuning(&sb, c.String("strategy"), c.String("market"), c.Int("variants"))
	} else {
		_, _, err = bt.DoBacktestTuning(&sb, c.String("strategy"), c.String("market"), c.Int("variants"))
	}
	return err
}

// runMLTraining labels a year of candles with the trades a perfect oracle
// would have made, trains the ML strategy on them and reports how the
// trained net backtests on the same market.
func runMLTraining(c *cli.Context) error {
	exchangeService := interfaces.ExchangeService(binance.NewBinanceService())
	market := c.String("market")

	strategy := strategies.NewMLStrategy()
	loader := backtesting.NewDataLoader(exchangeService)
	quotes, err := loader.LoadHistoricalData(market, strategy.Interval(), 1440, time.Now().AddDate(-1, 0, 0), time.Now())
	if err != nil {
		return err
	}

	flagged, report := backtesting.FlagOptimalTrades(quotes)
	helpers.Logger.Infoln(report)

	if err := strategy.Train(flagged, c.Int("iterations")); err != nil {
		return err
	}

	store, err := newTradingStore()
	if err != nil {
		return err
	}
	_, result, err := backtesting.New(exchangeService, store).RunSingle(strategy, market)
	if err != nil {
		return err
	}
	helpers.Logger.Infoln(result)
	return nil
}

func runStrategies(c *cli.Context, transact bool) error {
	exchangeService := interfaces.ExchangeService(binance.NewBinanceService())
	store, err := newTradingStore()
	if err != nil {
		return err
	}

	btcStrategy, err := storedOrDefaultStrategy(store, backtesting.BtcMarket)
	if err != nil {
		return err
	}
	ethStrategy, err := storedOrDefaultStrategy(store, backtesting.EthMarket)
	if err != nil {
		return err
	}

	processor := bot.NewProcessor(exchangeService, store)
	_, err = processor.RunStrategies(btcStrategy, ethStrategy, transact)
	return err
}

// storedOrDefaultStrategy loads the configured strategy for a market and
// seeds it with its latest tuned thresholds when the store has any.
func storedOrDefaultStrategy(store interfaces.ThresholdRepository, market string) (interfaces.TradingStrategy, error) {
	name := os.Getenv("strategy")
	if name == "" {
		name = "ModerateStrategy"
	}

	strategy, err := strategies.StrategyFactory(name)
	if err != nil {
		return nil, err
	}

	stored, err := store.GetLatestThresholds(strategy.Name(), market)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		strategy = strategy.WithThresholds(*stored)
	}

	return strategy, nil
}

func newBacktesting() (*backtesting.BackTesting, tradingStore, error) {
	exchangeService := interfaces.ExchangeService(binance.NewBinanceService())

	store, err := newTradingStore()
	if err != nil {
		return nil, nil, err
	}

	return backtesting.New(exchangeService, store), store, nil
}

// tradingStore is the combined persistence surface the commands need.
type tradingStore interface {
	interfaces.CandleRepository
	interfaces.ThresholdRepository
}

func newTradingStore() (tradingStore, error) {
	databaseIsEnabled, _ := strconv.ParseBool(os.Getenv("enableDatabaseRecording"))
	if !databaseIsEnabled {
		helpers.Logger.Warnln("database recording disabled, thresholds and candles will not persist")
		return database.NewMemoryStore(), nil
	}

	return database.NewDBService(os.Getenv("databaseHost"), os.Getenv("databasePort"), os.Getenv("databaseName"),
		os.Getenv("databaseUser"), os.Getenv("databasePassword"))
}
