package binance

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/adshao/go-binance/v2"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// BinanceService implements the exchange contract against the Binance spot
// API: candle history, prices, balances and market orders.
type BinanceService struct {
	binanceClient *binance.Client
	apiKey        string
	apiSecret     string
}

func NewBinanceService() *BinanceService {
	binanceService := BinanceService{}
	binanceService.apiKey = os.Getenv("binanceAPIKey")
	binanceService.apiSecret = os.Getenv("binanceAPISecret")
	binanceService.binanceClient = binance.NewClient(binanceService.apiKey, binanceService.apiSecret)
	return &binanceService
}

func init() {
	cwd, _ := os.Getwd()
	dir := os.Getenv("CONF_FILE")
	if dir == "" {
		dir = "/conf.env"
	}
	_ = godotenv.Load(cwd + dir)
}

// symbolFromMarket maps the dashed market notation onto the exchange symbol,
// "BTC-EUR" becomes "BTCEUR".
func symbolFromMarket(market string) string {
	return strings.ReplaceAll(market, "-", "")
}

func (binanceService *BinanceService) GetPrice(market string) (decimal.Decimal, error) {
	symbol := symbolFromMarket(market)
	prices, err := binanceService.binanceClient.NewListPricesService().Symbol(symbol).Do(context.Background())
	if err != nil {
		return decimal.Zero, err
	}

	for _, p := range prices {
		if p.Symbol == symbol {
			return decimal.NewFromString(p.Price)
		}
	}

	return decimal.Zero, fmt.Errorf("error: no price returned for %s", market)
}

// GetCandleData returns the most recent candles before end, at most limit of
// them and none before start. Leaving the kline start time unset makes the
// exchange anchor the page at the end of the range, which is what the data
// loader's backfill walk depends on.
func (binanceService *BinanceService) GetCandleData(market string, interval string, limit int, start time.Time, end time.Time) ([]models.Quote, error) {
	if limit == 0 || limit > 1000 {
		limit = 1000
	}

	klines, err := binanceService.binanceClient.NewKlinesService().
		Symbol(symbolFromMarket(market)).
		Interval(interval).
		Limit(limit).
		EndTime(end.UnixMilli()).
		Do(context.Background())
	if err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, 0, len(klines))
	for _, k := range klines {
		openTime := time.Unix(k.OpenTime/1000, 0).UTC()
		if openTime.Before(start) {
			continue
		}
		open, err := decimal.NewFromString(k.Open)
		if err != nil {
			return nil, err
		}
		high, err := decimal.NewFromString(k.High)
		if err != nil {
			return nil, err
		}
		low, err := decimal.NewFromString(k.Low)
		if err != nil {
			return nil, err
		}
		closePrice, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, err
		}
		volume, err := decimal.NewFromString(k.Volume)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, models.Quote{
			Date:   openTime,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return quotes, nil
}

func (binanceService *BinanceService) GetBalances() ([]models.Balance, error) {
	res, err := binanceService.binanceClient.NewGetAccountService().Do(context.Background())
	if err != nil {
		return nil, err
	}

	var balances []models.Balance
	for _, b := range res.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, err
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return nil, err
		}
		if free.IsZero() && locked.IsZero() {
			continue
		}

		balances = append(balances, models.Balance{
			Symbol:    b.Asset,
			Available: free,
			InOrder:   locked,
		})
	}

	return balances, nil
}

// Buy places a market buy for the given euro amount and returns the order id.
func (binanceService *BinanceService) Buy(market string, amount decimal.Decimal) (string, error) {
	return binanceService.marketOrder(market, amount, binance.SideTypeBuy)
}

// Sell places a market sell for the given euro amount and returns the order id.
func (binanceService *BinanceService) Sell(market string, amount decimal.Decimal) (string, error) {
	return binanceService.marketOrder(market, amount, binance.SideTypeSell)
}

func (binanceService *BinanceService) marketOrder(market string, amount decimal.Decimal, side binance.SideType) (string, error) {
	order, err := binanceService.binanceClient.NewCreateOrderService().
		Symbol(symbolFromMarket(market)).
		Side(side).
		Type(binance.OrderTypeMarket).
		QuoteOrderQty(amount.StringFixed(2)).
		Do(context.Background())
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(order.OrderID, 10), nil
}
