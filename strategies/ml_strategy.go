package strategies

import (
	"fmt"

	"github.com/EschauzierRob/BitBetMatic/interfaces"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/goml/gobrain"
	"github.com/shopspring/decimal"
)

// mlSequenceLength is the number of trailing candles fed to the network.
const mlSequenceLength = 24

// MLStrategy predicts the next action with a small feed-forward network
// trained on candle sequences labelled by the optimal trade finder. Until
// Train has been called it stays inconclusive.
type MLStrategy struct {
	baseStrategy
	net *gobrain.FeedForward
}

func NewMLStrategy() *MLStrategy {
	return &MLStrategy{baseStrategy: baseStrategy{thresholds: models.DefaultThresholds()}}
}

func (s *MLStrategy) Name() string { return "MLStrategy" }

func (s *MLStrategy) Interval() string { return "15m" }

func (s *MLStrategy) Limit() int { return s.thresholds.SmaLongTerm }

func (s *MLStrategy) WithThresholds(thresholds models.IndicatorThresholds) interfaces.TradingStrategy {
	return &MLStrategy{baseStrategy: baseStrategy{thresholds: thresholds}, net: s.net}
}

// Train fits the network on quotes flagged with the trades an oracle would
// have made. Labels are one-hot over [buy, sell, hold].
func (s *MLStrategy) Train(flagged []models.FlaggedQuote, iterations int) error {
	if len(flagged) <= mlSequenceLength {
		return fmt.Errorf("need more than %d flagged quotes to train, got %d", mlSequenceLength, len(flagged))
	}

	var patterns [][][]float64
	for i := mlSequenceLength; i < len(flagged); i++ {
		window := make([]models.Quote, 0, mlSequenceLength)
		for _, fq := range flagged[i-mlSequenceLength : i] {
			window = append(window, fq.Quote)
		}

		label := []float64{0, 0, 1}
		switch flagged[i].TradeAction {
		case models.Buy:
			label = []float64{1, 0, 0}
		case models.Sell:
			label = []float64{0, 1, 0}
		}
		patterns = append(patterns, [][]float64{sequenceFeatures(window), label})
	}

	net := &gobrain.FeedForward{}
	net.Init(mlSequenceLength-1, mlSequenceLength, 3)
	net.Train(patterns, iterations, 0.6, 0.4, false)
	s.net = net
	return nil
}

func (s *MLStrategy) AnalyzeMarket(market string, quotes []models.Quote, currentPrice decimal.Decimal) (models.BuySellHold, int) {
	if s.net == nil || len(quotes) < mlSequenceLength {
		return models.Inconclusive, 0
	}

	out := s.net.Update(sequenceFeatures(quotes[len(quotes)-mlSequenceLength:]))

	best := 2
	for i := range out {
		if out[i] > out[best] {
			best = i
		}
	}

	switch best {
	case 0:
		return models.Buy, 1000
	case 1:
		return models.Sell, 1000
	default:
		return models.Hold, 0
	}
}

// sequenceFeatures maps a candle window onto [0,1] inputs: one value per
// close-to-close relative change, centered at 0.5 and clamped.
func sequenceFeatures(window []models.Quote) []float64 {
	features := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		prev := window[i-1].Close.InexactFloat64()
		cur := window[i].Close.InexactFloat64()
		delta := 0.0
		if prev != 0 {
			delta = (cur - prev) / prev
		}
		v := 0.5 + delta*10
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		features = append(features, v)
	}
	return features
}
