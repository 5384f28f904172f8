package models

import "time"

// IndicatorThresholds is the flat parameter record that fully parameterizes
// one strategy instance: indicator periods, overbought/oversold levels,
// multipliers and the buy/sell decision boundaries. Variants are always new
// copies; a threshold set is never mutated after creation.
//
// The struct doubles as the gorm entity, keyed by (Strategy, Market, CreatedAt).
type IndicatorThresholds struct {
	ID        uint      `gorm:"primaryKey"`
	Strategy  string    `gorm:"index:idx_strategy_market_created"`
	Market    string    `gorm:"index:idx_strategy_market_created"`
	CreatedAt time.Time `gorm:"index:idx_strategy_market_created"`
	Version   string
	Highscore float64

	// RSI
	RsiOverbought int
	RsiOversold   int
	RsiPeriod     int

	// MACD
	MacdSignalLine   float64
	MacdFastPeriod   int
	MacdSlowPeriod   int
	MacdSignalPeriod int

	// ATR
	AtrMultiplier float64
	AtrPeriod     int

	// Moving averages
	SmaShortTerm int
	SmaLongTerm  int

	// Parabolic SAR
	ParabolicSarStep float64
	ParabolicSarMax  float64

	// Bollinger Bands
	BollingerBandsPeriod    int
	BollingerBandsDeviation float64

	// ADX
	AdxStrongTrend float64
	AdxPeriod      int

	// Stochastic oscillator
	StochasticOverbought   float64
	StochasticOversold     float64
	StochasticPeriod       int
	StochasticSignalPeriod int

	// Rate of change
	RocPeriod int

	// Decision boundaries
	BuyThreshold  int
	SellThreshold int

	ScoreMultiplier float64
}

// DefaultThresholds carries the baseline every strategy starts from before
// applying its own calibration.
func DefaultThresholds() IndicatorThresholds {
	return IndicatorThresholds{
		CreatedAt:               time.Now().UTC(),
		RsiOverbought:           70,
		RsiOversold:             30,
		RsiPeriod:               14,
		MacdSignalLine:          0,
		MacdFastPeriod:          12,
		MacdSlowPeriod:          26,
		MacdSignalPeriod:        9,
		AtrMultiplier:           1.5,
		AtrPeriod:               14,
		SmaShortTerm:            50,
		SmaLongTerm:             200,
		ParabolicSarStep:        0.02,
		ParabolicSarMax:         0.2,
		BollingerBandsPeriod:    20,
		BollingerBandsDeviation: 2.0,
		AdxStrongTrend:          25.0,
		AdxPeriod:               14,
		StochasticOverbought:    80.0,
		StochasticOversold:      20.0,
		StochasticPeriod:        14,
		StochasticSignalPeriod:  3,
		RocPeriod:               14,
		BuyThreshold:            50,
		SellThreshold:           -50,
		ScoreMultiplier:         1.0,
	}
}
