package strategies

import (
	"fmt"

	"github.com/EschauzierRob/BitBetMatic/interfaces"
)

// StrategyFactory returns the strategy registered under the given name.
func StrategyFactory(name string) (interfaces.TradingStrategy, error) {
	switch name {
	case "ModerateStrategy":
		return NewModerateStrategy(), nil
	case "AgressiveStrategy":
		return NewAgressiveStrategy(), nil
	case "ScoredStrategy":
		return NewScoredStrategy(), nil
	case "StoplossStrategy":
		return NewStoplossStrategy(), nil
	case "AdvancedStrategy":
		return NewAdvancedStrategy(), nil
	case "HoldStrategy":
		return NewHoldStrategy(), nil
	case "SimpleMAStrategy":
		return NewSimpleMAStrategy(), nil
	case "MLStrategy":
		return NewMLStrategy(), nil
	default:
		return nil, fmt.Errorf("strategy not found: %s", name)
	}
}

// AllStrategies lists the strategies that take part in the head-to-head
// backtest. HoldStrategy runs as the benchmark.
func AllStrategies() []interfaces.TradingStrategy {
	return []interfaces.TradingStrategy{
		NewModerateStrategy(),
		NewAgressiveStrategy(),
		NewScoredStrategy(),
		NewStoplossStrategy(),
		NewAdvancedStrategy(),
		NewHoldStrategy(),
	}
}
