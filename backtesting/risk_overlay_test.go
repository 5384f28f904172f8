package backtesting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRiskOverlayTrailingStop(t *testing.T) {
	overlay := NewRiskOverlay(decimal.NewFromInt(10), decimal.NewFromInt(5))

	overlay.UpdatePrice(decimal.NewFromInt(90))
	overlay.UpdatePrice(decimal.NewFromInt(100))

	// trailing stop sits 5% under the high of 100
	assert.False(t, overlay.ShouldSell(decimal.NewFromInt(96)))
	assert.True(t, overlay.ShouldSell(decimal.NewFromInt(95)))
	assert.True(t, overlay.ShouldSell(decimal.NewFromInt(80)))
}

func TestRiskOverlayStaticStopWinsWhenHigher(t *testing.T) {
	// static stop 2% off a 100 entry (98) beats a 10% trailing stop (90)
	overlay := NewRiskOverlay(decimal.NewFromInt(2), decimal.NewFromInt(10))

	overlay.UpdatePrice(decimal.NewFromInt(100))

	assert.False(t, overlay.ShouldSell(decimal.NewFromInt(99)))
	assert.True(t, overlay.ShouldSell(decimal.NewFromInt(98)))
}

func TestRiskOverlayTrailsRisingPrices(t *testing.T) {
	overlay := NewRiskOverlay(decimal.NewFromInt(50), decimal.NewFromInt(5))

	overlay.UpdatePrice(decimal.NewFromInt(100))
	assert.True(t, overlay.ShouldSell(decimal.NewFromInt(94)))

	// a new high drags the stop up with it
	overlay.UpdatePrice(decimal.NewFromInt(200))
	assert.False(t, overlay.ShouldSell(decimal.NewFromInt(191)))
	assert.True(t, overlay.ShouldSell(decimal.NewFromInt(190)))
}
