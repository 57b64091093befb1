package encoder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeasonalityExplorer/internal/model"
)

func TestColorFor_Boundaries(t *testing.T) {
	for _, theme := range []model.ColorTheme{model.ThemeDefault, model.ThemeContrast, model.ThemeColorblind} {
		table := themeTable[theme]
		assert.Equal(t, table[BucketLow], ColorFor(0, theme))
		assert.Equal(t, table[BucketLow], ColorFor(29.999, theme))
		assert.Equal(t, table[BucketMedium], ColorFor(30, theme))
		assert.Equal(t, table[BucketMedium], ColorFor(69.999, theme))
		assert.Equal(t, table[BucketHigh], ColorFor(70, theme))
		assert.Equal(t, table[BucketHigh], ColorFor(100, theme))
	}
}

func TestColorFor_Tables(t *testing.T) {
	assert.Equal(t, "#10B981", ColorFor(10, model.ThemeDefault).CSS())
	assert.Equal(t, "#666666", ColorFor(50, model.ThemeContrast).CSS())
	assert.Equal(t, "#CC78BC", ColorFor(90, model.ThemeColorblind).CSS())
}

func TestColorFor_UnknownThemeFallsBack(t *testing.T) {
	assert.Equal(t, ColorFor(50, model.ThemeDefault), ColorFor(50, "neon"))
}

func TestColorFor_Pure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "#F59E0B", ColorFor(42, model.ThemeDefault).CSS())
	}
}

func TestLiquidity(t *testing.T) {
	assert.Equal(t, 0.0, LiquidityIntensity(-5))
	assert.Equal(t, 0.5, LiquidityIntensity(1000))
	assert.Equal(t, 1.0, LiquidityIntensity(5000))
	assert.Equal(t, "rgba(59, 130, 246, 0.5)", LiquidityColor(1000).CSS())
	assert.Equal(t, "rgba(59, 130, 246, 0)", LiquidityColor(0).CSS())
}

func TestPerformanceColor(t *testing.T) {
	assert.Equal(t, "rgba(16, 185, 129, 0.3)", PerformanceColor(2).CSS())
	assert.Equal(t, "rgba(239, 68, 68, 0.3)", PerformanceColor(-0.1).CSS())
	assert.Equal(t, "rgba(156, 163, 175, 0.3)", PerformanceColor(0).CSS())
}

func TestCellBackground(t *testing.T) {
	rec := &model.MarketRecord{Volatility: 80, Liquidity: 500, Performance: -3}
	cell := model.CalendarCell{Record: rec, IsCurrentMonth: true}

	assert.Equal(t, "#EF4444", CellBackground(cell, model.LayerVolatility, model.ThemeDefault).CSS())
	assert.Equal(t, "#EF4444", CellBackground(cell, model.LayerAll, model.ThemeDefault).CSS())
	assert.Equal(t, "rgba(59, 130, 246, 0.25)", CellBackground(cell, model.LayerLiquidity, model.ThemeDefault).CSS())
	assert.Equal(t, "rgba(239, 68, 68, 0.3)", CellBackground(cell, model.LayerPerformance, model.ThemeDefault).CSS())
	assert.Equal(t, "#FFFFFF", CellForeground(cell).CSS())

	outside := model.CalendarCell{Record: rec}
	assert.True(t, CellBackground(outside, model.LayerVolatility, model.ThemeDefault).IsTransparent())
	assert.Equal(t, "transparent", CellBackground(model.CalendarCell{IsCurrentMonth: true}, model.LayerVolatility, model.ThemeDefault).CSS())
	assert.True(t, CellForeground(model.CalendarCell{}).IsTransparent())
}

func TestColor_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Color{"bg": PerformanceColor(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bg":"rgba(16, 185, 129, 0.3)"}`, string(b))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "High", VolatilityLevel(51))
	assert.Equal(t, "Medium", VolatilityLevel(50))
	assert.Equal(t, "Low", VolatilityLevel(25))

	assert.Equal(t, "Overbought", RSISignal(71))
	assert.Equal(t, "Neutral", RSISignal(70))
	assert.Equal(t, "Oversold", RSISignal(29.9))

	assert.Equal(t, "very high", VolumeLevel(1001))
	assert.Equal(t, "moderate", VolumeLevel(1000))
	assert.Equal(t, "low", VolumeLevel(500))

	assert.Equal(t, TrendUp, TrendOf(1.5))
	assert.Equal(t, TrendFlat, TrendOf(1))
	assert.Equal(t, TrendDown, TrendOf(-1.01))
}
