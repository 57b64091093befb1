// Package encoder maps market metrics onto the discrete colours and labels
// used by calendar cells and the detail panel.
package encoder

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"SeasonalityExplorer/internal/model"
)

// Color is a hex colour with an opacity. The zero value is transparent.
type Color struct {
	Hex   string
	Alpha float64
}

// Transparent is used for cells without data.
var Transparent = Color{}

func solid(hex string) Color { return Color{Hex: hex, Alpha: 1} }

func (c Color) IsTransparent() bool { return c.Hex == "" }

// CSS renders the colour as a CSS value: the hex code when opaque,
// rgba() when translucent, "transparent" for the zero value.
func (c Color) CSS() string {
	if c.IsTransparent() {
		return "transparent"
	}
	if c.Alpha >= 1 {
		return c.Hex
	}
	col, err := colorful.Hex(c.Hex)
	if err != nil {
		return c.Hex
	}
	r, g, b := col.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.Alpha, 'f', -1, 64))
}

func (c Color) String() string { return c.CSS() }

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.CSS())
}

// Bucket is the discrete volatility band.
type Bucket int

const (
	BucketLow Bucket = iota
	BucketMedium
	BucketHigh
)

func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMedium:
		return "medium"
	default:
		return "high"
	}
}

// VolatilityBucket places v into [0,30), [30,70) or [70,∞).
func VolatilityBucket(v float64) Bucket {
	switch {
	case v < 30:
		return BucketLow
	case v < 70:
		return BucketMedium
	default:
		return BucketHigh
	}
}

var themeTable = map[model.ColorTheme][3]Color{
	model.ThemeDefault:    {solid("#10B981"), solid("#F59E0B"), solid("#EF4444")},
	model.ThemeContrast:   {solid("#000000"), solid("#666666"), solid("#FFFFFF")},
	model.ThemeColorblind: {solid("#0173B2"), solid("#DE8F05"), solid("#CC78BC")},
}

// ColorFor returns the theme colour of the volatility bucket. Unknown themes
// use the default table.
func ColorFor(volatility float64, theme model.ColorTheme) Color {
	table, ok := themeTable[theme]
	if !ok {
		table = themeTable[model.ThemeDefault]
	}
	return table[VolatilityBucket(volatility)]
}

const liquidityHex = "#3B82F6"

// LiquidityIntensity scales liquidity (millions) to 0~1, saturating at 2000.
func LiquidityIntensity(liquidity float64) float64 {
	v := liquidity / 2000
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LiquidityColor is a blue whose opacity follows LiquidityIntensity.
func LiquidityColor(liquidity float64) Color {
	return Color{Hex: liquidityHex, Alpha: LiquidityIntensity(liquidity)}
}

// PerformanceColor picks a translucent green, red or grey by sign.
func PerformanceColor(performance float64) Color {
	switch {
	case performance > 0:
		return Color{Hex: "#10B981", Alpha: 0.3}
	case performance < 0:
		return Color{Hex: "#EF4444", Alpha: 0.3}
	default:
		return Color{Hex: "#9CA3AF", Alpha: 0.3}
	}
}

// CellBackground colours a calendar cell for the active layer. Cells outside
// the visible month or without a record stay transparent.
func CellBackground(cell model.CalendarCell, layer model.DataLayer, theme model.ColorTheme) Color {
	if cell.Record == nil || !cell.IsCurrentMonth {
		return Transparent
	}
	r := cell.Record
	switch layer {
	case model.LayerLiquidity:
		return LiquidityColor(r.Liquidity)
	case model.LayerPerformance:
		return PerformanceColor(r.Performance)
	default:
		return ColorFor(r.Volatility, theme)
	}
}

// CellForeground switches text to white on high-volatility days and
// otherwise inherits (transparent).
func CellForeground(cell model.CalendarCell) Color {
	if cell.Record != nil && cell.Record.Volatility > 70 {
		return solid("#FFFFFF")
	}
	return Transparent
}
