package model

// MarketRecord is the synthetic market snapshot for one calendar day.
// Date is the ISO yyyy-MM-dd key and is unique within a series.
type MarketRecord struct {
	Date          string  `json:"date" parquet:"date"`
	Volatility    float64 `json:"volatility" parquet:"volatility"`   // 0~100
	Liquidity     float64 `json:"liquidity" parquet:"liquidity"`     // millions
	Performance   float64 `json:"performance" parquet:"performance"` // percent change
	Open          float64 `json:"open" parquet:"open"`
	Close         float64 `json:"close" parquet:"close"`
	High          float64 `json:"high" parquet:"high"`
	Low           float64 `json:"low" parquet:"low"`
	Volume        float64 `json:"volume" parquet:"volume"`
	RSI           float64 `json:"rsi" parquet:"rsi"`
	MovingAverage float64 `json:"movingAverage" parquet:"moving_average"`
}

// Closes extracts the close prices of a series in order.
func Closes(series []MarketRecord) []float64 {
	closes := make([]float64, len(series))
	for i, r := range series {
		closes[i] = r.Close
	}
	return closes
}
