package formulas

import (
	"github.com/markcheno/go-talib"
)

// SMA calculates the simple moving average with the given period.
// The first period-1 entries of the result are zero (warm-up), matching talib.
func SMA(data []float64, period int) []float64 {
	if period < 1 || len(data) < period {
		return []float64{}
	}
	return talib.Sma(data, period)
}

// EMA calculates the exponential moving average with the given period.
func EMA(data []float64, period int) []float64 {
	if period < 1 || len(data) < period {
		return []float64{}
	}
	return talib.Ema(data, period)
}
