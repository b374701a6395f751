package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	assert.Zero(t, Mean(nil))
	assert.Zero(t, Mean([]float64{}))
}

func TestStdDev(t *testing.T) {
	// Sample standard deviation of {2, 4, 4, 4, 5, 5, 7, 9}
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	expected := math.Sqrt(32.0 / 7.0)
	assert.InDelta(t, expected, StdDev(data), 1e-12)
	assert.Zero(t, StdDev(nil))
}

func TestVariance(t *testing.T) {
	assert.InDelta(t, 1.0, Variance([]float64{1, 2, 3}), 1e-12)
	assert.Zero(t, Variance(nil))
}

func TestSMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	sma := SMA(data, 3)
	assert.Len(t, sma, 5)
	// Warm-up entries are zero, then the rolling mean kicks in
	assert.InDelta(t, 2.0, sma[2], 1e-9)
	assert.InDelta(t, 3.0, sma[3], 1e-9)
	assert.InDelta(t, 4.0, sma[4], 1e-9)
}

func TestSMA_InsufficientData(t *testing.T) {
	assert.Empty(t, SMA([]float64{1, 2}, 3))
	assert.Empty(t, SMA(nil, 3))
	assert.Empty(t, SMA([]float64{1, 2, 3}, 0))
}

func TestEMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}

	ema := EMA(data, 3)
	assert.Len(t, ema, 6)
	// EMA seeds with the SMA of the first period
	assert.InDelta(t, 2.0, ema[2], 1e-9)
	// Later values weight recent samples more heavily
	assert.Greater(t, ema[5], ema[4])
}

func TestEMA_InsufficientData(t *testing.T) {
	assert.Empty(t, EMA([]float64{1}, 2))
	assert.Empty(t, EMA(nil, 2))
}
