package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_ThresholdRule(t *testing.T) {
	signal := []float64{0.5, -0.3, 0.0, 0.0001, -1.0}
	original := []int{1, 0, 0, 1, 1}

	detection, err := Detect(signal, original)
	require.NoError(t, err)

	// Strictly positive samples become 1; zero and negative become 0
	assert.Equal(t, []int{1, 0, 0, 1, 0}, detection.Bits)
	// Positions 0, 1, 2, 3 match
	assert.InDelta(t, 0.8, detection.Accuracy, 1e-12)
}

func TestDetect_AccuracyBounds(t *testing.T) {
	testCases := []struct {
		name     string
		signal   []float64
		original []int
		expected float64
	}{
		{"all match", []float64{1, -1, 1}, []int{1, 0, 1}, 1.0},
		{"none match", []float64{1, -1}, []int{0, 1}, 0.0},
		{"half match", []float64{1, 1}, []int{1, 0}, 0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			detection, err := Detect(tc.signal, tc.original)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, detection.Accuracy, 1e-12)
		})
	}
}

func TestDetect_LengthMismatch(t *testing.T) {
	_, err := Detect([]float64{0.1, 0.2}, []int{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSpectrum_Length(t *testing.T) {
	testCases := []struct {
		name     string
		samples  int
		maxBins  int
		expected int
	}{
		{"short signal truncates to signal length", 8, 20, 8},
		{"long signal truncates to maxBins", 100, 20, 20},
		{"exact boundary", 20, 20, 20},
		{"single sample", 1, 20, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signal := make([]float64, tc.samples)
			for i := range signal {
				signal[i] = math.Sin(float64(i))
			}

			spectrum, err := Spectrum(signal, tc.maxBins)
			require.NoError(t, err)
			assert.Len(t, spectrum, tc.expected)

			for i, m := range spectrum {
				assert.GreaterOrEqual(t, m, 0.0, "bin %d is negative", i)
			}
		})
	}
}

func TestSpectrum_AllZeroSignal(t *testing.T) {
	spectrum, err := Spectrum(make([]float64, 32), 20)
	require.NoError(t, err)

	require.Len(t, spectrum, 20)
	for i, m := range spectrum {
		assert.Zero(t, m, "bin %d", i)
	}
}

func TestSpectrum_DCComponent(t *testing.T) {
	// The first bin of the DFT is the plain sum of the samples
	signal := []float64{1, 1, 1, 1}

	spectrum, err := Spectrum(signal, 20)
	require.NoError(t, err)

	require.Len(t, spectrum, 4)
	assert.InDelta(t, 4.0, spectrum[0], 1e-9)
	// A constant signal has no energy outside DC
	for i := 1; i < len(spectrum); i++ {
		assert.InDelta(t, 0.0, spectrum[i], 1e-9)
	}
}

func TestSpectrum_AlternatingSignal(t *testing.T) {
	// +1 -1 +1 -1 concentrates all energy at the Nyquist bin
	signal := []float64{1, -1, 1, -1}

	spectrum, err := Spectrum(signal, 20)
	require.NoError(t, err)

	require.Len(t, spectrum, 4)
	assert.InDelta(t, 0.0, spectrum[0], 1e-9)
	assert.InDelta(t, 0.0, spectrum[1], 1e-9)
	assert.InDelta(t, 4.0, spectrum[2], 1e-9)
	assert.InDelta(t, 0.0, spectrum[3], 1e-9)
}

func TestSpectrum_InvalidMaxBins(t *testing.T) {
	for _, maxBins := range []int{0, -1} {
		spectrum, err := Spectrum([]float64{1, 2, 3}, maxBins)
		assert.Nil(t, spectrum)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestSpectrum_EmptySignal(t *testing.T) {
	spectrum, err := Spectrum([]float64{}, 20)
	require.NoError(t, err)
	assert.Empty(t, spectrum)
}
