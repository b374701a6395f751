package simulation

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectrumBins is the number of DFT magnitude bins returned for display.
const SpectrumBins = 20

// Detection is the result of thresholding a signal back to bits.
type Detection struct {
	Bits     []int   `json:"bits"`
	Accuracy float64 `json:"accuracy"` // Fraction in [0, 1]
}

// Detect reconstructs bits from a signal by zero-thresholding and scores them
// against the originally transmitted bits. detected[i] is 1 iff signal[i] > 0.
func Detect(signal []float64, originalBits []int) (Detection, error) {
	if len(signal) != len(originalBits) {
		return Detection{}, fmt.Errorf("%w: signal length %d does not match bit length %d",
			ErrInvalidArgument, len(signal), len(originalBits))
	}

	detected := make([]int, len(signal))
	matches := 0
	for i, s := range signal {
		if s > 0 {
			detected[i] = 1
		}
		if detected[i] == originalBits[i] {
			matches++
		}
	}

	accuracy := 0.0
	if len(signal) > 0 {
		accuracy = float64(matches) / float64(len(signal))
	}

	return Detection{Bits: detected, Accuracy: accuracy}, nil
}

// Spectrum computes the magnitude of the full complex DFT of the signal and
// returns the first min(maxBins, len(signal)) bins, DC component first. This
// deliberately does not use the half-spectrum real transform: short signals
// must still yield len(signal) bins.
func Spectrum(signal []float64, maxBins int) ([]float64, error) {
	if maxBins < 1 {
		return nil, fmt.Errorf("%w: maxBins must be >= 1, got %d", ErrInvalidArgument, maxBins)
	}

	n := len(signal)
	if n == 0 {
		return []float64{}, nil
	}

	seq := make([]complex128, n)
	for i, v := range signal {
		seq[i] = complex(v, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	coeffs := fft.Coefficients(nil, seq)

	bins := maxBins
	if n < bins {
		bins = n
	}

	magnitudes := make([]float64, bins)
	for i := 0; i < bins; i++ {
		magnitudes[i] = cmplx.Abs(coeffs[i])
	}
	return magnitudes, nil
}
