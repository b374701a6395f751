package simulation

import (
	"fmt"
	"math"
)

// Params holds the rotation weights drawn for one encoding pass. One pair per
// qubit, drawn from a standard normal distribution on every run - this is not
// a trained model. Only the first qubit's pair enters the encoding formula;
// the remaining pairs shape the draw only. That asymmetry is carried over
// from the reference circuit on purpose (see DESIGN.md), because changing it
// would change the output distribution.
type Params struct {
	Weights [][2]float64 `json:"weights"`
}

// Encode maps a bit sequence to a real-valued signal using randomly drawn
// rotation weights. A bit v encodes as sin(v*pi + a) * cos(b) where (a, b) is
// the first qubit's weight pair. Every sample lies in [-1, 1]. A set bit
// pushes the angle by pi, flipping the sign of the sine term, which is what
// makes the samples separable by a zero threshold downstream.
func Encode(rng Rand, bits []int, qubits int) ([]float64, Params, error) {
	if qubits < 1 {
		return nil, Params{}, fmt.Errorf("%w: qubits must be >= 1, got %d", ErrInvalidArgument, qubits)
	}

	weights := make([][2]float64, qubits)
	for i := range weights {
		weights[i] = [2]float64{rng.NormFloat64(), rng.NormFloat64()}
	}
	params := Params{Weights: weights}

	a := weights[0][0]
	b := weights[0][1]

	signal := make([]float64, len(bits))
	for i, v := range bits {
		if v != 0 && v != 1 {
			return nil, Params{}, fmt.Errorf("%w: bit at index %d is %d, want 0 or 1", ErrInvalidArgument, i, v)
		}
		theta := float64(v) * math.Pi
		signal[i] = math.Sin(theta+a) * math.Cos(b)
	}

	return signal, params, nil
}
