package simulation

import "fmt"

// GenerateBits produces length independent uniform draws from {0, 1}.
// It holds no state between calls.
func GenerateBits(rng Rand, length int) ([]int, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: length must be >= 1, got %d", ErrInvalidArgument, length)
	}

	bits := make([]int, length)
	for i := range bits {
		bits[i] = rng.Intn(2)
	}
	return bits, nil
}
