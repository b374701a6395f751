package simulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_SignalShape(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bits := []int{0, 1, 1, 0, 1, 0, 0, 1}

	signal, params, err := Encode(rng, bits, 4)
	require.NoError(t, err)

	assert.Len(t, signal, len(bits))
	assert.Len(t, params.Weights, 4)

	for i, v := range signal {
		assert.GreaterOrEqual(t, v, -1.0, "sample %d below -1", i)
		assert.LessOrEqual(t, v, 1.0, "sample %d above 1", i)
	}
}

func TestEncode_Formula(t *testing.T) {
	// Seeded source makes the weight draw reproducible, so the exact formula
	// can be asserted sample by sample.
	rng := rand.New(rand.NewSource(11))
	bits := []int{0, 1, 0, 1}

	signal, params, err := Encode(rng, bits, 2)
	require.NoError(t, err)

	a := params.Weights[0][0]
	b := params.Weights[0][1]
	for i, v := range bits {
		expected := math.Sin(float64(v)*math.Pi+a) * math.Cos(b)
		assert.InDelta(t, expected, signal[i], 1e-12)
	}
}

func TestEncode_SetBitFlipsSign(t *testing.T) {
	// Unless cos(b) is exactly zero, a set bit flips the sign of the sample
	// relative to a cleared bit. This is the property the detector exploits.
	rng := rand.New(rand.NewSource(5))

	signal, _, err := Encode(rng, []int{0, 1}, 1)
	require.NoError(t, err)

	if signal[0] != 0 {
		assert.Less(t, signal[0]*signal[1], 0.0)
	}
}

func TestEncode_OnlyFirstPairUsed(t *testing.T) {
	bitsA := []int{1, 0, 1}
	bitsB := []int{1, 0, 1}

	// Same seed, different qubit counts: the first pair is identical because
	// pairs are drawn in order, so the signals must match.
	signalA, paramsA, err := Encode(rand.New(rand.NewSource(21)), bitsA, 1)
	require.NoError(t, err)
	signalB, paramsB, err := Encode(rand.New(rand.NewSource(21)), bitsB, 8)
	require.NoError(t, err)

	assert.Equal(t, paramsA.Weights[0], paramsB.Weights[0])
	assert.Equal(t, signalA, signalB)
}

func TestEncode_InvalidArguments(t *testing.T) {
	testCases := []struct {
		name   string
		bits   []int
		qubits int
	}{
		{"zero qubits", []int{0, 1}, 0},
		{"negative qubits", []int{0, 1}, -2},
		{"bit out of range", []int{0, 2, 1}, 2},
		{"negative bit", []int{-1}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))

			signal, _, err := Encode(rng, tc.bits, tc.qubits)
			assert.Nil(t, signal)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestEncode_ParamsRedrawnEveryCall(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	bits := []int{0, 1}

	_, first, err := Encode(rng, bits, 2)
	require.NoError(t, err)
	_, second, err := Encode(rng, bits, 2)
	require.NoError(t, err)

	assert.NotEqual(t, first.Weights, second.Weights)
}
