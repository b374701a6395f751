// Package simulation implements the quantum-inspired bit-detection pipeline:
// a random bit source, a trigonometric encoding stage with randomly drawn
// rotation weights, and a detector that thresholds the signal back to bits,
// scores accuracy and computes a magnitude spectrum for display.
package simulation

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RunResult is the complete output of one pipeline run. This is the shape
// consumed by the dashboard and the commentary service.
type RunResult struct {
	Input    []int          `json:"input"`
	Output   []int          `json:"output"`
	Spectrum []float64      `json:"spectrum"`
	History  []HistoryPoint `json:"history"`
	Accuracy float64        `json:"accuracy"` // Percentage, 0-100
}

// Service orchestrates the pipeline stages.
type Service struct {
	newRand func() Rand
	log     zerolog.Logger
}

// NewService creates a new simulation service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		newRand: NewRand,
		log:     log.With().Str("service", "simulation").Logger(),
	}
}

// NewServiceWithRand creates a simulation service with an injected random
// source factory. Used by tests to get deterministic runs.
func NewServiceWithRand(newRand func() Rand, log zerolog.Logger) *Service {
	return &Service{
		newRand: newRand,
		log:     log.With().Str("service", "simulation").Logger(),
	}
}

// Run executes the full pipeline: generate shots random bits, encode them
// through a qubits-channel transform, detect them back, and derive spectrum
// and history for display. Repeat calls with identical arguments return the
// same shapes but different values - the bit draw and the weight draw are
// fresh every run.
func (s *Service) Run(qubits, shots int) (*RunResult, error) {
	rng := s.newRand()

	bits, err := GenerateBits(rng, shots)
	if err != nil {
		return nil, fmt.Errorf("bit source: %w", err)
	}

	signal, _, err := Encode(rng, bits, qubits)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}

	detection, err := Detect(signal, bits)
	if err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}

	spectrum, err := Spectrum(signal, SpectrumBins)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	result := &RunResult{
		Input:    bits,
		Output:   detection.Bits,
		Spectrum: spectrum,
		History:  SynthesizeHistory(detection.Accuracy),
		Accuracy: detection.Accuracy * 100,
	}

	s.log.Debug().
		Int("qubits", qubits).
		Int("shots", shots).
		Float64("accuracy", result.Accuracy).
		Msg("Pipeline run completed")

	return result, nil
}
