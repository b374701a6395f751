package simulation

// HistoryPoint is one record of the synthetic learning trajectory shown on
// the dashboard.
type HistoryPoint struct {
	Step     int     `json:"step"`
	Accuracy float64 `json:"accuracy"`
	Fidelity float64 `json:"fidelity"`
}

// SynthesizeHistory derives a 10-step display trajectory from the final
// accuracy fraction. The curve is purely algebraic - there is no optimizer
// behind it - and values are intentionally not clamped to [0, 100]: the
// dashboard renders whatever falls out of the formula.
func SynthesizeHistory(accuracyFraction float64) []HistoryPoint {
	a := accuracyFraction * 100

	history := make([]HistoryPoint, 10)
	for i := 1; i <= 10; i++ {
		history[i-1] = HistoryPoint{
			Step:     i,
			Accuracy: a - float64(10-i)*2,
			Fidelity: 75 + float64(i)*1.5,
		}
	}
	return history
}
