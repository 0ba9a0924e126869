// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single break-even search.
type Summary struct {
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Min             float64  `json:"min"`
	Max             float64  `json:"max"`
	TargetYear      int      `json:"targetYear"`
	BreakEvenMonth  int      `json:"breakEvenMonth,omitempty"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

// Changed reports whether the search moved the parameter away from its
// configured value.
func (s Summary) Changed() bool {
	return s.Value != s.Original
}
