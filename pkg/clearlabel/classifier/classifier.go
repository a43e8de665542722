// Package classifier defines the boundary to an optional statistical
// ingredient classifier. The deterministic match cascade always takes
// precedence; a classifier signal is advisory only and can never override
// a cascade verdict.
package classifier

// Prediction is an auxiliary harmfulness signal for one normalized
// ingredient string.
type Prediction struct {
	Harmful    bool    `json:"is_harmful"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category,omitempty"`
}

// Signal is implemented by pluggable statistical classifiers. Predict
// returns false when the classifier has no opinion on the input.
type Signal interface {
	Predict(normalized string) (Prediction, bool)
}

// SignalFunc adapts a plain function to the Signal interface.
type SignalFunc func(normalized string) (Prediction, bool)

// Predict implements Signal.
func (f SignalFunc) Predict(normalized string) (Prediction, bool) {
	return f(normalized)
}
