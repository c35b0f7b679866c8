package config

import "github.com/m-mizutani/goerr/v2"

// Policy holds the tunable constants of the decision engine: the
// score-to-recommendation bands, the low-score cutoff for red flags and
// action items, and the adaptive weighting parameters. The defaults come
// from the documented examples and are not normative.
type Policy struct {
	// Recommendation bands over the aggregate score
	ThresholdHigh float64 `toml:"threshold_high" json:"threshold_high"`
	ThresholdLow  float64 `toml:"threshold_low" json:"threshold_low"`

	// Agents scoring below this contribute red flags and action items
	LowScore float64 `toml:"low_score" json:"low_score"`

	// Finance score at or above this shortens the quit window
	WindowScore float64 `toml:"window_score" json:"window_score"`

	// Adaptive weighting
	LearningRate  float64 `toml:"learning_rate" json:"learning_rate"`
	WeightMin     float64 `toml:"weight_min" json:"weight_min"`
	WeightMax     float64 `toml:"weight_max" json:"weight_max"`
	DefaultWeight float64 `toml:"default_weight" json:"default_weight"`

	// Maximum similar cases attached to a decision
	SimilarLimit int `toml:"similar_limit" json:"similar_limit"`
}

// DefaultPolicy returns the built-in policy constants
func DefaultPolicy() *Policy {
	return &Policy{
		ThresholdHigh: 58,
		ThresholdLow:  40,
		LowScore:      50,
		WindowScore:   70,
		LearningRate:  0.05,
		WeightMin:     0.1,
		WeightMax:     5.0,
		DefaultWeight: 1.0,
		SimilarLimit:  4,
	}
}

// Validate checks the policy for internal consistency
func (x *Policy) Validate() error {
	if x.ThresholdLow < 0 || x.ThresholdHigh > 100 || x.ThresholdLow >= x.ThresholdHigh {
		return goerr.New("recommendation thresholds must satisfy 0 <= low < high <= 100",
			goerr.V("threshold_low", x.ThresholdLow),
			goerr.V("threshold_high", x.ThresholdHigh))
	}
	if x.LowScore < 0 || x.LowScore > 100 {
		return goerr.New("low score cutoff must be within [0, 100]", goerr.V("low_score", x.LowScore))
	}
	if x.WindowScore < 0 || x.WindowScore > 100 {
		return goerr.New("window score must be within [0, 100]", goerr.V("window_score", x.WindowScore))
	}
	if x.LearningRate <= 0 || x.LearningRate >= 1 {
		return goerr.New("learning rate must be within (0, 1)", goerr.V("learning_rate", x.LearningRate))
	}
	if x.WeightMin <= 0 {
		return goerr.New("minimum weight must be positive", goerr.V("weight_min", x.WeightMin))
	}
	if x.WeightMax < x.WeightMin {
		return goerr.New("maximum weight must not be below minimum weight",
			goerr.V("weight_min", x.WeightMin),
			goerr.V("weight_max", x.WeightMax))
	}
	if x.DefaultWeight < x.WeightMin || x.DefaultWeight > x.WeightMax {
		return goerr.New("default weight must be within [weight_min, weight_max]",
			goerr.V("default_weight", x.DefaultWeight))
	}
	if x.SimilarLimit < 0 {
		return goerr.New("similar case limit must not be negative", goerr.V("similar_limit", x.SimilarLimit))
	}
	return nil
}
