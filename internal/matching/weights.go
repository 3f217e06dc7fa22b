// internal/matching/weights.go
package matching

import (
	"fmt"
	"math"
)

// Weights holds the relative importance of each scoring dimension.
// Callers are expected to supply weights summing to 1.0 so the aggregate
// stays in [0,1]; the engine does not reject other sums.
type Weights struct {
	Experience   float64 `json:"experience" mapstructure:"experience"`
	Skills       float64 `json:"skills" mapstructure:"skills"`
	Industry     float64 `json:"industry" mapstructure:"industry"`
	Language     float64 `json:"language" mapstructure:"language"`
	Availability float64 `json:"availability" mapstructure:"availability"`
	Timezone     float64 `json:"timezone" mapstructure:"timezone"`
	Performance  float64 `json:"performance" mapstructure:"performance"`
	Region       float64 `json:"region" mapstructure:"region"`
}

// DefaultWeights is the documented baseline weight vector.
func DefaultWeights() Weights {
	return Weights{
		Experience:   0.15,
		Skills:       0.20,
		Industry:     0.15,
		Language:     0.10,
		Availability: 0.10,
		Timezone:     0.05,
		Performance:  0.20,
		Region:       0.05,
	}
}

func (w Weights) Sum() float64 {
	return w.Experience + w.Skills + w.Industry + w.Language +
		w.Availability + w.Timezone + w.Performance + w.Region
}

// IsZero reports whether no weight has been set at all, which callers use
// to fall back to DefaultWeights.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Validate returns a descriptive error when the weights do not sum to 1.0.
// Callers log it as a warning and proceed; a drifting sum is a caller
// responsibility, not an engine failure.
func (w Weights) Validate() error {
	if sum := w.Sum(); math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %.4f, expected 1.0; aggregate scores may leave [0,1]", sum)
	}
	return nil
}
