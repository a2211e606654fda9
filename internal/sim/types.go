package sim

import (
	"fmt"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

type Config struct {
	Dt    float64
	Steps int
	// ValidateState stops a run at the first NaN or Inf state.
	ValidateState bool
}

func (c Config) Validate() error {
	if err := dynamo.Positive("sim", "dt", c.Dt); err != nil {
		return err
	}
	return dynamo.NonNegative("sim", "steps", float64(c.Steps))
}

type Result struct {
	States     []dynamo.State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	// Diverged is set when ValidateState stopped the run.
	Diverged *SimError
}

// Final returns the last recorded state.
func (r *Result) Final() dynamo.State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
