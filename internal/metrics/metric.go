package metrics

import "github.com/san-kum/chaoslab/internal/dynamo"

// Metric accumulates a scalar summary over observed states.
type Metric interface {
	Name() string
	Observe(x dynamo.State)
	Value() float64
	Reset()
}
