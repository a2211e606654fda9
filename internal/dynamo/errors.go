package dynamo

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for engine operations.
var (
	// ErrInvalidParameter indicates a structurally invalid parameter such as a
	// non-positive length, mass, time step or raster dimension.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrUnknownParameter indicates a parameter name the engine does not expose.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrInvalidState indicates a state vector with wrong dimensions.
	ErrInvalidState = errors.New("dynamo: invalid state")
)

// ParamError wraps ErrInvalidParameter with the offending parameter.
type ParamError struct {
	Engine string
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: invalid parameter %s=%g: %s", e.Engine, e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// Positive returns a ParamError unless v > 0. NaN is rejected.
func Positive(engine, param string, v float64) error {
	if !(v > 0) {
		return &ParamError{Engine: engine, Param: param, Value: v, Reason: "must be positive"}
	}
	return nil
}

// NonNegative returns a ParamError unless v >= 0.
func NonNegative(engine, param string, v float64) error {
	if !(v >= 0) {
		return &ParamError{Engine: engine, Param: param, Value: v, Reason: "must not be negative"}
	}
	return nil
}

// Integer converts a count parameter supplied as float64. Fractional, NaN and
// out-of-range values are rejected rather than truncated.
func Integer(engine, param string, v float64) (int, error) {
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, &ParamError{Engine: engine, Param: param, Value: v, Reason: "must be a whole number"}
	}
	return int(v), nil
}

// CheckDim returns an error wrapping ErrInvalidState unless x has dim
// entries. A dim of zero accepts any length.
func CheckDim(x State, dim int) error {
	if dim > 0 && len(x) != dim {
		return fmt.Errorf("%w: got %d components, want %d", ErrInvalidState, len(x), dim)
	}
	return nil
}

// UnknownParam reports a name that SetParam does not recognise.
func UnknownParam(engine, name string) error {
	return fmt.Errorf("%s: %w: %s", engine, ErrUnknownParameter, name)
}
