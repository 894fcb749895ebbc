package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is matched by every ParameterError.
	ErrInvalidParameter = errors.New("invalid generation parameter")
	// ErrNonFiniteSample is matched by every SamplerError.
	ErrNonFiniteSample = errors.New("noise field returned a non-finite sample")
)

// ParameterError reports a generation parameter outside its valid range.
type ParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidParameter.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// SamplerError reports a NaN or infinite value returned by a noise field.
type SamplerError struct {
	Vertex  int
	X, Y, Z float64
	Value   float64
}

func (e *SamplerError) Error() string {
	return fmt.Sprintf("noise sample for vertex %d at (%g, %g, %g) is %v", e.Vertex, e.X, e.Y, e.Z, e.Value)
}

// Is reports whether target is ErrNonFiniteSample.
func (e *SamplerError) Is(target error) bool {
	return target == ErrNonFiniteSample
}
