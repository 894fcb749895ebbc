// Package noise provides seeded 3D coherent noise fields used to deform
// the fruit mesh.
package noise

// Field maps a point in 3D space to a scalar in [-1, 1].
// Implementations are deterministic for the lifetime of the instance and
// safe for concurrent use once constructed.
type Field interface {
	Sample(x, y, z float64) float64
}

// FieldFunc adapts an ordinary function to the Field interface.
type FieldFunc func(x, y, z float64) float64

// Sample calls f(x, y, z).
func (f FieldFunc) Sample(x, y, z float64) float64 {
	return f(x, y, z)
}

// Constant returns a field that yields v everywhere.
func Constant(v float64) Field {
	return FieldFunc(func(_, _, _ float64) float64 { return v })
}

// Factory builds a fresh field from a seed.
type Factory func(seed int64) (Field, error)

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
