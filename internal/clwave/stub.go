//go:build !opencl

package clwave

import "wavegrid/internal/wave"

// Solver is the OpenCL stepper. In this build it cannot be created.
type Solver struct{}

// New always fails without the opencl build tag.
func New(rows, cols int, opts ...Option) (*Solver, error) {
	return nil, ErrUnavailable
}

// Step implements wave.Stepper.
func (s *Solver) Step(prev, curr []float32, rows, cols int, k wave.Coefficients, steps int) error {
	return ErrUnavailable
}

// Close is a no-op.
func (s *Solver) Close() {}

// DeviceName returns an empty string.
func (s *Solver) DeviceName() string { return "" }
