package clwave

import "errors"

var (
	// ErrUnavailable is returned by New in builds without OpenCL support.
	ErrUnavailable = errors.New("clwave: OpenCL support is not enabled; rebuild with -tags opencl")

	// ErrMismatch is returned by a verifying Solver when device and CPU
	// results disagree.
	ErrMismatch = errors.New("clwave: device result differs from CPU stencil")
)
