package clwave

// Option configures a Solver.
type Option func(*config)

type config struct {
	verify    bool
	preferCPU bool
}

// WithVerify cross-checks every device run against the CPU stencil and
// fails the step on a mismatch.
func WithVerify() Option {
	return func(c *config) { c.verify = true }
}

// WithCPUDevice selects an OpenCL CPU device even when a GPU is present.
func WithCPUDevice() Option {
	return func(c *config) { c.preferCPU = true }
}
