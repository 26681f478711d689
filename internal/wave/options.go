package wave

// DefaultMaxStepsPerUpdate bounds the discrete steps a single Update may run.
const DefaultMaxStepsPerUpdate = 8

// Option configures a Simulator at construction.
type Option func(*options)

type options struct {
	maxSteps       int
	stabilityCheck bool
	stepper        Stepper
}

func defaultOptions() options {
	return options{maxSteps: DefaultMaxStepsPerUpdate}
}

// WithMaxStepsPerUpdate sets how many discrete steps one Update call may run
// before the remaining whole steps of accumulated time are dropped. n must
// be at least 1.
func WithMaxStepsPerUpdate(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

// WithStabilityCheck makes New reject configurations whose wave speed breaks
// the explicit scheme's stability bound.
func WithStabilityCheck() Option {
	return func(o *options) {
		o.stabilityCheck = true
	}
}

// WithStepper runs discrete steps on st instead of the built-in CPU stencil.
func WithStepper(st Stepper) Option {
	return func(o *options) {
		o.stepper = st
	}
}
