package wave

// Stepper advances flat height buffers by a number of discrete steps. It is
// the hook for accelerated integrator backends.
//
// prev and curr hold rows*cols heights at t-1 and t. On a nil return they
// must hold the heights at t+steps-1 and t+steps in the same order. The
// outermost ring must stay at zero.
type Stepper interface {
	Step(prev, curr []float32, rows, cols int, k Coefficients, steps int) error
}

// Stencil performs one discrete step in place on flat height buffers: the
// new heights overwrite prev, after which the caller swaps the roles of prev
// and curr. Border cells are left untouched.
func Stencil(prev, curr []float32, rows, cols int, k Coefficients) {
	for i := 1; i < rows-1; i++ {
		base := i * cols
		for j := 1; j < cols-1; j++ {
			idx := base + j
			prev[idx] = k.K1*prev[idx] + k.K2*curr[idx] +
				k.K3*(curr[idx-cols]+curr[idx+cols]+curr[idx-1]+curr[idx+1])
		}
	}
}
