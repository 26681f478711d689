// Package rowpool runs the wave stencil on a fixed set of goroutines, each
// owning a contiguous band of interior rows. It implements wave.Stepper.
package rowpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"wavegrid/internal/wave"
)

// ErrClosed is returned by Step after Close.
var ErrClosed = errors.New("rowpool: stepper closed")

// band is an inclusive range of interior rows.
type band struct{ start, end int }

type job struct {
	prev, curr []float32
	cols       int
	k          wave.Coefficients
}

// Stepper is a pool of stencil workers. Step must not be called
// concurrently with itself or Close.
type Stepper struct {
	mu      sync.Mutex
	cond    *sync.Cond
	workers int
	gen     int
	pending int
	closed  bool
	job     job

	bands    []band
	bandRows int
}

// New starts a pool of n workers; n < 1 uses one per CPU.
func New(n int) *Stepper {
	if n < 1 {
		n = runtime.NumCPU()
	}
	s := &Stepper{workers: n}
	s.cond = sync.NewCond(&s.mu)
	for i := 0; i < n; i++ {
		go s.workerLoop(i)
	}
	return s
}

// Workers reports the pool size.
func (s *Stepper) Workers() int { return s.workers }

// Step implements wave.Stepper.
func (s *Stepper) Step(prev, curr []float32, rows, cols int, k wave.Coefficients, steps int) error {
	if len(prev) != rows*cols || len(curr) != rows*cols {
		return fmt.Errorf("rowpool: buffers of %d and %d heights for a %dx%d grid", len(prev), len(curr), rows, cols)
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if s.bandRows != rows {
		s.bands = assignBands(s.workers, rows)
		s.bandRows = rows
	}

	a, b := prev, curr
	for i := 0; i < steps; i++ {
		s.run(job{prev: a, curr: b, cols: cols, k: k})
		a, b = b, a
	}
	if steps%2 == 1 {
		// the newest heights landed in prev
		for i := range prev {
			prev[i], curr[i] = curr[i], prev[i]
		}
	}
	return nil
}

// run hands one stencil pass to every worker and waits for all of them.
func (s *Stepper) run(j job) {
	s.mu.Lock()
	s.job = j
	s.pending = s.workers
	s.gen++
	s.cond.Broadcast()
	for s.pending > 0 {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

func (s *Stepper) workerLoop(index int) {
	last := 0
	s.mu.Lock()
	for {
		for s.gen == last && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		last = s.gen
		j := s.job
		var bd band
		ok := index < len(s.bands)
		if ok {
			bd = s.bands[index]
		}
		s.mu.Unlock()

		if ok {
			stepBand(j, bd)
		}

		s.mu.Lock()
		s.pending--
		if s.pending == 0 {
			s.cond.Broadcast()
		}
	}
}

// Close stops the workers.
func (s *Stepper) Close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// assignBands splits rows 1..rows-2 into at most workers contiguous bands of
// near-equal size.
func assignBands(workers, rows int) []band {
	interior := rows - 2
	if interior <= 0 {
		return nil
	}
	if workers > interior {
		workers = interior
	}
	bands := make([]band, 0, workers)
	start := 1
	for w := 0; w < workers; w++ {
		size := interior / workers
		if w < interior%workers {
			size++
		}
		bands = append(bands, band{start: start, end: start + size - 1})
		start += size
	}
	return bands
}

// stepBand applies the stencil to one band, writing into prev.
func stepBand(j job, bd band) {
	cols := j.cols
	k1, k2, k3 := j.k.K1, j.k.K2, j.k.K3
	for y := bd.start; y <= bd.end; y++ {
		base := y * cols
		center := j.curr[base : base+cols]
		top := j.curr[base-cols : base]
		bottom := j.curr[base+cols : base+2*cols]
		out := j.prev[base : base+cols]

		x := 1
		end := cols - 2
		for ; x+3 <= end; x += 4 {
			out[x] = k1*out[x] + k2*center[x] + k3*(top[x]+bottom[x]+center[x-1]+center[x+1])
			x1 := x + 1
			out[x1] = k1*out[x1] + k2*center[x1] + k3*(top[x1]+bottom[x1]+center[x1-1]+center[x1+1])
			x2 := x + 2
			out[x2] = k1*out[x2] + k2*center[x2] + k3*(top[x2]+bottom[x2]+center[x2-1]+center[x2+1])
			x3 := x + 3
			out[x3] = k1*out[x3] + k2*center[x3] + k3*(top[x3]+bottom[x3]+center[x3-1]+center[x3+1])
		}
		for ; x <= end; x++ {
			out[x] = k1*out[x] + k2*center[x] + k3*(top[x]+bottom[x]+center[x-1]+center[x+1])
		}
	}
}
