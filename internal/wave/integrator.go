package wave

import (
	"fmt"
	"math"
)

// Update consumes realDt seconds of real time in fixed simulation steps and
// refreshes normals and tangents if the surface changed. At most the
// configured number of steps run per call; whole steps beyond that are
// dropped and only the fractional remainder is carried over.
func (s *Simulator) Update(realDt float64) error {
	if !(realDt >= 0) || math.IsInf(realDt, 1) {
		return fmt.Errorf("update by %v seconds: %w", realDt, ErrInvalidArgument)
	}
	s.accumulator += realDt
	n := 0
	for s.accumulator >= s.timeStep && n < s.maxSteps {
		s.accumulator -= s.timeStep
		n++
	}
	if s.accumulator >= s.timeStep {
		rem := math.Mod(s.accumulator, s.timeStep)
		Logger().Warn("wave: dropping catch-up time",
			"steps", n, "discarded", s.accumulator-rem)
		s.accumulator = rem
	}

	s.advance(n)
	if n > 0 || s.normalsDirty {
		s.computeNormals()
		s.normalsDirty = false
	}
	return nil
}

// advance runs n discrete steps, on the stepper when one is attached.
func (s *Simulator) advance(n int) {
	if n == 0 {
		return
	}
	if s.stepper != nil && s.advanceStepper(n) {
		return
	}
	for i := 0; i < n; i++ {
		s.step()
	}
}

// step writes the heights at t+1 over the t-1 buffer and rotates roles.
func (s *Simulator) step() {
	prev, curr := s.field.prev(), s.field.curr()
	k := s.k
	cols := s.cols
	for i := 1; i < s.rows-1; i++ {
		base := i * cols
		for j := 1; j < cols-1; j++ {
			idx := base + j
			prev[idx].Y = k.K1*prev[idx].Y + k.K2*curr[idx].Y +
				k.K3*(curr[idx-cols].Y+curr[idx+cols].Y+curr[idx-1].Y+curr[idx+1].Y)
		}
	}
	s.field.rotate()
	s.steps++
}

// advanceStepper hands n steps to the attached stepper. On failure the
// stepper is detached, the field is left untouched and false is returned.
func (s *Simulator) advanceStepper(n int) bool {
	prev, curr := s.field.prev(), s.field.curr()
	for i := range prev {
		s.scratchPrev[i] = prev[i].Y
		s.scratchCurr[i] = curr[i].Y
	}
	if err := s.stepper.Step(s.scratchPrev, s.scratchCurr, s.rows, s.cols, s.k, n); err != nil {
		Logger().Warn("wave: stepper failed, continuing on CPU", "err", err)
		s.stepper = nil
		return false
	}
	for i := range prev {
		prev[i].Y = s.scratchPrev[i]
		curr[i].Y = s.scratchCurr[i]
	}
	s.steps += uint64(n)
	return true
}
