package wave

import (
	"errors"
	"math"
	"testing"
)

func TestRestIsFixedPoint(t *testing.T) {
	s := newTestSim(t, 12, 9)
	for i := 0; i < 200; i++ {
		if err := s.Update(testDt * 1.7); err != nil {
			t.Fatal(err)
		}
	}
	if s.Steps() == 0 {
		t.Fatal("no discrete steps ran")
	}
	for i, y := range heights(s) {
		if y != 0 {
			t.Fatalf("height %d = %v after %d steps at rest, want 0", i, y, s.Steps())
		}
	}
}

func TestUpdateHalfStepsMatchWholeStep(t *testing.T) {
	split := newTestSim(t, 11, 11)
	whole := newTestSim(t, 11, 11)
	for _, s := range []*Simulator{split, whole} {
		if err := s.Disturb(5, 5, 1); err != nil {
			t.Fatal(err)
		}
		if err := s.Disturb(3, 7, -0.5); err != nil {
			t.Fatal(err)
		}
	}

	for frame := 0; frame < 30; frame++ {
		if err := split.Update(testDt / 2); err != nil {
			t.Fatal(err)
		}
		if err := split.Update(testDt / 2); err != nil {
			t.Fatal(err)
		}
		if err := whole.Update(testDt); err != nil {
			t.Fatal(err)
		}
	}

	if split.Steps() != whole.Steps() {
		t.Fatalf("Steps() = %d and %d, want equal", split.Steps(), whole.Steps())
	}
	a, b := heights(split), heights(whole)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("height %d = %v after half steps, %v after whole steps", i, a[i], b[i])
		}
	}
}

func TestUpdateBelowStepKeepsHeights(t *testing.T) {
	s := newTestSim(t, 9, 9)
	if err := s.Disturb(4, 4, 2); err != nil {
		t.Fatal(err)
	}
	before := heights(s)

	for _, d := range []float64{0, testDt * 0.25, testDt * 0.5} {
		if err := s.Update(d); err != nil {
			t.Fatal(err)
		}
	}
	if s.Steps() != 0 {
		t.Fatalf("Steps() = %d, want 0", s.Steps())
	}
	if got := s.Accumulator(); math.Abs(got-testDt*0.75) > 1e-12 {
		t.Errorf("Accumulator() = %v, want %v", got, testDt*0.75)
	}
	for i, y := range heights(s) {
		if y != before[i] {
			t.Fatalf("height %d changed from %v to %v without a step", i, before[i], y)
		}
	}
}

func TestUpdateRejectsBadDelta(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"negative", -0.01},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, 6, 6)
			if err := s.Update(testDt / 3); err != nil {
				t.Fatal(err)
			}
			acc := s.Accumulator()

			err := s.Update(tt.dt)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Update(%v) error = %v, want ErrInvalidArgument", tt.dt, err)
			}
			if s.Accumulator() != acc || s.Steps() != 0 {
				t.Errorf("Update(%v) mutated state: accumulator %v -> %v, steps %d",
					tt.dt, acc, s.Accumulator(), s.Steps())
			}
		})
	}
}

func TestUpdateCapsCatchUpSteps(t *testing.T) {
	s := newTestSim(t, 8, 8, WithMaxStepsPerUpdate(3))
	if err := s.Update(testDt*10 + testDt/4); err != nil {
		t.Fatal(err)
	}
	if got := s.Steps(); got != 3 {
		t.Errorf("Steps() = %d, want 3", got)
	}
	acc := s.Accumulator()
	if acc < 0 || acc >= testDt {
		t.Fatalf("Accumulator() = %v, want in [0, %v)", acc, testDt)
	}
	if math.Abs(acc-testDt/4) > 1e-9 {
		t.Errorf("Accumulator() = %v, want fractional remainder %v", acc, testDt/4)
	}

	// Discarded time is not replayed later.
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if got := s.Steps(); got != 3 {
		t.Errorf("Steps() after Update(0) = %d, want 3", got)
	}
}

func TestAccumulatorStaysBelowStep(t *testing.T) {
	s := newTestSim(t, 8, 8)
	deltas := []float64{0.016, 0.017, 0.001, 0.05, 0.033, 0.2, 0, 0.029}
	for _, d := range deltas {
		if err := s.Update(d); err != nil {
			t.Fatal(err)
		}
		if acc := s.Accumulator(); acc < 0 || acc >= testDt {
			t.Fatalf("after Update(%v) Accumulator() = %v, want in [0, %v)", d, acc, testDt)
		}
	}
	if got, want := s.SimulationTime(), float64(s.Steps())*testDt; got != want {
		t.Errorf("SimulationTime() = %v, want %v", got, want)
	}
}

func TestBorderStaysZero(t *testing.T) {
	s := newTestSim(t, 10, 13)
	if err := s.Disturb(1, 1, 3); err != nil {
		t.Fatal(err)
	}
	if err := s.Disturb(8, 11, -2); err != nil {
		t.Fatal(err)
	}
	for step := 0; step < 100; step++ {
		if err := s.Update(testDt); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < s.RowCount(); i++ {
			for j := 0; j < s.ColumnCount(); j++ {
				if i != 0 && i != s.RowCount()-1 && j != 0 && j != s.ColumnCount()-1 {
					continue
				}
				if h := s.Height(i, j); h != 0 {
					t.Fatalf("step %d: border height (%d, %d) = %v, want 0", step, i, j, h)
				}
			}
		}
	}
}

func TestCenterDisturbanceStaysSymmetric(t *testing.T) {
	const n = 15
	s := newTestSim(t, n, n)
	if err := s.Disturb(n/2, n/2, 1); err != nil {
		t.Fatal(err)
	}
	for step := 1; step <= 60; step++ {
		if err := s.Update(testDt); err != nil {
			t.Fatal(err)
		}
		if step%10 != 0 {
			continue
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				h := s.Height(i, j)
				if m := s.Height(n-1-i, j); !nearlyEqual(h, m, 1e-5) {
					t.Fatalf("step %d: height(%d,%d) = %v, vertical mirror %v", step, i, j, h, m)
				}
				if m := s.Height(i, n-1-j); !nearlyEqual(h, m, 1e-5) {
					t.Fatalf("step %d: height(%d,%d) = %v, horizontal mirror %v", step, i, j, h, m)
				}
			}
		}
	}
}

func TestDampingDissipatesEnergy(t *testing.T) {
	s, err := New(21, 21, 1, 0.03, 4, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Disturb(10, 10, 1); err != nil {
		t.Fatal(err)
	}

	const window = 200
	var peaks []float32
	for w := 0; w < 5; w++ {
		var peak float32
		for i := 0; i < window; i++ {
			if err := s.Update(s.SimulationStep()); err != nil {
				t.Fatal(err)
			}
			if m := maxAbsHeight(s); m > peak {
				peak = m
			}
		}
		peaks = append(peaks, peak)
	}
	// The first window holds the initial transient.
	for w := 2; w < len(peaks); w++ {
		if peaks[w] > peaks[w-1] {
			t.Errorf("window %d peak %v exceeds window %d peak %v", w, peaks[w], w-1, peaks[w-1])
		}
	}
	if peaks[len(peaks)-1] >= peaks[0] {
		t.Errorf("final peak %v not below initial peak %v", peaks[len(peaks)-1], peaks[0])
	}
}

// sliceStepper runs the reference stencil on flat buffers.
type sliceStepper struct {
	calls int
}

func (st *sliceStepper) Step(prev, curr []float32, rows, cols int, k Coefficients, steps int) error {
	st.calls++
	for i := 0; i < steps; i++ {
		Stencil(prev, curr, rows, cols, k)
		// prev now holds t+1; swap contents so the slices keep their roles.
		for j := range prev {
			prev[j], curr[j] = curr[j], prev[j]
		}
	}
	return nil
}

type failingStepper struct {
	calls int
}

func (st *failingStepper) Step([]float32, []float32, int, int, Coefficients, int) error {
	st.calls++
	return errors.New("device lost")
}

func runDisturbed(t *testing.T, s *Simulator, frames int) []float32 {
	t.Helper()
	if err := s.Disturb(4, 6, 1.5); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < frames; i++ {
		if err := s.Update(testDt * 1.5); err != nil {
			t.Fatal(err)
		}
	}
	return heights(s)
}

func TestStepperMatchesCPU(t *testing.T) {
	st := &sliceStepper{}
	accel := newTestSim(t, 10, 12, WithStepper(st))
	cpu := newTestSim(t, 10, 12)

	a := runDisturbed(t, accel, 40)
	b := runDisturbed(t, cpu, 40)
	if st.calls == 0 {
		t.Fatal("stepper never called")
	}
	if accel.Steps() != cpu.Steps() {
		t.Fatalf("Steps() = %d with stepper, %d on CPU", accel.Steps(), cpu.Steps())
	}
	for i := range a {
		if !nearlyEqual(a[i], b[i], 1e-6) {
			t.Fatalf("height %d = %v with stepper, %v on CPU", i, a[i], b[i])
		}
	}
}

func TestStepperFailureFallsBackToCPU(t *testing.T) {
	st := &failingStepper{}
	accel := newTestSim(t, 10, 12, WithStepper(st))
	cpu := newTestSim(t, 10, 12)

	a := runDisturbed(t, accel, 25)
	b := runDisturbed(t, cpu, 25)
	if st.calls != 1 {
		t.Errorf("failing stepper called %d times, want 1", st.calls)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("height %d = %v after fallback, %v on CPU", i, a[i], b[i])
		}
	}
}
