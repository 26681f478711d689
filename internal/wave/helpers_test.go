package wave

import (
	"math"
	"testing"
)

const (
	testDx      = 1.0
	testDt      = 0.03
	testSpeed   = 4.0
	testDamping = 0.2
)

func newTestSim(t *testing.T, rows, cols int, opts ...Option) *Simulator {
	t.Helper()
	s, err := New(rows, cols, testDx, testDt, testSpeed, testDamping, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", rows, cols, err)
	}
	return s
}

func heights(s *Simulator) []float32 {
	out := make([]float32, s.VertexCount())
	for i := range out {
		out[i] = s.Position(i).Y
	}
	return out
}

func maxAbsHeight(s *Simulator) float32 {
	var m float32
	for i := 0; i < s.VertexCount(); i++ {
		if v := float32(math.Abs(float64(s.Position(i).Y))); v > m {
			m = v
		}
	}
	return m
}

func nearlyEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}
