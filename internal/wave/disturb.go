package wave

import "fmt"

// Disturb adds magnitude to the current height at (row, col) and half of it
// to each axis neighbor. The point must be strictly interior. Neighbors on
// the clamped border are skipped so the border stays at zero, which makes
// the half-magnitude splash partial at row or column 1 and rows-2 or cols-2.
// Simulation time and the accumulator are not touched; normals follow on the
// next Update.
func (s *Simulator) Disturb(row, col int, magnitude float32) error {
	if row < 1 || row > s.rows-2 || col < 1 || col > s.cols-2 {
		return fmt.Errorf("disturb at (%d, %d) outside interior [1, %d]x[1, %d]: %w",
			row, col, s.rows-2, s.cols-2, ErrOutOfRange)
	}
	curr := s.field.curr()
	idx := row*s.cols + col
	half := 0.5 * magnitude

	curr[idx].Y += magnitude
	if row > 1 {
		curr[idx-s.cols].Y += half
	}
	if row < s.rows-2 {
		curr[idx+s.cols].Y += half
	}
	if col > 1 {
		curr[idx-1].Y += half
	}
	if col < s.cols-2 {
		curr[idx+1].Y += half
	}
	s.normalsDirty = true
	return nil
}
