package wave

// computeNormals rebuilds normals and x-tangents from central differences of
// the current heights. Border vertices copy the frame of the nearest
// interior vertex.
func (s *Simulator) computeNormals() {
	curr := s.field.curr()
	rows, cols := s.rows, s.cols
	twoDx := float32(2 * s.spatialStep)

	for i := 1; i < rows-1; i++ {
		base := i * cols
		for j := 1; j < cols-1; j++ {
			idx := base + j
			l := curr[idx-1].Y
			r := curr[idx+1].Y
			t := curr[idx-cols].Y
			b := curr[idx+cols].Y

			tx := Vec3{X: twoDx, Y: r - l}
			tz := Vec3{Y: b - t, Z: twoDx}
			s.tangentX[idx] = Normalize(tx)
			s.normals[idx] = Normalize(Cross(tz, tx))
		}
	}

	for i := 0; i < rows; i++ {
		ci := clampInt(i, 1, rows-2)
		for j := 0; j < cols; j++ {
			if i > 0 && i < rows-1 && j > 0 && j < cols-1 {
				continue
			}
			src := ci*cols + clampInt(j, 1, cols-2)
			dst := i*cols + j
			s.normals[dst] = s.normals[src]
			s.tangentX[dst] = s.tangentX[src]
		}
	}
}

// clampInt constrains v to the inclusive range [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
