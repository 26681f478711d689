package wave

// heightField stores the two solution buffers needed by the three-level
// recurrence. The slices never move; only the prev/curr role indices swap
// after each discrete step.
type heightField struct {
	buf     [2][]Vec3
	prevIdx int
	currIdx int
}

// newHeightField lays out a rows x cols lattice centered on the origin in the
// xz-plane with every height at zero. Row i runs along +z, column j along +x.
func newHeightField(rows, cols int, dx float32) heightField {
	halfWidth := float32(cols-1) * dx * 0.5
	halfDepth := float32(rows-1) * dx * 0.5
	f := heightField{prevIdx: 0, currIdx: 1}
	for b := range f.buf {
		f.buf[b] = make([]Vec3, rows*cols)
	}
	for i := 0; i < rows; i++ {
		z := -halfDepth + float32(i)*dx
		for j := 0; j < cols; j++ {
			x := -halfWidth + float32(j)*dx
			idx := i*cols + j
			f.buf[0][idx] = Vec3{X: x, Z: z}
			f.buf[1][idx] = Vec3{X: x, Z: z}
		}
	}
	return f
}

// prev returns the buffer holding heights at t-1.
func (f *heightField) prev() []Vec3 { return f.buf[f.prevIdx] }

// curr returns the buffer holding heights at t.
func (f *heightField) curr() []Vec3 { return f.buf[f.currIdx] }

// rotate makes the freshly written previous buffer current.
func (f *heightField) rotate() {
	f.prevIdx, f.currIdx = f.currIdx, f.prevIdx
}
