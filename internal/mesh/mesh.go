// Package mesh turns the simulator's read surface into GPU-ready vertex and
// index data.
package mesh

import (
	"fmt"

	"wavegrid/internal/wave"
)

// FloatsPerVertex is the stride of an interleaved vertex: position, normal
// and x-tangent.
const FloatsPerVertex = 9

// Surface is the per-frame read surface of a simulated grid.
type Surface interface {
	VertexCount() int
	Position(i int) wave.Vec3
	Normal(i int) wave.Vec3
	TangentX(i int) wave.Vec3
}

// Indices builds a triangle list covering a rows x cols grid, two triangles
// per quad, counter-clockwise when viewed from +y. It fails when a vertex
// index does not fit in T.
func Indices[T ~uint16 | ~uint32](rows, cols int) ([]T, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("mesh: grid %dx%d has no quads", rows, cols)
	}
	if uint64(rows*cols-1) > uint64(^T(0)) {
		return nil, fmt.Errorf("mesh: %d vertices overflow %T indices", rows*cols, T(0))
	}
	out := make([]T, 0, (rows-1)*(cols-1)*6)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a := T(i*cols + j)
			b := a + 1
			c := T((i+1)*cols + j)
			d := c + 1
			out = append(out, a, c, b, b, c, d)
		}
	}
	return out, nil
}

// Interleave packs every vertex of s into dst as FloatsPerVertex floats,
// growing dst when needed, and returns the filled slice.
func Interleave(dst []float32, s Surface) []float32 {
	n := s.VertexCount() * FloatsPerVertex
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i := 0; i < s.VertexCount(); i++ {
		p, nv, tx := s.Position(i), s.Normal(i), s.TangentX(i)
		o := i * FloatsPerVertex
		dst[o+0], dst[o+1], dst[o+2] = p.X, p.Y, p.Z
		dst[o+3], dst[o+4], dst[o+5] = nv.X, nv.Y, nv.Z
		dst[o+6], dst[o+7], dst[o+8] = tx.X, tx.Y, tx.Z
	}
	return dst
}
