// Package stream broadcasts simulated height fields to websocket viewers.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"wavegrid/internal/wave"
)

// ErrBadFrame is returned by Decode for malformed messages.
var ErrBadFrame = errors.New("stream: malformed frame")

var magic = [4]byte{'W', 'A', 'V', 'E'}

// headerSize is magic, rows, cols and step.
const headerSize = 4 + 2 + 2 + 8

// Frame is one snapshot of a height field.
type Frame struct {
	Rows, Cols int
	Step       uint64
	Heights    []float32
}

// Source is the part of the simulator a frame is captured from.
type Source interface {
	RowCount() int
	ColumnCount() int
	Steps() uint64
	Positions() []wave.Vec3
}

// Capture copies the current heights of src into a frame, reusing the
// storage of buf when it is large enough.
func Capture(src Source, buf []float32) Frame {
	pos := src.Positions()
	if cap(buf) < len(pos) {
		buf = make([]float32, len(pos))
	}
	buf = buf[:len(pos)]
	for i, p := range pos {
		buf[i] = p.Y
	}
	return Frame{Rows: src.RowCount(), Cols: src.ColumnCount(), Step: src.Steps(), Heights: buf}
}

// AppendBinary appends the wire encoding of f to dst: the magic "WAVE",
// little-endian uint16 rows and cols, uint64 step, then one binary16 value
// per height in row-major order.
func (f Frame) AppendBinary(dst []byte) ([]byte, error) {
	if f.Rows <= 0 || f.Cols <= 0 || f.Rows > 0xffff || f.Cols > 0xffff {
		return dst, fmt.Errorf("stream: frame size %dx%d not encodable", f.Rows, f.Cols)
	}
	if len(f.Heights) != f.Rows*f.Cols {
		return dst, fmt.Errorf("stream: %d heights for a %dx%d frame", len(f.Heights), f.Rows, f.Cols)
	}
	dst = append(dst, magic[:]...)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(f.Rows))
	dst = binary.LittleEndian.AppendUint16(dst, uint16(f.Cols))
	dst = binary.LittleEndian.AppendUint64(dst, f.Step)
	for _, h := range f.Heights {
		dst = binary.LittleEndian.AppendUint16(dst, toHalf(h))
	}
	return dst, nil
}

// Decode parses a message produced by AppendBinary.
func Decode(b []byte) (Frame, error) {
	if len(b) < headerSize || [4]byte(b[:4]) != magic {
		return Frame{}, fmt.Errorf("missing header: %w", ErrBadFrame)
	}
	f := Frame{
		Rows: int(binary.LittleEndian.Uint16(b[4:])),
		Cols: int(binary.LittleEndian.Uint16(b[6:])),
		Step: binary.LittleEndian.Uint64(b[8:]),
	}
	body := b[headerSize:]
	if len(body) != 2*f.Rows*f.Cols {
		return Frame{}, fmt.Errorf("%d body bytes for a %dx%d frame: %w", len(body), f.Rows, f.Cols, ErrBadFrame)
	}
	f.Heights = make([]float32, f.Rows*f.Cols)
	for i := range f.Heights {
		f.Heights[i] = fromHalf(binary.LittleEndian.Uint16(body[2*i:]))
	}
	return f, nil
}
