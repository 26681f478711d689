//go:build opencl

package clwave

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"wavegrid/internal/wave"
)

const verifyTolerance = 1e-4

const kernelSource = `__kernel void wave_step(
    const int rows,
    const int cols,
    const float k1,
    const float k2,
    const float k3,
    __global float* prev,
    __global const float* curr)
{
    int idx = get_global_id(0);
    if (idx >= rows * cols) {
        return;
    }
    int i = idx / cols;
    int j = idx - i * cols;
    if (i <= 0 || i >= rows - 1 || j <= 0 || j >= cols - 1) {
        return;
    }
    prev[idx] = k1 * prev[idx] + k2 * curr[idx]
        + k3 * (curr[idx - cols] + curr[idx + cols] + curr[idx - 1] + curr[idx + 1]);
}`

// Solver advances height buffers on an OpenCL device. The new heights are
// written over the t-1 buffer, so two device buffers suffice; their roles
// rotate by rebinding kernel arguments.
type Solver struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel
	bufs    [2]*cl.MemObject

	rows, cols int
	deviceName string
	verify     bool

	checkPrev []float32
	checkCurr []float32
}

// New compiles the stencil kernel for the first GPU device found, falling
// back to a CPU device, and allocates buffers for a rows x cols grid.
func New(rows, cols int, opts ...Option) (*Solver, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	device, err := pickDevice(cfg.preferCPU)
	if err != nil {
		return nil, err
	}

	s := &Solver{rows: rows, cols: cols, deviceName: device.Name(), verify: cfg.verify}
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{kernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.kernel, err = s.program.CreateKernel("wave_step"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	byteSize := rows * cols * int(unsafe.Sizeof(float32(0)))
	for i := range s.bufs {
		if s.bufs[i], err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
			s.Close()
			return nil, fmt.Errorf("allocating height buffer %d: %w", i, err)
		}
	}
	if err := s.kernel.SetArgs(int32(rows), int32(cols), float32(0), float32(0), float32(0), s.bufs[0], s.bufs[1]); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	return s, nil
}

// pickDevice returns the first GPU device, or the first CPU device when no
// GPU exists or preferCPU is set.
func pickDevice(preferCPU bool) (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	kinds := []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU}
	if preferCPU {
		kinds = kinds[1:]
	}
	for _, kind := range kinds {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// Step implements wave.Stepper.
func (s *Solver) Step(prev, curr []float32, rows, cols int, k wave.Coefficients, steps int) error {
	if rows != s.rows || cols != s.cols {
		return fmt.Errorf("solver sized %dx%d, got %dx%d grid", s.rows, s.cols, rows, cols)
	}
	size := rows * cols
	if len(prev) != size || len(curr) != size {
		return fmt.Errorf("unexpected height buffer size")
	}
	if steps <= 0 {
		return nil
	}
	if s.verify {
		s.checkPrev = append(s.checkPrev[:0], prev...)
		s.checkCurr = append(s.checkCurr[:0], curr...)
	}

	if _, err := s.queue.EnqueueWriteBufferFloat32(s.bufs[0], false, 0, prev, nil); err != nil {
		return fmt.Errorf("writing previous buffer: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.bufs[1], false, 0, curr, nil); err != nil {
		return fmt.Errorf("writing current buffer: %w", err)
	}
	for i, v := range []float32{k.K1, k.K2, k.K3} {
		if err := s.kernel.SetArgFloat32(2+i, v); err != nil {
			return fmt.Errorf("setting coefficient k%d: %w", i+1, err)
		}
	}

	global := []int{size}
	p, c := 0, 1
	for step := 0; step < steps; step++ {
		if err := s.kernel.SetArgBuffer(5, s.bufs[p]); err != nil {
			return fmt.Errorf("binding previous buffer: %w", err)
		}
		if err := s.kernel.SetArgBuffer(6, s.bufs[c]); err != nil {
			return fmt.Errorf("binding current buffer: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing kernel: %w", err)
		}
		p, c = c, p
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.bufs[p], true, 0, prev, nil); err != nil {
		return fmt.Errorf("reading previous buffer: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.bufs[c], true, 0, curr, nil); err != nil {
		return fmt.Errorf("reading current buffer: %w", err)
	}
	if s.verify {
		return s.check(prev, curr, k, steps)
	}
	return nil
}

// check replays the run on the CPU and compares it with the device output.
func (s *Solver) check(prev, curr []float32, k wave.Coefficients, steps int) error {
	a, b := s.checkPrev, s.checkCurr
	for i := 0; i < steps; i++ {
		wave.Stencil(a, b, s.rows, s.cols, k)
		a, b = b, a
	}
	for i := range prev {
		if d := math.Abs(float64(a[i] - prev[i])); d > verifyTolerance {
			return fmt.Errorf("previous height %d: device=%f host=%f: %w", i, prev[i], a[i], ErrMismatch)
		}
		if d := math.Abs(float64(b[i] - curr[i])); d > verifyTolerance {
			return fmt.Errorf("current height %d: device=%f host=%f: %w", i, curr[i], b[i], ErrMismatch)
		}
	}
	return nil
}

// Close releases every device object. It is safe to call more than once.
func (s *Solver) Close() {
	for i, b := range s.bufs {
		if b != nil {
			b.Release()
			s.bufs[i] = nil
		}
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

// DeviceName returns the name of the selected device.
func (s *Solver) DeviceName() string { return s.deviceName }
