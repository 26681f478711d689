package wave

import (
	"fmt"
	"math"
)

// Coefficients are the explicit update weights applied to the previous
// height, the current height and the sum of the four neighbor heights.
type Coefficients struct {
	K1, K2, K3 float32
}

// Simulator owns the height field of a damped-wave surface and the derived
// per-vertex normals and tangents.
type Simulator struct {
	rows          int
	cols          int
	vertexCount   int
	triangleCount int

	spatialStep float64
	timeStep    float64
	speed       float64
	damping     float64
	k           Coefficients

	field    heightField
	normals  []Vec3
	tangentX []Vec3

	accumulator  float64
	steps        uint64
	maxSteps     int
	normalsDirty bool

	stepper     Stepper
	scratchPrev []float32
	scratchCurr []float32
}

// New builds a rows x cols simulator at rest.
//
// spatialStep is the distance between adjacent grid points, simulationStep
// the fixed integration step in seconds, waveSpeed the propagation speed and
// damping the velocity damping coefficient in [0, 1). The explicit scheme is
// only stable while waveSpeed < spatialStep/(2*simulationStep) *
// sqrt(damping*simulationStep+2); New checks that bound only when
// WithStabilityCheck is given.
func New(rows, cols int, spatialStep, simulationStep, waveSpeed, damping float64, opts ...Option) (*Simulator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case rows < 4 || cols < 4:
		return nil, fmt.Errorf("grid %dx%d smaller than 4x4: %w", rows, cols, ErrInvalidParameter)
	case !positiveFinite(spatialStep):
		return nil, fmt.Errorf("spatial step %v: %w", spatialStep, ErrInvalidParameter)
	case !positiveFinite(simulationStep):
		return nil, fmt.Errorf("simulation step %v: %w", simulationStep, ErrInvalidParameter)
	case !positiveFinite(waveSpeed):
		return nil, fmt.Errorf("wave speed %v: %w", waveSpeed, ErrInvalidParameter)
	case !(damping >= 0 && damping < 1):
		return nil, fmt.Errorf("damping %v outside [0, 1): %w", damping, ErrInvalidParameter)
	case o.maxSteps < 1:
		return nil, fmt.Errorf("max steps per update %d: %w", o.maxSteps, ErrInvalidParameter)
	}

	s := &Simulator{
		rows:          rows,
		cols:          cols,
		vertexCount:   rows * cols,
		triangleCount: (rows - 1) * (cols - 1) * 2,
		spatialStep:   spatialStep,
		timeStep:      simulationStep,
		speed:         waveSpeed,
		damping:       damping,
		k:             coefficients(spatialStep, simulationStep, waveSpeed, damping),
		field:         newHeightField(rows, cols, float32(spatialStep)),
		normals:       make([]Vec3, rows*cols),
		tangentX:      make([]Vec3, rows*cols),
		maxSteps:      o.maxSteps,
		stepper:       o.stepper,
	}
	if o.stabilityCheck && !s.Stable() {
		return nil, fmt.Errorf("wave speed %v exceeds stability limit %v: %w",
			waveSpeed, s.maxStableSpeed(), ErrInvalidParameter)
	}
	for i := range s.normals {
		s.normals[i] = Vec3{Y: 1}
		s.tangentX[i] = Vec3{X: 1}
	}
	if s.stepper != nil {
		s.scratchPrev = make([]float32, s.vertexCount)
		s.scratchCurr = make([]float32, s.vertexCount)
	}

	Logger().Debug("wave: simulator created",
		"rows", rows, "cols", cols,
		"dx", spatialStep, "dt", simulationStep,
		"speed", waveSpeed, "damping", damping,
		"k1", s.k.K1, "k2", s.k.K2, "k3", s.k.K3,
		"courant", s.CourantRatio())
	return s, nil
}

// coefficients derives the stencil weights of the damped wave equation
// discretized with central differences in space and time.
func coefficients(dx, dt, speed, damping float64) Coefficients {
	d := damping*dt + 2
	e := (speed * speed) * (dt * dt) / (dx * dx)
	return Coefficients{
		K1: float32((damping*dt - 2) / d),
		K2: float32((4 - 8*e) / d),
		K3: float32((2 * e) / d),
	}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// RowCount returns the number of grid rows.
func (s *Simulator) RowCount() int { return s.rows }

// ColumnCount returns the number of grid columns.
func (s *Simulator) ColumnCount() int { return s.cols }

// VertexCount returns rows*cols.
func (s *Simulator) VertexCount() int { return s.vertexCount }

// TriangleCount returns the number of triangles of the grid mesh, two per quad.
func (s *Simulator) TriangleCount() int { return s.triangleCount }

// Width returns the extent of the lattice along x.
func (s *Simulator) Width() float32 { return float32(s.cols-1) * float32(s.spatialStep) }

// Depth returns the extent of the lattice along z.
func (s *Simulator) Depth() float32 { return float32(s.rows-1) * float32(s.spatialStep) }

// SpatialStep returns the distance between adjacent grid points.
func (s *Simulator) SpatialStep() float64 { return s.spatialStep }

// SimulationStep returns the fixed integration step.
func (s *Simulator) SimulationStep() float64 { return s.timeStep }

// Coefficients returns the precomputed stencil weights.
func (s *Simulator) Coefficients() Coefficients { return s.k }

// Steps returns the number of discrete steps completed so far.
func (s *Simulator) Steps() uint64 { return s.steps }

// SimulationTime returns the simulated time reached, Steps*SimulationStep.
func (s *Simulator) SimulationTime() float64 { return float64(s.steps) * s.timeStep }

// Accumulator returns the real time not yet consumed by a discrete step.
func (s *Simulator) Accumulator() float64 { return s.accumulator }

// CourantRatio returns (speed*dt/dx)^2.
func (s *Simulator) CourantRatio() float64 {
	c := s.speed * s.timeStep / s.spatialStep
	return c * c
}

// Stable reports whether the configuration satisfies the stability bound of
// the explicit scheme.
func (s *Simulator) Stable() bool {
	return s.speed < s.maxStableSpeed()
}

func (s *Simulator) maxStableSpeed() float64 {
	return s.spatialStep / (2 * s.timeStep) * math.Sqrt(s.damping*s.timeStep+2)
}

// Index returns the vertex index of grid point (row, col).
func (s *Simulator) Index(row, col int) int { return row*s.cols + col }

// Height returns the current height at (row, col).
func (s *Simulator) Height(row, col int) float32 {
	return s.field.curr()[row*s.cols+col].Y
}

// Position returns the current position of vertex i.
func (s *Simulator) Position(i int) Vec3 { return s.field.curr()[i] }

// Normal returns the unit surface normal at vertex i.
func (s *Simulator) Normal(i int) Vec3 { return s.normals[i] }

// TangentX returns the unit tangent along +x at vertex i.
func (s *Simulator) TangentX(i int) Vec3 { return s.tangentX[i] }

// Positions returns a view of the current positions. The slice is owned by
// the simulator, must not be modified and is only valid until the next
// Update or Disturb.
func (s *Simulator) Positions() []Vec3 { return s.field.curr() }

// Normals returns a view of the normals with the same rules as Positions.
func (s *Simulator) Normals() []Vec3 { return s.normals }

// TangentsX returns a view of the x-tangents with the same rules as
// Positions.
func (s *Simulator) TangentsX() []Vec3 { return s.tangentX }
