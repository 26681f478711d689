package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wavegrid/internal/clock"
	"wavegrid/internal/clwave"
	"wavegrid/internal/mesh"
	"wavegrid/internal/policy"
	"wavegrid/internal/rowpool"
	"wavegrid/internal/shade"
	"wavegrid/internal/stream"
	"wavegrid/internal/wave"
)

// Game owns the simulator and everything that feeds or presents it.
type Game struct {
	logger *slog.Logger

	sim     *wave.Simulator
	solver  *clwave.Solver
	pool    *rowpool.Stepper
	brush   []gridOffset
	timer   *clock.Timer
	rng     *rand.Rand
	rain    policy.Rain
	cam     camera
	palette *shade.Palette
	light   wave.Vec3

	ticks           uint64
	lastSimDuration time.Duration

	// render scratch, sized once for the grid
	packed      []float32
	screenVerts []screenVertex
	vertices    []ebiten.Vertex
	tris        []depthTriangle
	drawIndices []uint16

	hub      *stream.Hub
	frameBuf []float32

	audioCtx    *audio.Context
	audioStream *levelStream
	audioPlayer *audio.Player
}

// newGame builds the simulator and the optional OpenCL and audio
// subsystems. hub may be nil.
func newGame(logger *slog.Logger, hub *stream.Hub) (*Game, error) {
	rows, cols := *rowsFlag, *colsFlag
	indices, err := mesh.Indices[uint16](rows, cols)
	if err != nil {
		return nil, fmt.Errorf("building triangle indices: %w", err)
	}

	g := &Game{
		logger: logger,
		timer:  clock.New(time.Now),
		rng:    rand.New(rand.NewSource(*seedFlag)),
		rain: policy.Rain{
			Interval:     *rainIntervalFlag,
			MinMagnitude: rainMinMagnitude,
			MaxMagnitude: rainMaxMagnitude,
			Margin:       rainMargin,
		},
		light: wave.Normalize(wave.Vec3{X: lightX, Y: lightY, Z: lightZ}),
		brush: footprint(*splashRadiusFlag),
		hub:   hub,
	}

	opts := []wave.Option{wave.WithMaxStepsPerUpdate(*maxStepsFlag)}
	if *stabilityCheckFlag {
		opts = append(opts, wave.WithStabilityCheck())
	}
	if *openclFlag {
		var clOpts []clwave.Option
		if *verifyOpenCLFlag {
			clOpts = append(clOpts, clwave.WithVerify())
		}
		if *openclCPUFlag {
			clOpts = append(clOpts, clwave.WithCPUDevice())
		}
		solver, err := clwave.New(rows, cols, clOpts...)
		if err != nil {
			logger.Warn("OpenCL stepper unavailable, using CPU", "err", err)
		} else {
			logger.Info("OpenCL stepper enabled", "device", solver.DeviceName())
			g.solver = solver
			opts = append(opts, wave.WithStepper(solver))
		}
	}
	if g.solver == nil && *workersFlag > 0 {
		g.pool = rowpool.New(*workersFlag)
		logger.Info("CPU stencil workers enabled", "workers", g.pool.Workers())
		opts = append(opts, wave.WithStepper(g.pool))
	}

	g.sim, err = wave.New(rows, cols, *dxFlag, *dtFlag, *speedFlag, *dampingFlag, opts...)
	if err != nil {
		g.Close()
		return nil, err
	}
	if !g.sim.Stable() {
		logger.Warn("parameters exceed the stability bound; the surface will diverge",
			"courant", g.sim.CourantRatio())
	}
	if g.palette, err = shade.NewPalette(paletteRange); err != nil {
		g.Close()
		return nil, err
	}

	n := g.sim.VertexCount()
	g.screenVerts = make([]screenVertex, n)
	g.vertices = make([]ebiten.Vertex, n)
	g.tris = make([]depthTriangle, len(indices)/3)
	for i := range g.tris {
		g.tris[i].idx = [3]uint16{indices[3*i], indices[3*i+1], indices[3*i+2]}
	}
	g.drawIndices = make([]uint16, 0, len(indices))
	extent := g.sim.Width()
	if d := g.sim.Depth(); d > extent {
		extent = d
	}
	g.cam = newCamera(extent)

	if *enableAudioFlag {
		g.startAudio()
	}
	g.timer.Reset()
	return g, nil
}

func (g *Game) startAudio() {
	g.audioCtx = audio.NewContext(audioSampleRate)
	g.audioStream = newLevelStream(audioSampleRate / defaultTPS)
	player, err := g.audioCtx.NewPlayer(g.audioStream)
	if err != nil {
		g.logger.Warn("audio player creation failed", "err", err)
		g.audioStream = nil
		return
	}
	g.audioPlayer = player
	g.audioPlayer.SetBufferSize(audioPlayerBufferLatency)
	g.audioPlayer.Play()
}

// Update advances the simulation by the real time elapsed since the
// previous tick, feeding it rain and clicks first.
func (g *Game) Update() error {
	g.cam.handleInput(1.0 / defaultTPS)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if err := g.splash(float32(x), float32(y)); err != nil {
			return err
		}
	}

	g.timer.Tick()
	dt := g.timer.DeltaTime()
	if _, err := g.rain.Tick(dt, g.rng, g.sim); err != nil {
		return fmt.Errorf("raining: %w", err)
	}
	start := time.Now()
	if err := g.sim.Update(dt); err != nil {
		return fmt.Errorf("updating simulation: %w", err)
	}
	g.lastSimDuration = time.Since(start)
	g.ticks++

	if g.audioStream != nil {
		g.audioStream.Push(g.sim.Height(g.sim.RowCount()/2, g.sim.ColumnCount()/2) * audioGain)
	}
	if g.hub != nil && g.ticks%streamEveryTicks == 0 && g.hub.Clients() > 0 {
		frame := stream.Capture(g.sim, g.frameBuf)
		g.frameBuf = frame.Heights
		if err := g.hub.Broadcast(frame); err != nil {
			g.logger.Warn("frame broadcast failed", "err", err)
		}
	}
	return nil
}

func (g *Game) togglePause() {
	if g.timer.Stopped() {
		g.timer.Start()
	} else {
		g.timer.Stop()
	}
	g.logger.Debug("pause toggled", "paused", g.timer.Stopped(), "simTime", g.sim.SimulationTime())
}

// splash disturbs the brush around the interior vertex drawn nearest to
// the cursor, if any lies within pickRadiusPixels. Brush cells that fall on
// or beyond the border are skipped.
func (g *Game) splash(x, y float32) error {
	row, col, ok := g.pick(x, y)
	if !ok {
		return nil
	}
	for _, off := range g.brush {
		r, c := row+off.di, col+off.dj
		if err := g.sim.Disturb(r, c, splashMagnitude); err != nil && !errors.Is(err, wave.ErrOutOfRange) {
			return fmt.Errorf("splashing at %d,%d: %w", r, c, err)
		}
	}
	return nil
}

func (g *Game) pick(x, y float32) (row, col int, ok bool) {
	rows, cols := g.sim.RowCount(), g.sim.ColumnCount()
	best := float32(pickRadiusPixels * pickRadiusPixels)
	for i := 1; i < rows-1; i++ {
		for j := 1; j < cols-1; j++ {
			sv := g.screenVerts[g.sim.Index(i, j)]
			if !sv.ok {
				continue
			}
			dx, dy := sv.x-x, sv.y-y
			if d := dx*dx + dy*dy; d < best {
				best, row, col, ok = d, i, j, true
			}
		}
	}
	return row, col, ok
}

// Close releases the OpenCL device and worker pool and stops audio.
func (g *Game) Close() {
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
	if g.solver != nil {
		g.solver.Close()
	}
	if g.pool != nil {
		g.pool.Close()
	}
}
