// Command wavesnap runs the wave simulator headless with seeded rain and
// writes top-down shaded snapshots of the surface as PNG files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"wavegrid/internal/policy"
	"wavegrid/internal/rowpool"
	"wavegrid/internal/shade"
	"wavegrid/internal/wave"
)

const (
	frameDelta   = 1.0 / 60
	paletteRange = 0.5
	rainMinMag   = 0.35
	rainMaxMag   = 1.1
	rainMargin   = 3
)

var (
	rowsFlag     = flag.Int("rows", 128, "grid rows (>= 4)")
	colsFlag     = flag.Int("cols", 128, "grid columns (>= 4)")
	dxFlag       = flag.Float64("dx", 0.25, "spacing between neighboring vertices")
	dtFlag       = flag.Float64("dt", 1.0/120, "fixed simulation step in seconds")
	speedFlag    = flag.Float64("speed", 3, "wave propagation speed")
	dampingFlag  = flag.Float64("damping", 0.35, "viscous damping in [0, 1)")
	seedFlag     = flag.Int64("seed", 1, "seed for the disturbance generator")
	rainFlag     = flag.Float64("rain", 0.3, "seconds between random drops (0 disables)")
	durationFlag = flag.Float64("duration", 4, "simulated seconds before the first snapshot")
	framesFlag   = flag.Int("frames", 1, "number of snapshots")
	everyFlag    = flag.Float64("every", 0.5, "simulated seconds between snapshots")
	cellFlag     = flag.Int("cell", 4, "pixels per grid cell")
	workersFlag  = flag.Int("workers", 0, "CPU stencil goroutines (0 steps on the main goroutine)")
	outFlag      = flag.String("out", "wave.png", "output path; with -frames > 1 it must contain a %d verb")
	logLevelFlag = flag.String("log-level", "info", "log level: debug, info, warn or error")
)

func main() {
	flag.Parse()
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*logLevelFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevelFlag, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	wave.SetLogger(logger.With("component", "wave"))

	if err := run(logger); err != nil {
		logger.Error("wavesnap failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if *framesFlag < 1 {
		return fmt.Errorf("-frames must be at least 1, got %d", *framesFlag)
	}
	if *framesFlag > 1 && !strings.Contains(*outFlag, "%") {
		return fmt.Errorf("-out %q needs a %%d verb for %d frames", *outFlag, *framesFlag)
	}
	var opts []wave.Option
	if *workersFlag > 0 {
		pool := rowpool.New(*workersFlag)
		defer pool.Close()
		opts = append(opts, wave.WithStepper(pool))
	}
	sim, err := wave.New(*rowsFlag, *colsFlag, *dxFlag, *dtFlag, *speedFlag, *dampingFlag, opts...)
	if err != nil {
		return err
	}
	palette, err := shade.NewPalette(paletteRange)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(*seedFlag))
	rain := &policy.Rain{
		Interval:     *rainFlag,
		MinMagnitude: rainMinMag,
		MaxMagnitude: rainMaxMag,
		Margin:       rainMargin,
	}
	light := wave.Normalize(wave.Vec3{X: -0.4, Y: 1, Z: 0.3})

	wait := *durationFlag
	for frame := 0; frame < *framesFlag; frame++ {
		if err := simulate(sim, rain, rng, wait); err != nil {
			return err
		}
		wait = *everyFlag

		path := *outFlag
		if *framesFlag > 1 {
			path = fmt.Sprintf(*outFlag, frame)
		}
		if err := snapshot(path, sim, palette, light, *cellFlag); err != nil {
			return err
		}
		logger.Info("wrote snapshot", "path", path, "steps", sim.Steps(), "simTime", sim.SimulationTime())
	}
	return nil
}

// simulate advances sim by seconds of real time in display-sized slices,
// letting rain fall between them.
func simulate(sim *wave.Simulator, rain *policy.Rain, rng *rand.Rand, seconds float64) error {
	for seconds > 0 {
		dt := min(frameDelta, seconds)
		seconds -= dt
		if _, err := rain.Tick(dt, rng, sim); err != nil {
			return fmt.Errorf("raining: %w", err)
		}
		if err := sim.Update(dt); err != nil {
			return fmt.Errorf("updating simulation: %w", err)
		}
	}
	return nil
}
