package main

import "flag"

// Command-line flags for grid shape, physics, disturbance policy and the
// optional subsystems.
var (
	rowsFlag    = flag.Int("rows", defaultRows, "grid rows (>= 4)")
	colsFlag    = flag.Int("cols", defaultCols, "grid columns (>= 4)")
	dxFlag      = flag.Float64("dx", defaultSpatialStep, "spacing between neighboring vertices")
	dtFlag      = flag.Float64("dt", defaultTimeStep, "fixed simulation step in seconds")
	speedFlag   = flag.Float64("speed", defaultWaveSpeed, "wave propagation speed")
	dampingFlag = flag.Float64("damping", defaultDamping, "viscous damping in [0, 1)")

	// maxStepsFlag bounds the discrete steps taken per frame.
	maxStepsFlag = flag.Int("max-steps", 8, "maximum simulation steps per frame")

	// stabilityCheckFlag rejects parameter sets beyond the stability bound.
	stabilityCheckFlag = flag.Bool("stability-check", false, "refuse unstable speed/step combinations")

	seedFlag         = flag.Int64("seed", 1, "seed for the disturbance generator")
	rainIntervalFlag = flag.Float64("rain", defaultRainInterval, "seconds between random drops (0 disables)")

	// openclFlag moves stepping onto an OpenCL device when built with -tags opencl.
	openclFlag       = flag.Bool("opencl", false, "step the simulation on an OpenCL device")
	verifyOpenCLFlag = flag.Bool("verify-opencl", false, "compare every OpenCL batch against the CPU stencil")
	openclCPUFlag    = flag.Bool("opencl-cpu", false, "use an OpenCL CPU device even when a GPU is present")

	// workersFlag splits the CPU stencil across goroutines when set.
	workersFlag = flag.Int("workers", 0, "CPU stencil goroutines (0 steps on the game thread)")

	splashRadiusFlag = flag.Int("splash-radius", 1, "radius in cells of a mouse splash")

	// enableAudioFlag plays the center cell height as a sound wave.
	enableAudioFlag = flag.Bool("audio", false, "play the center height as audio")

	serveFlag = flag.String("serve", "", "address to stream frames over websocket, e.g. :8080")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
	logLevelFlag   = flag.String("log-level", "info", "log level: debug, info, warn or error")
)
