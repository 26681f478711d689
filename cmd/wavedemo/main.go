package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/hajimehoshi/ebiten/v2"

	"wavegrid/internal/stream"
	"wavegrid/internal/wave"
)

func main() {
	flag.Parse()
	logger, err := newLogger(*logLevelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)
	wave.SetLogger(logger.With("component", "wave"))

	if err := run(logger); err != nil {
		logger.Error("wavedemo failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func run(logger *slog.Logger) error {
	if *cpuProfileFlag == "" {
		return play(logger)
	}
	logger.Info("CPU profiling enabled", "path", *cpuProfileFlag)
	return withCPUProfile(*cpuProfileFlag, func() error { return play(logger) })
}

// withCPUProfile runs fn while writing a CPU profile to path. The profile
// is flushed even when fn fails; fn's error takes precedence.
func withCPUProfile(path string, fn func() error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing CPU profile: %w", cerr)
		}
	}()
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("starting CPU profile: %w", err)
	}
	defer pprof.StopCPUProfile()
	return fn()
}

// play opens the window and runs the demo until it is closed.
func play(logger *slog.Logger) error {
	var hub *stream.Hub
	if *serveFlag != "" {
		hub = stream.NewHub(logger.With("component", "stream"))
		srv, err := startServer(*serveFlag, hub, logger)
		if err != nil {
			return fmt.Errorf("starting frame server: %w", err)
		}
		defer stopServer(srv, hub, logger)
	}

	g, err := newGame(logger, hub)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Wave Grid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(defaultTPS)
	return ebiten.RunGame(g)
}
