package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"wavegrid/internal/stream"
)

// startServer exposes hub at /ws on addr and serves until shutdown.
func startServer(addr string, hub *stream.Hub, logger *slog.Logger) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("connect a websocket to /ws for binary WAVE frames\n"))
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("frame server stopped", "err", err)
		}
	}()
	logger.Info("streaming frames", "addr", ln.Addr().String(), "path", "/ws")
	return srv, nil
}

func stopServer(srv *http.Server, hub *stream.Hub, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("frame server shutdown", "err", err)
	}
}
