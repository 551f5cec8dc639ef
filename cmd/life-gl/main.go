//go:build glfw

package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	"lifegl/internal/app"
)

// GLFW and the GL context must stay on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(2)
	}
	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		slog.Error("invalid logging configuration", "err", err)
		os.Exit(2)
	}

	if err := app.RunGL(cfg, logger); err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}
}
