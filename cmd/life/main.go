//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"lifegl/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

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

	game, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowTitle("lifegl")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "err", err)
		game.Close()
		os.Exit(1)
	}
}
