package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	"voxel-client/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	// closer runs bound cleanups on SIGINT/SIGTERM as well as on Close.
	defer closer.Close()

	core, err := setupCore(cfg, log)
	if err != nil {
		log.Error("setup world", "err", err)
		closer.Exit(1)
	}
	closer.Bind(core.Shutdown)

	if err := glfw.Init(); err != nil {
		log.Error("init glfw", "err", err)
		closer.Exit(1)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		log.Error("create window", "err", err)
		closer.Exit(1)
	}

	game, err := setupGame(window, cfg, core)
	if err != nil {
		log.Error("setup renderer", "err", err)
		closer.Exit(1)
	}
	defer game.Renderer.Dispose()

	runGameLoop(window, game, core, log)
}
