package main

import (
	"fmt"
	"log/slog"

	"voxel-client/internal/config"
	"voxel-client/internal/graphics/renderables/blocks"
	"voxel-client/internal/graphics/renderables/crosshair"
	"voxel-client/internal/graphics/renderables/wireframe"
	"voxel-client/internal/graphics/teximage"
	renderer "voxel-client/internal/graphics/renderer"
	"voxel-client/internal/input"
	"voxel-client/internal/meshing"
	"voxel-client/internal/metrics"
	"voxel-client/internal/player"
	"voxel-client/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// spawnColumn is the interior column of the origin chunk the player drops into.
const spawnColumn = 8

// Core holds everything that does not need a GL context.
type Core struct {
	World    *world.World
	Pool     *meshing.WorkerPool
	Pipeline *metrics.Pipeline
	Server   *metrics.Server
}

// Shutdown stops the mesh workers and the metrics listener.
func (c *Core) Shutdown() {
	c.Pool.Shutdown()
	if c.Server != nil {
		_ = c.Server.Close()
	}
}

func setupCore(cfg config.Config, log *slog.Logger) (*Core, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipe, err := metrics.NewPipeline(reg)
	if err != nil {
		return nil, err
	}

	field, err := world.NewHeightField(cfg.NoiseSettings())
	if err != nil {
		return nil, fmt.Errorf("height field: %w", err)
	}
	w, err := world.Build(field, meshing.Greedy{}, cfg.WorldOptions(log, pipe))
	if err != nil {
		return nil, err
	}

	core := &Core{
		World:    w,
		Pool:     meshing.NewWorkerPool(cfg.Workers, w.Len(), meshing.Greedy{}),
		Pipeline: pipe,
	}
	if cfg.Metrics.Addr != "" {
		core.Server, err = metrics.Listen(cfg.Metrics.Addr, reg, log)
		if err != nil {
			core.Pool.Shutdown()
			return nil, err
		}
	}
	return core, nil
}

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// Game holds the components that live on the GL thread.
type Game struct {
	Renderer *renderer.Renderer
	Blocks   *blocks.Blocks
	Input    *input.InputManager
	Player   *player.Player
	FPSLimit int
}

func setupGame(window *glfw.Window, cfg config.Config, core *Core) (*Game, error) {
	tex, err := teximage.LoadOrProcedural(cfg.Texture, teximage.DefaultSize)
	if err != nil {
		slog.Warn("texture unavailable, using procedural tile", "path", cfg.Texture, "err", err)
	}

	blocksRenderer := blocks.NewBlocks(tex)
	fbw, fbh := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(fbw, fbh,
		blocksRenderer,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
	)
	if err != nil {
		return nil, err
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	im := input.NewInputManager()
	im.Attach(window)

	origin := core.World.Origin()
	x0, y0, z0 := origin.WorldOrigin()
	top := y0 + core.World.Extent().Y*world.ChunkSize

	p := player.New(mgl32.Vec3{})
	p.FloorY = y0
	sx, sz := float32(x0+spawnColumn)+0.5, float32(z0+spawnColumn)+0.5
	// Prefer the chunk at lattice x=0,z=0 when the lattice contains it.
	if _, ok := core.World.Chunk(world.LatticePos{Y: origin.Y}); ok {
		sx, sz = spawnColumn+0.5, spawnColumn+0.5
	}
	if !p.Spawn(sx, sz, float32(top), core.World) {
		p.IsFlying = true
	}

	return &Game{
		Renderer: r,
		Blocks:   blocksRenderer,
		Input:    im,
		Player:   p,
		FPSLimit: fpsLimit(cfg.Window),
	}, nil
}

// fpsLimit disables the software cap when vsync already paces frames.
func fpsLimit(wc config.WindowConfig) int {
	if wc.VSync {
		return 0
	}
	return wc.FPSLimit
}
