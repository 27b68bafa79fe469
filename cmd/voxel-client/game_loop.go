package main

import (
	"log/slog"
	"time"

	"voxel-client/internal/game"
	"voxel-client/internal/input"
	"voxel-client/internal/profiling"
	"voxel-client/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// placeBlock is what the place action puts down.
const placeBlock = world.BlockTypeStone

func runGameLoop(window *glfw.Window, g *Game, core *Core, log *slog.Logger) {
	w := core.World
	p := g.Player
	im := g.Input
	paused := false
	showProfiling := false

	limiter := game.NewFPSLimiter(g.FPSLimit)
	frames := 0
	lastFPSCheckTime := time.Now()
	lastTime := time.Now()

	for !window.ShouldClose() {
		profiling.ResetFrame()
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

		if im.JustPressed(input.ActionPause) {
			paused = !paused
			if paused {
				window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			} else {
				window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
				im.ResetCursor()
			}
		}
		if im.JustPressed(input.ActionToggleProfiling) {
			showProfiling = !showProfiling
		}

		var highlight *[3]int
		if !paused {
			p.Look(im.LookDelta())
			if im.JustPressed(input.ActionToggleFlight) {
				p.ToggleFlight()
			}
			p.Update(dt, im.Movement(), w)

			target := p.Target(w)
			if target.Hit {
				hit := target.HitPosition
				highlight = &hit
				handleEdits(w, g, target.HitPosition, target.AdjacentPosition, log)
			}
		}

		remesh(core)

		g.Renderer.Render(w, p.ViewMatrix(), highlight, dt)
		core.Pipeline.FrameDone(g.Blocks.Stats().Drawn, time.Since(frameStart))

		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()
		im.PostUpdate()
		limiter.Wait(paused)
		frames++

		if time.Since(lastFPSCheckTime) >= time.Second {
			stats := g.Blocks.Stats()
			log.Debug("frame stats",
				"fps", frames,
				"drawn", stats.Drawn,
				"culled", stats.Culled,
				"mesh_queue", core.Pool.QueueLength())
			if showProfiling {
				log.Info("profile", "top", profiling.TopN(8))
			}
			frames = 0
			lastFPSCheckTime = time.Now()
		}
	}
}

// handleEdits applies the break and place actions to the targeted block.
func handleEdits(w *world.World, g *Game, hit, adjacent [3]int, log *slog.Logger) {
	im := g.Input
	if im.JustPressed(input.ActionBreak) {
		if w.SetBlock(hit[0], hit[1], hit[2], world.BlockTypeAir) {
			log.Debug("block broken", "x", hit[0], "y", hit[1], "z", hit[2])
		}
	}
	if im.JustPressed(input.ActionPlace) {
		x, y, z := adjacent[0], adjacent[1], adjacent[2]
		if g.Player.Intersects(x, y, z) || !w.IsAir(x, y, z) {
			return
		}
		if w.SetBlock(x, y, z, placeBlock) {
			log.Debug("block placed", "x", x, "y", y, "z", z)
		}
	}
}

// remesh hands dirty chunks to the worker pool and applies finished meshes.
func remesh(core *Core) {
	defer profiling.Track("world.remesh")()
	w := core.World
	for _, req := range w.MeshRequests() {
		if !core.Pool.Submit(req) {
			w.ReleaseMesh(req.Pos)
		}
	}
	core.Pool.Drain(func(r world.MeshResult) {
		if !w.ApplyMesh(r) {
			core.Pipeline.MeshDiscarded()
		}
	})
	core.Pipeline.SetMeshQueue(core.Pool.QueueLength())
}
