// Package main is the interactive terrain viewer: the same world as the
// offline preview, rendered through the GL material with an orbiting camera.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrapaint/internal/app"
	"github.com/Faultbox/terrapaint/internal/config"
	"github.com/Faultbox/terrapaint/internal/engine/renderer"
	"github.com/Faultbox/terrapaint/internal/engine/scene"
	"github.com/Faultbox/terrapaint/internal/engine/shading"
	"github.com/Faultbox/terrapaint/internal/engine/window"
	"github.com/Faultbox/terrapaint/internal/logger"
)

// orbitSpeed is the camera angular velocity in radians per second.
const orbitSpeed = 0.25

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== TerraPaint viewer ===")

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	world, err := app.Load(cfg)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      "TerraPaint",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	rend, err := renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer rend.Close()

	tr, err := scene.NewTerrainRenderer()
	if err != nil {
		return err
	}
	defer tr.Destroy()

	if err := tr.LoadTerrain(world.Map, world.Material, world.Bindings); err != nil {
		return err
	}
	tr.Debug = shading.DebugMode(cfg.Preview.DebugMode)
	tr.DebugLayer = cfg.Preview.DebugLayer

	sun := scene.DefaultSun()
	cam := newOrbitCamera(tr.MinBounds, tr.MaxBounds)

	last := sdl.GetTicks64()
	for {
		if quit := pollEvents(rend); quit {
			return nil
		}

		now := sdl.GetTicks64()
		dt := float32(now-last) / 1000.0
		last = now
		cam.advance(dt)

		rend.Begin()
		tr.Render(cam.viewProj(rend.AspectRatio()), sun)
		rend.End()
		win.SwapBuffers()
	}
}

// pollEvents drains the SDL event queue. Returns true on quit.
func pollEvents(rend *renderer.Renderer) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				rend.Resize(int(e.Data1), int(e.Data2))
			}
		}
	}
	return false
}

// orbitCamera circles the terrain bounds at a fixed elevation angle.
type orbitCamera struct {
	center   mgl32.Vec3
	distance float32
	angle    float32
}

func newOrbitCamera(min, max [3]float32) *orbitCamera {
	center := mgl32.Vec3{
		(min[0] + max[0]) / 2,
		(min[1] + max[1]) / 2,
		(min[2] + max[2]) / 2,
	}
	span := mgl32.Vec3{max[0] - min[0], max[1] - min[1], max[2] - min[2]}.Len()
	if span < 1 {
		span = 1
	}
	return &orbitCamera{
		center:   center,
		distance: span * 0.9,
	}
}

func (c *orbitCamera) advance(dt float32) {
	c.angle += orbitSpeed * dt
	if c.angle > 2*math.Pi {
		c.angle -= 2 * math.Pi
	}
}

func (c *orbitCamera) viewProj(aspect float32) mgl32.Mat4 {
	eye := c.center.Add(mgl32.Vec3{
		c.distance * float32(math.Cos(float64(c.angle))),
		c.distance * 0.7,
		c.distance * float32(math.Sin(float64(c.angle))),
	})
	view := mgl32.LookAtV(eye, c.center, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(50), aspect, 0.1, c.distance*10)
	return proj.Mul4(view)
}
