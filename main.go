package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumafield/motes/bridge"
	"github.com/lumafield/motes/config"
	"github.com/lumafield/motes/game"
	"github.com/lumafield/motes/renderer"
	"github.com/lumafield/motes/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited; headless only)")
	listen := flag.String("listen", "", "Bridge websocket address (overrides config; empty = config value)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	// Optional websocket bridge for tracking clients
	bridgeAddr := cfg.Bridge.Listen
	if *listen != "" {
		bridgeAddr = *listen
	}
	if bridgeAddr != "" {
		server := bridge.NewServer(64)
		opts.Commands = server.Commands()
		opts.CountSink = server.SetParticleCount
		go func() {
			if err := server.ListenAndServe(bridgeAddr); err != nil {
				slog.Error("bridge server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	app, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Default emitter at screen center
	app.AddEmitterAt(cfg.Derived.ScreenW32/2, cfg.Derived.ScreenH32/2)

	slog.Info("starting",
		"seed", rngSeed,
		"headless", *headless,
		"max_particles", cfg.Particles.MaxParticles,
		"bridge", bridgeAddr,
	)

	if *headless {
		runHeadless(app, cfg, *maxTicks)
		return
	}
	runWindowed(app, cfg)
}

// runHeadless drives fixed ticks at the configured rate, as fast as the
// host allows.
func runHeadless(app *game.App, cfg *config.Config, maxTicks int) {
	dt := float32(1.0) / float32(cfg.Screen.TargetFPS)
	for maxTicks == 0 || int(app.Tick()) < maxTicks {
		app.Step(dt)
	}
	slog.Info("done", "ticks", app.Tick(), "particles", app.Count())
}

// runWindowed drives the simulation from the render clock.
func runWindowed(app *game.App, cfg *config.Config) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "motes")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	particleRenderer := renderer.NewParticleRenderer(float32(cfg.Particles.Lifetime))
	outlineRenderer := renderer.NewOutlineRenderer()
	hud := ui.NewHUD(float32(cfg.Emitter.Rate), float32(cfg.Particles.GravityY))

	for !rl.WindowShouldClose() {
		app.Update(rl.GetTime())

		if rl.IsKeyPressed(rl.KeyH) {
			hud.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyB) {
			outlineRenderer.ShowBounds = !outlineRenderer.ShowBounds
		}
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			pos := rl.GetMousePosition()
			app.AddEmitterAt(pos.X, pos.Y)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 10, G: 12, B: 18, A: 255})

		particleRenderer.Draw(app.System().Particles(), app.Highlighted)
		outlineRenderer.Draw(app.Outline())
		hud.Draw(app, int32(rl.GetFPS()))

		rl.EndDrawing()
	}
}
