// Package game wires the simulation core to its collaborators: it owns
// the frame clock bookkeeping, the per-frame force list, the outline
// rebuilt from tracking data, and the spatial grid used by the renderer's
// highlight pass.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/lumafield/motes/bridge"
	"github.com/lumafield/motes/collision"
	"github.com/lumafield/motes/config"
	"github.com/lumafield/motes/physics"
	"github.com/lumafield/motes/sim"
	"github.com/lumafield/motes/spatial"
	"github.com/lumafield/motes/telemetry"
)

const (
	// maxDT bounds integration error at low frame rates.
	maxDT = 0.1
	// firstFrameDT is assumed for the very first frame, when no previous
	// timestamp exists.
	firstFrameDT = 1.0 / 60.0
)

// Options configures a new App.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	// Commands is drained at each tick boundary; nil disables the bridge.
	Commands <-chan bridge.Command
	// CountSink receives the particle count after each tick (for bridge
	// status replies); nil disables publishing.
	CountSink func(int)
}

// App owns the simulation state and advances it one externally clocked
// tick at a time. All methods must be called from the loop goroutine.
type App struct {
	cfg  *config.Config
	opts Options

	system  *sim.System
	forces  []physics.Force
	outline *collision.Outline
	grid    *spatial.Grid
	rng     *rand.Rand

	// inOutline flags particles (by current index) contained in the
	// outline; rebuilt every tick after the grid.
	inOutline   []bool
	highlighted int
	queryBuf    []int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	tick     int32
	simTime  float64
	lastTime float64
}

// New creates an App from the loaded configuration.
func New(cfg *config.Config, opts Options) (*App, error) {
	simCfg := sim.Config{
		MaxParticles:     cfg.Particles.MaxParticles,
		SpawnRate:        float32(cfg.Particles.SpawnRate),
		ParticleLifetime: float32(cfg.Particles.Lifetime),
		ParticleSize:     float32(cfg.Particles.Size),
		Gravity:          physics.V(float32(cfg.Particles.GravityX), float32(cfg.Particles.GravityY)),
		DragCoefficient:  float32(cfg.Particles.DragCoefficient),
		Workers:          cfg.Particles.Workers,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	windowTicks := int32(cfg.Telemetry.StatsWindow * float64(cfg.Screen.TargetFPS))

	a := &App{
		cfg:       cfg,
		opts:      opts,
		system:    sim.NewSystem(simCfg),
		grid:      spatial.NewGrid(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.CellSize),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		collector: telemetry.NewCollector(windowTicks),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:    output,
	}

	// Default force set matches the stock configuration: gravity only.
	a.forces = []physics.Force{
		physics.Gravity(simCfg.Gravity.X, simCfg.Gravity.Y),
	}

	return a, nil
}

// Update advances the simulation using a host-supplied timestamp in
// seconds. The first frame assumes 60fps; later frames clamp dt at maxDT
// so a stalled host cannot blow up the integration.
func (a *App) Update(now float64) {
	dt := firstFrameDT
	if a.lastTime != 0 {
		dt = now - a.lastTime
		if dt > maxDT {
			dt = maxDT
		}
	}
	a.lastTime = now

	a.Step(float32(dt))
}

// Step runs one fixed tick: apply queued bridge commands, integrate the
// population, rebuild the spatial grid from the post-prune collection
// (the grid is never queried across a removal), then run the outline
// highlight pass.
func (a *App) Step(dt float32) {
	a.perf.StartTick()

	a.applyCommands()

	a.perf.StartPhase(telemetry.PhaseIntegrate)
	a.system.Update(dt, a.forces)
	a.simTime += float64(dt)

	a.perf.StartPhase(telemetry.PhaseGrid)
	a.rebuildGrid()

	a.perf.StartPhase(telemetry.PhaseHighlight)
	a.updateHighlight()

	a.perf.StartPhase(telemetry.PhaseTelemetry)
	a.tick++
	a.recordTelemetry()

	a.perf.EndTick()

	if a.opts.CountSink != nil {
		a.opts.CountSink(a.system.Count())
	}
}

// rebuildGrid refreshes the broad-phase index. Runs in the same tick as
// particle removal so stale indices are never observable.
func (a *App) rebuildGrid() {
	a.grid.Clear()
	for i, p := range a.system.Particles() {
		a.grid.Insert(i, p.Pos)
	}
}

// updateHighlight marks particles inside the outline: a broad-phase grid
// query over the outline bounds, then the exact containment test.
func (a *App) updateHighlight() {
	count := a.system.Count()
	if cap(a.inOutline) < count {
		a.inOutline = make([]bool, count)
	}
	a.inOutline = a.inOutline[:count]
	for i := range a.inOutline {
		a.inOutline[i] = false
	}
	a.highlighted = 0

	if a.outline == nil || len(a.outline.Segments) == 0 {
		return
	}

	center := a.outline.Bounds.Center()
	radius := a.outline.Bounds.Max.Sub(center).Length()

	particles := a.system.Particles()
	a.queryBuf = a.grid.QueryNearbyInto(a.queryBuf[:0], center, radius)
	for _, idx := range a.queryBuf {
		if a.outline.Contains(particles[idx].Pos) {
			a.inOutline[idx] = true
			a.highlighted++
		}
	}
}

// recordTelemetry feeds the collector and flushes window stats.
func (a *App) recordTelemetry() {
	stats := a.system.LastTick()
	a.collector.RecordSpawned(stats.Spawned)
	a.collector.RecordCulled(stats.Culled)
	a.collector.RecordDropped(stats.Dropped)

	if !a.collector.WindowClosed(a.tick) {
		return
	}

	ws := a.collector.CloseWindow(a.tick, a.simTime, a.system.Particles(),
		len(a.system.Emitters()), a.highlighted)

	if a.opts.LogStats {
		slog.Info("window",
			"tick", ws.WindowEndTick,
			"particles", ws.ParticleCount,
			"spawned", ws.Spawned,
			"culled", ws.Culled,
			"dropped", ws.Dropped,
			"speed_mean", ws.SpeedMean,
			"highlighted", ws.Highlighted,
		)
	}

	if err := a.output.WriteTelemetry(ws); err != nil {
		Logf("telemetry write failed: %v", err)
	}
	if err := a.output.WritePerf(a.perf.Stats(), a.tick); err != nil {
		Logf("perf write failed: %v", err)
	}
}

// applyCommands drains the bridge queue. Commands always take effect at
// a tick boundary, never mid-integration.
func (a *App) applyCommands() {
	if a.opts.Commands == nil {
		return
	}
	for {
		select {
		case cmd := <-a.opts.Commands:
			a.applyCommand(cmd)
		default:
			return
		}
	}
}

func (a *App) applyCommand(cmd bridge.Command) {
	switch cmd.Type {
	case bridge.TypeOutline:
		a.SetOutlinePoints(cmd.OutlineVecs())
	case bridge.TypeEmitter:
		a.AddEmitterAt(cmd.X, cmd.Y)
	case bridge.TypeForces:
		forces := make([]physics.Force, 0, len(cmd.Forces))
		for _, spec := range cmd.Forces {
			f, err := spec.ToForce()
			if err != nil {
				Logf("bridge force ignored: %v", err)
				continue
			}
			forces = append(forces, f)
		}
		a.SetForces(forces)
	case bridge.TypeRate:
		a.system.SetSpawnRate(cmd.Rate)
	}
}

// SetForces replaces the per-frame force list.
func (a *App) SetForces(forces []physics.Force) {
	a.forces = forces
}

// Forces returns the current force list.
func (a *App) Forces() []physics.Force {
	return a.forces
}

// SetOutlinePoints rebuilds the outline from tracking points. Fewer than
// the configured minimum means "no outline", not an error.
func (a *App) SetOutlinePoints(points []physics.Vec2) {
	if len(points) < a.cfg.Bridge.MinPoints {
		a.outline = nil
		return
	}
	a.outline = collision.FromPoints(points)
}

// Outline returns the current outline, or nil.
func (a *App) Outline() *collision.Outline {
	return a.outline
}

// AddEmitterAt creates an emitter at the given position with the
// configured defaults.
func (a *App) AddEmitterAt(x, y float32) {
	e := sim.NewEmitter(physics.V(x, y), a.rng)
	e.Rate = float32(a.cfg.Emitter.Rate)
	e.Spread = float32(a.cfg.Emitter.Spread)
	e.InitialVelocity = float32(a.cfg.Emitter.InitialVelocity)
	e.ParticleLife = float32(a.cfg.Emitter.Lifetime)
	e.ParticleSize = float32(a.cfg.Emitter.Size)
	a.system.AddEmitter(e)
}

// System returns the particle system.
func (a *App) System() *sim.System {
	return a.system
}

// Grid returns the broad-phase index, valid for the current tick.
func (a *App) Grid() *spatial.Grid {
	return a.grid
}

// Highlighted reports, for the current tick, whether the particle at
// index i lies inside the outline.
func (a *App) Highlighted(i int) bool {
	return i < len(a.inOutline) && a.inOutline[i]
}

// HighlightedCount returns the number of particles inside the outline.
func (a *App) HighlightedCount() int {
	return a.highlighted
}

// Count returns the current particle count.
func (a *App) Count() int {
	return a.system.Count()
}

// Tick returns the number of completed ticks.
func (a *App) Tick() int32 {
	return a.tick
}

// Close flushes telemetry output.
func (a *App) Close() {
	a.output.Close()
}
