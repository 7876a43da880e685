// Package telemetry aggregates per-window simulation statistics and
// tick timing, and writes them as CSV for offline analysis.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/lumafield/motes/sim"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	ParticleCount int `csv:"particles"`
	EmitterCount  int `csv:"emitters"`

	// Events during window
	Spawned int `csv:"spawned"`
	Culled  int `csv:"culled"`
	Dropped int `csv:"dropped"` // spawns discarded at capacity

	// Kinematics sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	LifeMean  float64 `csv:"life_mean"`
	LifeP10   float64 `csv:"life_p10"`

	// Outline interaction
	Highlighted int `csv:"highlighted"`
}

// Collector accumulates events across ticks and snapshots a WindowStats
// record at each window boundary.
type Collector struct {
	windowTicks int32
	startTick   int32

	spawned int
	culled  int
	dropped int

	speeds []float64
	lives  []float64
}

// NewCollector creates a collector closing a window every windowTicks
// ticks (minimum 1).
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		speeds:      make([]float64, 0, 1024),
		lives:       make([]float64, 0, 1024),
	}
}

// RecordSpawned adds newly emitted particles to the window tally.
func (c *Collector) RecordSpawned(n int) { c.spawned += n }

// RecordCulled adds pruned particles to the window tally.
func (c *Collector) RecordCulled(n int) { c.culled += n }

// RecordDropped adds capacity-discarded spawns to the window tally.
func (c *Collector) RecordDropped(n int) { c.dropped += n }

// WindowClosed reports whether tick ends the current window.
func (c *Collector) WindowClosed(tick int32) bool {
	return tick-c.startTick >= c.windowTicks
}

// CloseWindow computes the stats for the finished window and resets the
// event tallies. particles and highlighted are sampled at window end.
func (c *Collector) CloseWindow(tick int32, simTime float64, particles []sim.Particle, emitters, highlighted int) WindowStats {
	c.speeds = c.speeds[:0]
	c.lives = c.lives[:0]
	for i := range particles {
		c.speeds = append(c.speeds, float64(particles[i].Vel.Length()))
		c.lives = append(c.lives, float64(particles[i].Life))
	}

	ws := WindowStats{
		WindowStartTick: c.startTick,
		WindowEndTick:   tick,
		SimTimeSec:      simTime,
		ParticleCount:   len(particles),
		EmitterCount:    emitters,
		Spawned:         c.spawned,
		Culled:          c.culled,
		Dropped:         c.dropped,
		Highlighted:     highlighted,
	}

	if len(c.speeds) > 0 {
		ws.SpeedMean = stat.Mean(c.speeds, nil)
		sort.Float64s(c.speeds)
		ws.SpeedP50 = stat.Quantile(0.5, stat.Empirical, c.speeds, nil)
		ws.SpeedP90 = stat.Quantile(0.9, stat.Empirical, c.speeds, nil)

		ws.LifeMean = stat.Mean(c.lives, nil)
		sort.Float64s(c.lives)
		ws.LifeP10 = stat.Quantile(0.1, stat.Empirical, c.lives, nil)
	}

	c.startTick = tick
	c.spawned = 0
	c.culled = 0
	c.dropped = 0

	return ws
}
