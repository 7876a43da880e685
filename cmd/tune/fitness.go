package main

import (
	"math"
	"sync"

	"github.com/lumafield/motes/config"
	"github.com/lumafield/motes/game"
)

// FitnessEvaluator runs headless simulations and scores how closely the
// steady-state population tracks the target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	target     float64 // desired steady-state particle count

	mu         sync.Mutex
	lastSpread float64 // population spread from the most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastSpread returns the tail population spread from the most recent
// evaluation, normalized by the target.
func (fe *FitnessEvaluator) LastSpread() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSpread
}

// runResult holds the results from a single simulation run.
type runResult struct {
	tailMean   float64 // mean population over the settled tail
	tailSpread float64 // max-min population over the settled tail
	dropped    int     // spawns discarded at capacity over the whole run
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the relative miss from the target population, plus penalties
// for population oscillation and for pinning the system at its cap.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSpread float64
	for _, r := range results {
		miss := math.Abs(r.tailMean-fe.target) / fe.target
		oscillation := r.tailSpread / fe.target
		capPenalty := 0.0
		if r.dropped > 0 {
			capPenalty = 0.5
		}
		totalFitness += miss + 0.2*oscillation + capPenalty
		totalSpread += oscillation
	}

	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastSpread = totalSpread / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation runs one headless simulation with the given parameters
// and seed, sampling the population over the settled second half.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	app, err := game.New(cfg, game.Options{Seed: seed})
	if err != nil {
		return runResult{tailMean: 0}
	}
	defer app.Close()

	app.AddEmitterAt(cfg.Derived.ScreenW32/2, cfg.Derived.ScreenH32/2)

	dt := float32(1.0) / float32(cfg.Screen.TargetFPS)
	tailStart := fe.maxTicks / 2

	var sum float64
	var samples int
	minPop, maxPop := math.Inf(1), math.Inf(-1)
	dropped := 0

	for t := int32(0); t < fe.maxTicks; t++ {
		app.Step(dt)
		dropped += app.System().LastTick().Dropped

		if t < tailStart {
			continue
		}
		pop := float64(app.Count())
		sum += pop
		samples++
		minPop = math.Min(minPop, pop)
		maxPop = math.Max(maxPop, pop)
	}

	if samples == 0 {
		return runResult{}
	}
	return runResult{
		tailMean:   sum / float64(samples),
		tailSpread: maxPop - minPop,
		dropped:    dropped,
	}
}

// copyConfig returns a shallow copy of the base config safe to mutate
// per evaluation.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
