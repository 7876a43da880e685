package sim

import (
	"sync"

	"github.com/lumafield/motes/physics"
)

// parallelThreshold is the minimum particle count before partitioned
// integration pays for the goroutine overhead.
const parallelThreshold = 2048

// integrateParallel splits the particle slice into contiguous chunks and
// integrates them concurrently. Workers touch disjoint ranges and read
// only the shared force list, so the only synchronization is the final
// join; prune and emit run after it on the caller's goroutine.
func (s *System) integrateParallel(dt float32, forces []physics.Force) {
	n := len(s.particles)
	workers := s.config.Workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(part []Particle) {
			defer wg.Done()
			for i := range part {
				part[i].Update(dt, forces)
			}
		}(s.particles[start:end])
	}
	wg.Wait()
}
