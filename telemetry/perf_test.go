package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorWindow(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(PhaseIntegrate)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseEmit)
		p.EndTick()
	}

	stats := p.Stats()
	if stats.AvgTickDuration < time.Millisecond {
		t.Errorf("avg tick %v, expected at least the integrate sleep", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseIntegrate] < time.Millisecond {
		t.Errorf("integrate avg %v too small", stats.PhaseAvg[PhaseIntegrate])
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfStatsEmpty(t *testing.T) {
	p := NewPerfCollector(8)
	stats := p.Stats()
	if stats.AvgTickDuration != 0 {
		t.Errorf("empty collector avg = %v", stats.AvgTickDuration)
	}
}

func TestPerfToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		MinTickDuration: time.Millisecond,
		MaxTickDuration: 4 * time.Millisecond,
		PhaseAvg: map[string]time.Duration{
			PhaseIntegrate: time.Millisecond,
		},
	}

	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUs != 2000 || row.IntegrateUs != 1000 {
		t.Errorf("row = %+v", row)
	}
	if row.IntegratePct != 50 {
		t.Errorf("integrate pct = %v, want 50", row.IntegratePct)
	}
}
