package physics

import (
	"math"
	"testing"
)

func TestGravityIgnoresPosition(t *testing.T) {
	f := Gravity(0, 98)
	for _, pos := range []Vec2{{}, V(100, -50), V(1e6, 1e6)} {
		if got := f.At(pos); !vecAlmostEqual(got, V(0, 98)) {
			t.Errorf("Gravity.At(%v) = %v, want (0,98)", pos, got)
		}
	}
}

func TestWind(t *testing.T) {
	// Without turbulence: normalized direction times strength.
	f := Wind(V(10, 0), 5, 0)
	if got := f.At(V(123, 456)); !vecAlmostEqual(got, V(5, 0)) {
		t.Errorf("Wind.At = %v, want (5,0)", got)
	}

	// Zero direction normalizes to zero; only turbulence remains.
	f = Wind(V(0, 0), 5, 2)
	pos := V(30, 40)
	want := V(
		float32(math.Sin(float64(pos.X*0.1)))*2,
		float32(math.Cos(float64(pos.Y*0.1)))*2,
	)
	if got := f.At(pos); !vecAlmostEqual(got, want) {
		t.Errorf("Wind.At = %v, want %v", got, want)
	}
}

func TestWindTurbulenceVariesWithPosition(t *testing.T) {
	f := Wind(V(1, 0), 1, 3)
	a := f.At(V(0, 0))
	b := f.At(V(7, 11))
	if vecAlmostEqual(a, b) {
		t.Errorf("turbulent wind constant across positions: %v", a)
	}
}

func TestAttractor(t *testing.T) {
	anchor := V(100, 100)
	f := Attractor(anchor, 50, 20)

	tests := []struct {
		name string
		pos  Vec2
	}{
		{"inside pulls toward anchor", V(110, 100)},
		{"diagonal inside", V(95, 95)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.At(tt.pos)
			toward := anchor.Sub(tt.pos)
			if got.Dot(toward) <= 0 {
				t.Errorf("force %v does not point toward anchor from %v", got, tt.pos)
			}
			distSq := toward.LengthSq()
			wantMag := 50 / (distSq + 1)
			if !almostEqual(got.Length(), wantMag) {
				t.Errorf("magnitude = %v, want %v", got.Length(), wantMag)
			}
		})
	}

	if got := f.At(V(200, 200)); got != (Vec2{}) {
		t.Errorf("outside radius = %v, want zero", got)
	}
	if got := f.At(anchor); got != (Vec2{}) {
		t.Errorf("at anchor = %v, want zero", got)
	}
}

func TestRepulsorPushesAway(t *testing.T) {
	anchor := V(0, 0)
	f := Repulsor(anchor, 10, 50)
	pos := V(3, 4)

	got := f.At(pos)
	away := pos.Sub(anchor)
	if got.Dot(away) <= 0 {
		t.Errorf("repulsor force %v does not point away from anchor", got)
	}
	wantMag := float32(10.0 / (25.0 + 1.0))
	if !almostEqual(got.Length(), wantMag) {
		t.Errorf("magnitude = %v, want %v", got.Length(), wantMag)
	}
}

func TestPointForceBoundaryIsZero(t *testing.T) {
	// Exactly on the radius counts as outside.
	f := Attractor(V(0, 0), 100, 10)
	if got := f.At(V(10, 0)); got != (Vec2{}) {
		t.Errorf("on-radius force = %v, want zero", got)
	}
}
