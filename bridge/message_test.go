package bridge

import (
	"testing"

	"github.com/lumafield/motes/physics"
)

func TestParseOutlineCommand(t *testing.T) {
	msg := []byte(`{"type":"outline","points":[10,20,30,40,50,60,70,80]}`)
	cmd, err := ParseCommand(msg)
	if err != nil {
		t.Fatalf("ParseCommand = %v", err)
	}
	if cmd.Type != TypeOutline {
		t.Errorf("type = %q", cmd.Type)
	}

	vecs := cmd.OutlineVecs()
	if len(vecs) != 4 {
		t.Fatalf("got %d points, want 4", len(vecs))
	}
	if vecs[0] != physics.V(10, 20) || vecs[3] != physics.V(70, 80) {
		t.Errorf("points = %v", vecs)
	}
}

func TestParseOutlineOddBuffer(t *testing.T) {
	if _, err := ParseCommand([]byte(`{"type":"outline","points":[1,2,3]}`)); err == nil {
		t.Error("odd point buffer should be rejected")
	}
}

func TestParseEmitterCommand(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"emitter","x":320,"y":240}`))
	if err != nil {
		t.Fatalf("ParseCommand = %v", err)
	}
	if cmd.X != 320 || cmd.Y != 240 {
		t.Errorf("position = (%v,%v)", cmd.X, cmd.Y)
	}
}

func TestParseUnknownType(t *testing.T) {
	if _, err := ParseCommand([]byte(`{"type":"selfdestruct"}`)); err == nil {
		t.Error("unknown command type should be rejected")
	}
	if _, err := ParseCommand([]byte(`not json`)); err == nil {
		t.Error("malformed JSON should be rejected")
	}
}

func TestForceSpecConversion(t *testing.T) {
	tests := []struct {
		name string
		spec ForceSpec
		kind physics.ForceKind
	}{
		{"gravity", ForceSpec{Kind: "gravity", X: 0, Y: 98}, physics.ForceGravity},
		{"wind", ForceSpec{Kind: "wind", X: 1, Y: 0, Strength: 5}, physics.ForceWind},
		{"attractor", ForceSpec{Kind: "attractor", X: 10, Y: 10, Strength: 50, Radius: 100}, physics.ForceAttractor},
		{"repulsor", ForceSpec{Kind: "repulsor", X: 10, Y: 10, Strength: 50, Radius: 100}, physics.ForceRepulsor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.spec.ToForce()
			if err != nil {
				t.Fatalf("ToForce = %v", err)
			}
			if f.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", f.Kind, tt.kind)
			}
		})
	}

	if _, err := (ForceSpec{Kind: "magnetism"}).ToForce(); err == nil {
		t.Error("unknown force kind should be rejected")
	}
}

func TestServerQueueDropsWhenFull(t *testing.T) {
	s := NewServer(1)

	s.commands <- Command{Type: TypeEmitter}
	select {
	case s.commands <- Command{Type: TypeEmitter}:
		t.Fatal("queue should be full")
	default:
	}

	// Draining frees the slot again.
	<-s.Commands()
	select {
	case s.commands <- Command{Type: TypeEmitter}:
	default:
		t.Fatal("queue should accept after drain")
	}
}
