// Package bridge exposes the websocket command surface through which an
// embedding host (typically a browser page running silhouette tracking)
// drives the simulation: outline coordinates, emitter placement and the
// per-frame force list. The bridge owns no simulation state; commands
// are queued and applied by the game loop at tick boundaries.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/lumafield/motes/physics"
)

// Command types accepted over the wire.
const (
	TypeOutline = "outline"
	TypeEmitter = "emitter"
	TypeForces  = "forces"
	TypeRate    = "rate"
)

// Command is one decoded bridge message.
type Command struct {
	Type string `json:"type"`

	// outline: flat x,y pairs in screen space
	Points []float32 `json:"points,omitempty"`

	// emitter: spawn position
	X float32 `json:"x,omitempty"`
	Y float32 `json:"y,omitempty"`

	// forces: replaces the frame force list
	Forces []ForceSpec `json:"forces,omitempty"`

	// rate: emitter spawn rate
	Rate float32 `json:"rate,omitempty"`
}

// ForceSpec is the wire form of a force field.
type ForceSpec struct {
	Kind       string  `json:"kind"`
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Strength   float32 `json:"strength"`
	Turbulence float32 `json:"turbulence"`
	Radius     float32 `json:"radius"`
}

// ToForce converts the spec to a force field. The kind set is closed;
// unknown kinds are rejected rather than silently ignored so client bugs
// surface in the log.
func (fs ForceSpec) ToForce() (physics.Force, error) {
	switch fs.Kind {
	case "gravity":
		return physics.Gravity(fs.X, fs.Y), nil
	case "wind":
		return physics.Wind(physics.V(fs.X, fs.Y), fs.Strength, fs.Turbulence), nil
	case "attractor":
		return physics.Attractor(physics.V(fs.X, fs.Y), fs.Strength, fs.Radius), nil
	case "repulsor":
		return physics.Repulsor(physics.V(fs.X, fs.Y), fs.Strength, fs.Radius), nil
	}
	return physics.Force{}, fmt.Errorf("unknown force kind %q", fs.Kind)
}

// ParseCommand decodes a single JSON message.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("decoding command: %w", err)
	}

	switch cmd.Type {
	case TypeOutline:
		if len(cmd.Points)%2 != 0 {
			return Command{}, fmt.Errorf("outline: odd point buffer length %d", len(cmd.Points))
		}
	case TypeEmitter, TypeForces, TypeRate:
	default:
		return Command{}, fmt.Errorf("unknown command type %q", cmd.Type)
	}

	return cmd, nil
}

// OutlineVecs converts the flat point buffer to vectors.
func (c Command) OutlineVecs() []physics.Vec2 {
	points := make([]physics.Vec2, 0, len(c.Points)/2)
	for i := 0; i+1 < len(c.Points); i += 2 {
		points = append(points, physics.V(c.Points[i], c.Points[i+1]))
	}
	return points
}
