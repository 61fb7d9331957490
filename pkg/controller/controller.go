// Package controller turns discrete navigation actions into camera updates.
package controller

import (
	"fmt"
	"strings"
	"sync"

	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// Action is a single navigation input
type Action int

const (
	None Action = iota
	MoveForward
	MoveBackward
	StrafeLeft
	StrafeRight
	MoveUp
	MoveDown
	PitchUp
	PitchDown
	YawLeft
	YawRight
	Quit
)

var actionNames = map[Action]string{
	None:         "none",
	MoveForward:  "forward",
	MoveBackward: "backward",
	StrafeLeft:   "left",
	StrafeRight:  "right",
	MoveUp:       "up",
	MoveDown:     "down",
	PitchUp:      "pitch-up",
	PitchDown:    "pitch-down",
	YawLeft:      "yaw-left",
	YawRight:     "yaw-right",
	Quit:         "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction looks up an action by name, case-insensitively
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, actionName := range actionNames {
		if actionName == name {
			return action, nil
		}
	}
	return None, fmt.Errorf("unknown camera action %q", name)
}

// Config holds the fixed increments applied per action
type Config struct {
	MoveStep      float64 // World units per move
	RotateStepDeg float64 // Degrees per rotation
}

// DefaultConfig returns the standard navigation step sizes
func DefaultConfig() Config {
	return Config{
		MoveStep:      0.2,
		RotateStepDeg: 7.5,
	}
}

// Apply returns the camera after one action and whether it changed.
// Strafing steps along yaw+90° and vertical moves along pitch+90°.
func Apply(camera geometry.Camera, action Action, cfg Config) (geometry.Camera, bool) {
	quarter := geometry.Radians(90)
	rotate := geometry.Radians(cfg.RotateStepDeg)

	switch action {
	case MoveForward:
		camera.Position = camera.Position.Add(geometry.RayStep(camera.Pitch, camera.Yaw, cfg.MoveStep))
	case MoveBackward:
		camera.Position = camera.Position.Subtract(geometry.RayStep(camera.Pitch, camera.Yaw, cfg.MoveStep))
	case StrafeLeft:
		camera.Position = camera.Position.Subtract(geometry.RayStep(camera.Pitch, camera.Yaw+quarter, cfg.MoveStep))
	case StrafeRight:
		camera.Position = camera.Position.Add(geometry.RayStep(camera.Pitch, camera.Yaw+quarter, cfg.MoveStep))
	case MoveUp:
		camera.Position = camera.Position.Add(geometry.RayStep(camera.Pitch+quarter, camera.Yaw, cfg.MoveStep))
	case MoveDown:
		camera.Position = camera.Position.Subtract(geometry.RayStep(camera.Pitch+quarter, camera.Yaw, cfg.MoveStep))
	case PitchUp:
		camera.Pitch += rotate
	case PitchDown:
		camera.Pitch -= rotate
	case YawLeft:
		camera.Yaw -= rotate
	case YawRight:
		camera.Yaw += rotate
	default:
		return camera, false
	}
	return camera, true
}

// Controller owns the live camera between frames. Renders take a snapshot
// with Camera so input never mutates a frame in flight.
type Controller struct {
	mu     sync.Mutex
	camera geometry.Camera
	config Config
}

// New creates a controller starting at camera
func New(camera geometry.Camera, cfg Config) *Controller {
	return &Controller{camera: camera, config: cfg}
}

// Camera returns a snapshot of the current camera
func (c *Controller) Camera() geometry.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camera
}

// Handle applies an action and reports whether a re-render is needed
func (c *Controller) Handle(action Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	camera, changed := Apply(c.camera, action, c.config)
	c.camera = camera
	return changed
}
