// Package config holds the tunable constants for the demos, loaded
// from an optional YAML file and hot-reloadable while running.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of tunables. Loading unmarshals over the
// defaults, so partial files only override the fields they name and
// an explicit zero in the file stays zero.
type Config struct {
	// WorldGravity is the downward acceleration applied to dynamic
	// physics bodies, in units/s^2 (positive value, applied along -Y).
	WorldGravity float64 `yaml:"world_gravity"`
	// Restitution is the bounciness of body contacts (0..1).
	Restitution float64 `yaml:"restitution"`
	// FixedStep is the nominal physics step in seconds.
	FixedStep float64 `yaml:"fixed_step"`
	// MaxSubsteps bounds catch-up work on slow frames.
	MaxSubsteps int `yaml:"max_substeps"`

	// CameraGravity is the gravity of the first-person kinematic
	// model. It is deliberately separate from WorldGravity: the
	// camera is not a physics body and a heavier fall feels better.
	CameraGravity float64 `yaml:"camera_gravity"`
	// Damping is the exponential horizontal damping coefficient.
	Damping float64 `yaml:"damping"`
	// Accel is the movement acceleration in units/s^2.
	Accel float64 `yaml:"accel"`
	// JumpSpeed is the upward speed added on jump.
	JumpSpeed float64 `yaml:"jump_speed"`
	// EyeHeight is the camera height above the ground plane.
	EyeHeight float64 `yaml:"eye_height"`
	// MouseSensitivity scales look deltas, radians per pixel.
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`

	// LaunchSpeed is the initial projectile speed in units/s.
	LaunchSpeed float64 `yaml:"launch_speed"`
	// ProjectileRadius is the sphere radius of fired projectiles.
	ProjectileRadius float64 `yaml:"projectile_radius"`
	// ProjectileMass is the mass of fired projectiles.
	ProjectileMass float64 `yaml:"projectile_mass"`
	// ProjectileDamping is the linear damping on projectile bodies.
	ProjectileDamping float64 `yaml:"projectile_damping"`
	// CullY removes projectiles whose vertical position falls
	// strictly below it.
	CullY float64 `yaml:"cull_y"`
}

// Default returns the built-in tunables.
func Default() Config {
	return Config{
		WorldGravity:      9.8,
		Restitution:       0.6,
		FixedStep:         1.0 / 60.0,
		MaxSubsteps:       3,
		CameraGravity:     30,
		Damping:           10,
		Accel:             80,
		JumpSpeed:         12,
		EyeHeight:         2,
		MouseSensitivity:  0.002,
		LaunchSpeed:       20,
		ProjectileRadius:  0.4,
		ProjectileMass:    1,
		ProjectileDamping: 0.1,
		CullY:             -50,
	}
}

// Load reads the YAML file at path. A missing file is not an error:
// the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
