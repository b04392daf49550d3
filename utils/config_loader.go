package utils

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ─── Motion configs ─────────────────────────────────────────────────────

type CircleConfig struct {
	Linear  float64 `yaml:"linear"`  // m/s
	Angular float64 `yaml:"angular"` // rad/s
}

type SpiralConfig struct {
	Linear        float64 `yaml:"linear"`         // m/s
	Shrink        float64 `yaml:"shrink"`         // radius decrease, m/s
	InitialRadius float64 `yaml:"initial_radius"` // m
}

type LineConfig struct {
	Initial      float64 `yaml:"initial"`      // m/s
	Acceleration float64 `yaml:"acceleration"` // m/s²
	Max          float64 `yaml:"max"`          // m/s
}

type MotionConfig struct {
	ControlRateHz int          `yaml:"control_rate_hz"`
	Circle        CircleConfig `yaml:"circle"`
	Spiral        SpiralConfig `yaml:"spiral"`
	Line          LineConfig   `yaml:"line"`
}

// ─── Sensor-level configs ───────────────────────────────────────────────

type IMUConfig struct {
	Enabled       bool    `yaml:"enabled"`
	UpdateRateHz  int     `yaml:"update_rate_hz"`
	ChannelBuffer int     `yaml:"channel_buffer"`
	AccelNoise    float64 `yaml:"accel_noise"` // std-dev, m/s²
	GyroNoise     float64 `yaml:"gyro_noise"`  // std-dev, rad/s
}

type OdomConfig struct {
	Enabled       bool `yaml:"enabled"`
	UpdateRateHz  int  `yaml:"update_rate_hz"`
	ChannelBuffer int  `yaml:"channel_buffer"`
}

type LaserConfig struct {
	Enabled        bool    `yaml:"enabled"`
	UpdateRateHz   int     `yaml:"update_rate_hz"`
	ChannelBuffer  int     `yaml:"channel_buffer"`
	NumBeams       int     `yaml:"num_beams"`
	RangeMax       float64 `yaml:"range_max"`        // m
	ArenaHalfWidth float64 `yaml:"arena_half_width"` // m, square walls around the origin
}

type SensorsConfig struct {
	IMU   IMUConfig   `yaml:"imu"`
	Odom  OdomConfig  `yaml:"odom"`
	Laser LaserConfig `yaml:"laser"`
}

// ─── Storage / simulation configs ───────────────────────────────────────

type StorageConfig struct {
	BaseDir       string `yaml:"base_dir"`
	SessionPrefix string `yaml:"session_prefix"`
	Overwrite     bool   `yaml:"overwrite"`
}

type SimulationConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// Config is the top-level structure of motion.yaml.
type Config struct {
	Motion     MotionConfig     `yaml:"motion"`
	Sensors    SensorsConfig    `yaml:"sensors"`
	Storage    StorageConfig    `yaml:"storage"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// DefaultConfig returns the settings of the original lab exercise.
func DefaultConfig() *Config {
	return &Config{
		Motion: MotionConfig{
			ControlRateHz: 10,
			Circle:        CircleConfig{Linear: 0.3, Angular: 0.6},
			Spiral:        SpiralConfig{Linear: 0.5, Shrink: 0.05, InitialRadius: 1},
			Line:          LineConfig{Initial: 0.3, Max: 1.0},
		},
		Sensors: SensorsConfig{
			IMU:   IMUConfig{Enabled: true, UpdateRateHz: 50, ChannelBuffer: 512, AccelNoise: 0.01, GyroNoise: 0.002},
			Odom:  OdomConfig{Enabled: true, UpdateRateHz: 20, ChannelBuffer: 256},
			Laser: LaserConfig{Enabled: true, UpdateRateHz: 5, ChannelBuffer: 64, NumBeams: 360, RangeMax: 3.5, ArenaHalfWidth: 2.5},
		},
		Storage: StorageConfig{BaseDir: "logs", SessionPrefix: "session"},
	}
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig reads motion.yaml on top of DefaultConfig, so the file only
// needs the keys it changes. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}
