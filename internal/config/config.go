package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/fractal"
	"github.com/san-kum/chaoslab/internal/integrators"
	"github.com/san-kum/chaoslab/internal/physics"
)

const (
	DefaultWidth     = 160
	DefaultHeight    = 96
	DefaultChunkRows = 16
	DefaultSteps     = 2000
)

type Config struct {
	LogLevel   string                 `yaml:"log_level"`
	Integrator string                 `yaml:"integrator"`
	Seed       int64                  `yaml:"seed"`
	Steps      int                    `yaml:"steps"`
	Lorenz     physics.LorenzParams   `yaml:"lorenz"`
	Pendulum   physics.PendulumParams `yaml:"pendulum"`
	Logistic   physics.LogisticParams `yaml:"logistic"`
	Mandelbrot fractal.Params         `yaml:"mandelbrot"`
	Julia      fractal.Params         `yaml:"julia"`
	Render     RenderConfig           `yaml:"render"`
}

type RenderConfig struct {
	// Workers of zero means one per CPU.
	Workers   int `yaml:"workers"`
	ChunkRows int `yaml:"chunk_rows"`
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
}

func (r RenderConfig) Validate() error {
	checks := []error{
		dynamo.NonNegative("render", "workers", float64(r.Workers)),
		dynamo.Positive("render", "chunk_rows", float64(r.ChunkRows)),
		dynamo.Positive("render", "width", float64(r.Width)),
		dynamo.Positive("render", "height", float64(r.Height)),
	}
	return errors.Join(checks...)
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		Integrator: "rk4",
		Seed:       1,
		Steps:      DefaultSteps,
		Lorenz:     physics.DefaultLorenzParams(),
		Pendulum:   physics.DefaultPendulumParams(),
		Logistic:   physics.DefaultLogisticParams(),
		Mandelbrot: fractal.DefaultMandelbrotParams(),
		Julia:      fractal.DefaultJuliaParams(),
		Render: RenderConfig{
			ChunkRows: DefaultChunkRows,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
		},
	}
}

// Load reads a YAML file over the defaults, so sections or fields missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := integrators.ByName(c.Integrator); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs,
		dynamo.NonNegative("config", "steps", float64(c.Steps)),
		c.Lorenz.Validate(),
		c.Pendulum.Validate(),
		c.Logistic.Validate(),
		c.Mandelbrot.Validate("mandelbrot"),
		c.Julia.Validate("julia"),
		c.Render.Validate(),
	)
	return errors.Join(errs...)
}
