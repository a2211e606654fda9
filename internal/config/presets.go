package config

import (
	"slices"

	"github.com/san-kum/chaoslab/internal/physics"
)

func lorenzPreset(sigma, rho, beta float64, trail int) *Config {
	p := physics.DefaultLorenzParams()
	p.Sigma, p.Rho, p.Beta, p.TrailLength = sigma, rho, beta, trail
	return &Config{Lorenz: p}
}

func pendulumPreset(modify func(*physics.PendulumParams)) *Config {
	p := physics.DefaultPendulumParams()
	modify(&p)
	return &Config{Pendulum: p}
}

// Presets holds named parameter bundles per engine. Only the engine's own
// section of each Config is meaningful.
var Presets = map[string]map[string]*Config{
	"lorenz": {
		"classic":   lorenzPreset(10, 28, 8.0/3.0, 2000),
		"butterfly": lorenzPreset(10, 28, 8.0/3.0, 4000),
		"chaotic":   lorenzPreset(10, 99.96, 8.0/3.0, 2000),
		"periodic":  lorenzPreset(10, 160, 8.0/3.0, 2000),
	},
	"pendulum": {
		"classic": pendulumPreset(func(p *physics.PendulumParams) {
			p.Damping = 0.999
		}),
		"asymmetric": pendulumPreset(func(p *physics.PendulumParams) {
			p.Damping = 0.999
			p.Length1, p.Length2 = 0.8, 1.2
		}),
		"heavy": pendulumPreset(func(p *physics.PendulumParams) {
			p.Damping = 0.995
			p.Gravity = 1.5 * 9.81
			p.Mass1, p.Mass2 = 2, 1
		}),
		"lagrangian": pendulumPreset(func(p *physics.PendulumParams) {
			p.Equations = physics.EquationsLagrangian
		}),
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names for model in sorted order, or nil for
// an unknown model.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ApplyPreset copies the preset's section for model into c. It reports false
// and leaves c alone when the preset does not exist.
func (c *Config) ApplyPreset(model, preset string) bool {
	p := GetPreset(model, preset)
	if p == nil {
		return false
	}
	switch model {
	case "lorenz":
		c.Lorenz = p.Lorenz
	case "pendulum":
		c.Pendulum = p.Pendulum
	default:
		return false
	}
	return true
}
