package config

import "sort"

func preset(scene string, apply func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scene = scene
	apply(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"poiseuille": {
		"textbook": preset("poiseuille", func(c *Config) {
			c.Poiseuille.Radius, c.Poiseuille.Pressure, c.Poiseuille.Viscosity, c.Poiseuille.Length = 2, 2, 3, 3
		}),
		"garden-hose": preset("poiseuille", func(c *Config) {
			c.Poiseuille.Radius, c.Poiseuille.Pressure, c.Poiseuille.Viscosity, c.Poiseuille.Length = 0.01, 20000, 0.001, 15
		}),
		"honey": preset("poiseuille", func(c *Config) {
			c.Poiseuille.Radius, c.Poiseuille.Pressure, c.Poiseuille.Viscosity, c.Poiseuille.Length = 0.05, 500, 10, 2
		}),
	},
	"magnetic": {
		"proton": preset("magnetic", func(c *Config) {
			c.Magnetic.Particle, c.Magnetic.Velocity, c.Magnetic.Strength = "proton", 3e6, 0.1
		}),
		"electron": preset("magnetic", func(c *Config) {
			c.Magnetic.Particle, c.Magnetic.Velocity, c.Magnetic.Strength = "electron", 3e6, 0.1
		}),
		"strong-field": preset("magnetic", func(c *Config) {
			c.Magnetic.Particle, c.Magnetic.Velocity, c.Magnetic.Strength = "proton", 3e6, 1.5
		}),
	},
	"viscosity": {
		"quick": preset("viscosity", func(c *Config) {
			c.WaitTime = 1
			c.RunTime = 1
		}),
	},
}

func GetPreset(scene, name string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
