package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physdeck/internal/physics"
)

const (
	DefaultFont         = "CMU Serif"
	DefaultTitleSize    = 80.0
	DefaultSubtitleSize = 50.0
	DefaultRunTime      = 3.0
	DefaultWaitTime     = 2.0
	DefaultOrbitSteps   = 256
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scene        string         `yaml:"scene"`
	Theme        string         `yaml:"theme"`
	Font         string         `yaml:"font"`
	Author       string         `yaml:"author"`
	Course       string         `yaml:"course"`
	Year         int            `yaml:"year"`
	TitleSize    float64        `yaml:"title_font_size"`
	SubtitleSize float64        `yaml:"subtitle_font_size"`
	RunTime      float64        `yaml:"run_time"`
	Easing       string         `yaml:"easing"`
	WaitTime     float64        `yaml:"wait_time"`
	Advance      string         `yaml:"advance"`
	Poiseuille   physics.Pipe   `yaml:"poiseuille"`
	Magnetic     MagneticConfig `yaml:"magnetic"`
}

type MagneticConfig struct {
	Particle   string  `yaml:"particle"`
	Velocity   float64 `yaml:"velocity"`
	Strength   float64 `yaml:"strength"`
	Integrator string  `yaml:"integrator"`
	OrbitSteps int     `yaml:"orbit_steps"`
	Logo       string  `yaml:"logo"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:        "poiseuille",
		Theme:        "chalk",
		Font:         DefaultFont,
		Author:       "Matt Gleich",
		Course:       "AP Physics 2",
		TitleSize:    DefaultTitleSize,
		SubtitleSize: DefaultSubtitleSize,
		RunTime:      DefaultRunTime,
		Easing:       "smooth",
		WaitTime:     DefaultWaitTime,
		Advance:      "keys",
		Poiseuille: physics.Pipe{
			Radius:    2,
			Pressure:  2,
			Viscosity: 3,
			Length:    3,
		},
		Magnetic: MagneticConfig{
			Particle:   "proton",
			Velocity:   3e6,
			Strength:   0.1,
			Integrator: "rk4",
			OrbitSteps: DefaultOrbitSteps,
		},
	}
}

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

// Validate rejects values that would divide by zero or make a slide
// unreadable.
func (c *Config) Validate() error {
	p := c.Poiseuille
	switch {
	case p.Radius <= 0, p.Pressure <= 0, p.Viscosity <= 0, p.Length <= 0:
		return fmt.Errorf("%w: poiseuille values must be positive, got %+v", ErrInvalid, p)
	case c.Magnetic.Velocity <= 0:
		return fmt.Errorf("%w: magnetic.velocity must be positive", ErrInvalid)
	case c.Magnetic.Strength <= 0:
		return fmt.Errorf("%w: magnetic.strength must be positive", ErrInvalid)
	case c.Magnetic.OrbitSteps < 8:
		return fmt.Errorf("%w: magnetic.orbit_steps must be at least 8", ErrInvalid)
	case c.TitleSize <= 0 || c.SubtitleSize <= 0:
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalid)
	case c.RunTime < 0 || c.WaitTime < 0:
		return fmt.Errorf("%w: times must not be negative", ErrInvalid)
	}
	if _, err := physics.ParticleByName(c.Magnetic.Particle); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ByYear returns the year printed under titles; zero means the current year.
func (c *Config) ByYear() int {
	if c.Year != 0 {
		return c.Year
	}
	return time.Now().Year()
}

// Byline is the author credit shown on title slides.
func (c *Config) Byline() string {
	return fmt.Sprintf("%s %d", c.Author, c.ByYear())
}

func (c *Config) Cyclotron() (physics.Cyclotron, error) {
	p, err := physics.ParticleByName(c.Magnetic.Particle)
	if err != nil {
		return physics.Cyclotron{}, err
	}
	return physics.Cyclotron{Particle: p, Velocity: c.Magnetic.Velocity, Field: c.Magnetic.Strength}, nil
}
