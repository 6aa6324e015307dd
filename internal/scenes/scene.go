// Package scenes holds the lectures: each scene is an ordered list of
// segments, and every segment ends with a cleared stage.
package scenes

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/san-kum/physdeck/internal/config"
	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/stage"
)

// Env is everything a segment may touch.
type Env struct {
	Stage  *stage.Stage
	Signal cue.Signal
	Config *config.Config
	Log    *log.Logger

	easing stage.Easing
}

func NewEnv(st *stage.Stage, sig cue.Signal, cfg *config.Config, logger *log.Logger) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	easing, err := stage.EasingByName(cfg.Easing)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Env{Stage: st, Signal: sig, Config: cfg, Log: logger, easing: easing}, nil
}

// paced applies the configured run time and easing.
func (e *Env) paced(opts ...stage.AnimOption) []stage.AnimOption {
	return append([]stage.AnimOption{stage.RunTime(e.Config.RunTime), stage.WithEasing(e.easing)}, opts...)
}

func (e *Env) title(s string) *stage.Drawable {
	return stage.NewText(s, e.Config.TitleSize)
}

func (e *Env) subtitle(s string) *stage.Drawable {
	return stage.NewText(s, e.Config.SubtitleSize)
}

func (e *Env) hold(ctx context.Context) error {
	return e.Stage.Hold(ctx, e.Signal)
}

type Segment struct {
	Name string
	Run  func(ctx context.Context, env *Env) error
}

type Scene struct {
	Name        string
	Title       string
	Description string
	Segments    []Segment

	// Metrics reports the computed quantities a run of the scene shows.
	Metrics func(cfg *config.Config) map[string]float64
}

// Run plays every segment in order, clearing the stage after each.
func (s Scene) Run(ctx context.Context, env *Env) error {
	for _, seg := range s.Segments {
		env.Stage.BeginSegment(seg.Name)
		env.Log.Debug("segment", "scene", s.Name, "segment", seg.Name)
		if err := seg.Run(ctx, env); err != nil {
			return fmt.Errorf("%s/%s: %w", s.Name, seg.Name, err)
		}
		if err := env.Stage.Clear(ctx); err != nil {
			return fmt.Errorf("%s/%s: clear: %w", s.Name, seg.Name, err)
		}
	}
	return nil
}

type Registry struct {
	scenes map[string]Scene
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Scene)}
	for _, s := range []Scene{Poiseuille(), Viscosity(), Magnetic()} {
		r.scenes[s.Name] = s
	}
	return r
}

func (r *Registry) Get(name string) (Scene, error) {
	s, ok := r.scenes[name]
	if !ok {
		return Scene{}, fmt.Errorf("unknown scene: %s (available: %v)", name, r.Names())
	}
	return s, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) List() []Scene {
	out := make([]Scene, 0, len(r.scenes))
	for _, name := range r.Names() {
		out = append(out, r.scenes[name])
	}
	return out
}
