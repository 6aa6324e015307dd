// Package tui is the interactive lecture presenter: a scene picker and a
// full-screen stage driven by the keyboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/physdeck/internal/config"
	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/scenes"
	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/viz"
)

const frameInterval = 16 * time.Millisecond

type Options struct {
	Registry *scenes.Registry
	Config   *config.Config
	Theme    viz.Theme
	Logger   *log.Logger

	// Scene starts a scene at once and quits when it ends.
	Scene string
	// AutoAdvance releases holds after this long. Keys still work.
	AutoAdvance time.Duration

	// Observers are attached to the stage of every scene run.
	Observers func(scene string) []stage.Observer
	// Finished is called when a scene run ends, with nil on success.
	Finished func(scene string, err error)
}

type mode int

const (
	modeMenu mode = iota
	modeScene
)

type tickMsg time.Time

// releaseMsg reports that the scene got past a hold, by key or by timer.
type releaseMsg struct{}

type sceneDoneMsg struct {
	scene string
	err   error
}

// link lets the model reach the program it runs in.
type link struct {
	send func(tea.Msg)
}

type model struct {
	ctx     context.Context
	opts    Options
	link    *link
	scenes  []scenes.Scene
	cursor  int
	mode    mode
	status  string
	err     error
	initCmd tea.Cmd

	width  int
	height int

	current  scenes.Scene
	cancel   context.CancelFunc
	advance  chan struct{}
	tr       stage.Transition
	done     chan struct{}
	started  time.Time
	progress float64
	holding  bool
}

func newModel(ctx context.Context, opts Options, l *link) model {
	if opts.Registry == nil {
		opts.Registry = scenes.NewRegistry()
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.GetTheme(opts.Config.Theme)
	}
	m := model{
		ctx:    ctx,
		opts:   opts,
		link:   l,
		scenes: opts.Registry.List(),
		width:  80,
		height: 24,
	}
	if opts.Scene != "" {
		s, err := opts.Registry.Get(opts.Scene)
		if err != nil {
			m.err = err
			m.initCmd = tea.Quit
			return m
		}
		m, m.initCmd = m.start(s)
	}
	return m
}

// Run shows the presenter until the user quits. It returns the error of a
// scene started through Options.Scene.
func Run(ctx context.Context, opts Options) error {
	l := &link{}
	m := newModel(ctx, opts, l)
	if m.err != nil {
		return m.err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	l.send = p.Send

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(model); ok {
		return fm.err
	}
	return nil
}

func (m model) Init() tea.Cmd { return m.initCmd }

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// start runs s on its own goroutine. Its stage talks back through
// transitionMsg and the returned command reports the end of the run.
func (m model) start(s scenes.Scene) (model, tea.Cmd) {
	ctx, cancel := context.WithCancel(m.ctx)
	advance := make(chan struct{}, 1)

	var sig cue.Signal = cue.Channel(advance)
	if m.opts.AutoAdvance > 0 {
		sig = cue.First(sig, cue.Timer(m.opts.AutoAdvance))
	}
	sig = notifyRelease(sig, m.link)

	st := stage.New(stage.WithPlayer(&Presenter{send: func(msg tea.Msg) { m.link.send(msg) }}))
	if m.opts.Observers != nil {
		for _, o := range m.opts.Observers(s.Name) {
			st.AddObserver(o)
		}
	}
	env, err := scenes.NewEnv(st, sig, m.opts.Config, m.opts.Logger)
	if err != nil {
		cancel()
		m.err = err
		m.status = err.Error()
		return m, nil
	}

	m.mode = modeScene
	m.current = s
	m.cancel = cancel
	m.advance = advance
	m.tr = stage.Transition{}
	m.done = nil
	m.holding = false
	m.status = ""
	m.opts.Logger.Info("presenting", "scene", s.Name)

	return m, func() tea.Msg {
		return sceneDoneMsg{scene: s.Name, err: s.Run(ctx, env)}
	}
}

// notifyRelease tells the UI whenever sig lets the scene continue.
func notifyRelease(sig cue.Signal, l *link) cue.Signal {
	return cue.SignalFunc(func(ctx context.Context) error {
		if err := sig.Await(ctx); err != nil {
			return err
		}
		l.send(releaseMsg{})
		return nil
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case transitionMsg:
		return m.show(msg)
	case releaseMsg:
		m.holding = false
		// a key pressed after the timer won must not skip the next hold
		if m.advance != nil {
			select {
			case <-m.advance:
			default:
			}
		}
		return m, nil
	case tickMsg:
		if m.done == nil {
			return m, nil
		}
		m.progress = time.Since(m.started).Seconds() / m.tr.RunTime
		if m.progress >= 1 {
			m.settle()
			return m, nil
		}
		return m, tick()
	case sceneDoneMsg:
		return m.finish(msg)
	}
	return m, nil
}

func (m model) show(msg transitionMsg) (model, tea.Cmd) {
	m.settle()
	m.tr = msg.tr
	m.done = msg.done
	m.holding = msg.tr.Kind == stage.TransitionHold
	m.started = time.Now()
	m.progress = 0

	switch msg.tr.Kind {
	case stage.TransitionAnimate, stage.TransitionWait:
		if msg.tr.RunTime > 0 {
			return m, tick()
		}
	}
	m.settle()
	return m, nil
}

// settle releases the scene goroutine from the current transition.
func (m *model) settle() {
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
	m.progress = 1
}

func (m model) finish(msg sceneDoneMsg) (model, tea.Cmd) {
	m.settle()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mode = modeMenu
	m.holding = false

	switch {
	case msg.err == nil:
		m.status = fmt.Sprintf("finished %s", msg.scene)
	case errors.Is(msg.err, context.Canceled):
		m.status = fmt.Sprintf("stopped %s", msg.scene)
	default:
		m.status = msg.err.Error()
		m.opts.Logger.Error("scene failed", "scene", msg.scene, "err", msg.err)
	}
	if m.opts.Finished != nil {
		m.opts.Finished(msg.scene, msg.err)
	}

	if m.opts.Scene != "" {
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.mode {
	case modeMenu:
		return m.menuKey(msg)
	case modeScene:
		return m.sceneKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.scenes) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.start(m.scenes[m.cursor])
		return m, tea.Batch(tea.ClearScreen, cmd)
	}
	return m, nil
}

func (m model) sceneKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		m.settle()
		return m, tea.Quit
	case "esc":
		if m.cancel != nil {
			m.cancel()
		}
		m.settle()
		return m, nil
	case " ", "enter", "right", "n", "l":
		switch {
		case m.done != nil:
			// skip to the end of the running animation
			m.settle()
		case m.holding:
			select {
			case m.advance <- struct{}{}:
			default:
			}
			m.holding = false
		}
	}
	return m, nil
}

// frame is what the stage looks like right now.
func (m model) frame() []stage.Drawable {
	if m.done != nil {
		return stage.Interpolate(m.tr, m.progress)
	}
	return m.tr.After
}

func (m model) View() string {
	switch m.mode {
	case modeMenu:
		return m.viewMenu()
	case modeScene:
		return m.viewScene()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(viz.Dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("            " + viz.Cyan.Render("p h y s d e c k") + "\n")
	b.WriteString(viz.Dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, s := range m.scenes {
		if i == m.cursor {
			b.WriteString("      " + viz.Cyan.Render("▸ ") + viz.White.Render(fmt.Sprintf("%-14s", s.Name)) + viz.Dim.Render(s.Description) + "\n")
		} else {
			b.WriteString("        " + viz.Dim.Render(fmt.Sprintf("%-14s", s.Name)) + viz.Dimmer.Render(s.Description) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n      " + viz.Yellow.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(viz.Dim.Render("      ↑↓ select   enter present   q quit") + "\n")

	return b.String()
}

func (m model) viewScene() string {
	var b strings.Builder

	state := viz.Green.Render("●")
	hint := ""
	switch {
	case m.done != nil && m.tr.Kind == stage.TransitionAnimate:
		hint = viz.ProgressBar(m.progress, 24)
	case m.done != nil:
		state = viz.Yellow.Render("○")
		hint = viz.Dim.Render(fmt.Sprintf("wait %.1fs", m.tr.RunTime))
	case m.holding:
		state = viz.Yellow.Render("▸")
		hint = viz.KeyHint.Render("space to continue")
	}
	b.WriteString(fmt.Sprintf(" %s %s  %s  %s\n",
		state, viz.Cyan.Render(m.current.Title), viz.Dim.Render(m.tr.Segment), hint))

	w := max(m.width, 20)
	h := max(m.height-3, 8)
	b.WriteString(viz.Render(m.frame(), w, h, m.opts.Theme) + "\n")
	b.WriteString(viz.Dim.Render(" space/→ next   esc menu   q quit"))

	return b.String()
}
