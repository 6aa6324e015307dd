package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physdeck/internal/config"
	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/export"
	"github.com/san-kum/physdeck/internal/physics"
	"github.com/san-kum/physdeck/internal/scenes"
	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/storage"
	"github.com/san-kum/physdeck/internal/texfmt"
	"github.com/san-kum/physdeck/internal/tui"
	"github.com/san-kum/physdeck/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	theme      string
	advance    string
	record     bool
	outDir     string
	svgPath    string
	samples    int
	asJSON     bool
)

var (
	logger   = log.NewWithOptions(os.Stderr, log.Options{Prefix: "physdeck"})
	registry = scenes.NewRegistry()

	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physdeck",
		Short: "physics lectures in the terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg, "")
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physdeck", "data directory for recordings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "chalk", fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	rootCmd.PersistentFlags().BoolVar(&record, "record", false, "record runs to the data directory")

	presentCmd := &cobra.Command{
		Use:   "present [scene]",
		Short: "present a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  presentScene,
	}
	presentCmd.Flags().StringVar(&advance, "advance", "keys", "how holds are released: keys, console or auto")

	exportCmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "write every held frame of a scene as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportScene,
	}
	exportCmd.Flags().StringVar(&outDir, "out", "slides", "output directory")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	solveCmd := &cobra.Command{
		Use:   "solve [scene]",
		Short: "print the worked solution of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveScene,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [scene]",
		Short: "plot the physics behind a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotScene,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the curve as svg")
	plotCmd.Flags().IntVar(&samples, "samples", 80, "number of samples")

	runsCmd := &cobra.Command{
		Use:   "runs [run_id]",
		Short: "list recorded runs, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showRuns,
	}
	runsCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as json")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "physdeck.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(presentCmd, exportCmd, scenesCmd, presetsCmd, solveCmd, plotCmd, runsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves defaults, preset, config file and flags in that
// order and returns the config with the scene it names.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, scenes.Scene, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, scenes.Scene{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	name := cfg.Scene
	if len(args) > 0 {
		name = args[0]
	}
	scene, err := registry.Get(name)
	if err != nil {
		return nil, scenes.Scene{}, err
	}

	if preset != "" {
		p := config.GetPreset(scene.Name, preset)
		if p == nil {
			return nil, scenes.Scene{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scene.Name))
		}
		if configFile == "" {
			cfg = p
		} else {
			// the config file keeps its presentation settings
			cfg.Poiseuille, cfg.Magnetic = p.Poiseuille, p.Magnetic
		}
	}

	cfg.Scene = scene.Name
	if cmd.Flags().Changed("theme") || configFile == "" {
		cfg.Theme = theme
	}
	if f := cmd.Flags().Lookup("advance"); f != nil && (f.Changed || configFile == "") {
		cfg.Advance = advance
	}

	if err := cfg.Validate(); err != nil {
		return nil, scenes.Scene{}, err
	}
	logger.Debug("config", "scene", cfg.Scene, "preset", preset, "file", configFile, "theme", cfg.Theme)
	return cfg, scene, nil
}

func presentScene(cmd *cobra.Command, args []string) error {
	cfg, scene, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	switch cfg.Advance {
	case "keys", "auto":
		return runTUI(cmd.Context(), cfg, scene.Name)
	case "console":
		return runConsole(cmd.Context(), cfg, scene)
	}
	return fmt.Errorf("unknown advance mode: %s (available: keys, console, auto)", cfg.Advance)
}

// recording tracks the recorder of the scene run in progress.
type recording struct {
	store *storage.Store
	cfg   *config.Config
	rec   *storage.Recorder
}

func newRecording(cfg *config.Config) (*recording, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return &recording{store: st, cfg: cfg}, nil
}

func (r *recording) observers(string) []stage.Observer {
	r.rec = storage.NewRecorder()
	return []stage.Observer{r.rec}
}

func (r *recording) finished(name string, runErr error) {
	if r.rec == nil {
		return
	}
	meta := storage.RunMetadata{
		Scene:   name,
		Preset:  preset,
		Theme:   r.cfg.Theme,
		Advance: r.cfg.Advance,
	}
	if s, err := registry.Get(name); err == nil && s.Metrics != nil {
		meta.Metrics = s.Metrics(r.cfg)
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}
	runID, err := r.store.Save(meta, r.rec)
	if err != nil {
		logger.Error("failed to save run", "scene", name, "err", err)
		return
	}
	logger.Info("recorded", "run", runID)
}

// tuiLogger keeps log output off the alternate screen.
func tuiLogger() (*log.Logger, func(), error) {
	if !verbose {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "physdeck.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	l := log.NewWithOptions(f, log.Options{Prefix: "physdeck", ReportTimestamp: true, Level: log.DebugLevel})
	return l, func() { f.Close() }, nil
}

func runTUI(ctx context.Context, cfg *config.Config, scene string) error {
	l, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Registry: registry,
		Config:   cfg,
		Theme:    viz.GetTheme(cfg.Theme),
		Logger:   l,
		Scene:    scene,
	}
	if cfg.Advance == "auto" {
		opts.AutoAdvance = time.Duration(cfg.WaitTime * float64(time.Second))
	}
	if record {
		r, err := newRecording(cfg)
		if err != nil {
			return err
		}
		opts.Observers = r.observers
		opts.Finished = r.finished
	}
	return tui.Run(ctx, opts)
}

func runConsole(ctx context.Context, cfg *config.Config, scene scenes.Scene) error {
	player := viz.NewConsolePlayer(os.Stdout, viz.GetTheme(cfg.Theme))
	player.Realtime = true
	st := stage.New(stage.WithPlayer(player))

	var r *recording
	if record {
		var err error
		if r, err = newRecording(cfg); err != nil {
			return err
		}
		for _, o := range r.observers(scene.Name) {
			st.AddObserver(o)
		}
	}

	env, err := scenes.NewEnv(st, cue.NewConsole(os.Stdin), cfg, logger)
	if err != nil {
		return err
	}
	runErr := scene.Run(ctx, env)
	if r != nil {
		r.finished(scene.Name, runErr)
	}
	if errors.Is(runErr, io.EOF) {
		logger.Warn("input closed, stopping", "scene", scene.Name)
		return nil
	}
	return runErr
}

func exportScene(cmd *cobra.Command, args []string) error {
	cfg, scene, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	dir := filepath.Join(outDir, scene.Name)
	exp, err := export.NewSVGExporter(dir, viz.GetTheme(cfg.Theme), cfg.Font)
	if err != nil {
		return err
	}
	st := stage.New(stage.WithObserver(exp))
	env, err := scenes.NewEnv(st, cue.Immediate, cfg, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := scene.Run(cmd.Context(), env); err != nil {
		return err
	}
	logger.Info("exported", "scene", scene.Name, "frames", len(exp.Files()), "dir", dir, "took", time.Since(start).Round(time.Millisecond))
	for _, f := range exp.Files() {
		fmt.Println(f)
	}
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSEGMENTS\tTITLE\tDESCRIPTION")
	for _, s := range registry.List() {
		names := make([]string, len(s.Segments))
		for i, seg := range s.Segments {
			names[i] = seg.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, strings.Join(names, ","), s.Title, s.Description)
	}
	return w.Flush()
}

func solveScene(cmd *cobra.Command, args []string) error {
	cfg, scene, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render(scene.Title))
	switch scene.Name {
	case "poiseuille":
		fmt.Println(texfmt.ToUnicode(scenes.PoiseuilleEquation))
		fmt.Println()
		for i, step := range scenes.SolveSteps(cfg.Poiseuille) {
			fmt.Printf("  %d. %s %s\n", i+1, viz.Dim.Render(fmt.Sprintf("%-28s", step.Label)), texfmt.ToUnicode(step.Expr))
		}
	case "magnetic":
		c, err := cfg.Cyclotron()
		if err != nil {
			return err
		}
		for _, d := range scenes.VariableDefs(c) {
			fmt.Println("  " + d.Display())
		}
		fmt.Println()
		fmt.Println("  " + texfmt.ToUnicode(scenes.RadiusEquation(c)))
		direction := "counterclockwise"
		if c.Clockwise() {
			direction = "clockwise"
		}
		fmt.Printf("  period %s s, %s, shown over %.2f s\n",
			texfmt.ToUnicode(texfmt.Exponential(c.Period())), direction, c.Period()/scenes.OrbitTimeScale)
		if m := scene.Metrics(cfg); m != nil {
			fmt.Println(viz.Dim.Render(fmt.Sprintf("  %s, %d steps: energy drift %.2e, radius error %.2e",
				cfg.Magnetic.Integrator, cfg.Magnetic.OrbitSteps, m["energy_drift"], m["radius_error"])))
		}
	default:
		fmt.Println(viz.Dim.Render("  nothing to solve"))
	}
	return nil
}

func plotScene(cmd *cobra.Command, args []string) error {
	cfg, scene, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	n := max(samples, 2)

	var curve []stage.Vec
	switch scene.Name {
	case "poiseuille":
		pipe := cfg.Poiseuille
		xs, ys := physics.Sweep(func(r float64) float64 { return pipe.WithRadius(r).FlowRate() }, 0, 2*pipe.Radius, n)
		fmt.Println(asciigraph.Plot(ys,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("flow rate Q (m³/s) vs radius 0..%s m", texfmt.Plain(2*pipe.Radius))),
		))
		for i := range xs {
			curve = append(curve, stage.Vec{X: xs[i], Y: ys[i]})
		}
	case "magnetic":
		c, err := cfg.Cyclotron()
		if err != nil {
			return err
		}
		path, err := scenes.OrbitPath(c, cfg.Magnetic.Integrator, n, stage.Origin)
		if err != nil {
			return err
		}
		xs := make([]float64, len(path))
		for i, p := range path {
			xs[i] = p.X / scenes.OrbitDisplayRadius * c.Radius()
		}
		fmt.Println(asciigraph.Plot(xs,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x(t) over one period of a %s, R = %s m", c.Particle.Name, texfmt.Round(c.Radius(), 4))),
		))
		curve = path
	default:
		return fmt.Errorf("nothing to plot for %s", scene.Name)
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.TrajectoryToSVG(curve, 800, 400, "#e92741")), 0644); err != nil {
			return err
		}
		logger.Info("wrote", "svg", svgPath)
	}
	return nil
}

func showRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if len(args) == 1 {
		if asJSON {
			return st.ExportJSON(os.Stdout, args[0])
		}
		return showRun(st, args[0])
	}

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tHOLDS\tPRESET\tERROR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%s\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Holds,
			run.Preset,
			run.Error,
		)
	}
	return w.Flush()
}

func showRun(st *storage.Store, runID string) error {
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render(meta.ID))
	for _, k := range meta.MetricNames() {
		fmt.Printf("  %s = %g\n", k, meta.Metrics[k])
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tSEGMENT\tKIND\tTIME\tRUN\tSHOWN\tEFFECTS")
	for _, f := range frames {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%s\n", f.Seq, f.Segment, f.Kind, f.Time, f.RunTime, f.Drawables, f.Effects)
	}
	return w.Flush()
}
