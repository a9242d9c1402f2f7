package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/bench"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/recorder"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/store"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	length     int
	minValue   int
	maxValue   int
	delayMs    int
	theme      string
	logLevel   string
	logFile    string
	// record / play
	valuesFlag string
	format     string
	outFile    string
	save       bool
	plain      bool
	from       string
	svgOut     string
	// bench
	sizes []int
	// config init
	force bool
)

// main registers commands and flags, runs the TUI when no subcommand is
// given and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "sorting algorithm visualizer",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".sortviz", "data directory for saved recordings")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&length, "length", config.DefaultLength, "number of values")
	pf.IntVar(&minValue, "min", config.DefaultMinValue, "smallest generated value")
	pf.IntVar(&maxValue, "max", config.DefaultMaxValue, "largest generated value")
	pf.IntVar(&delayMs, "delay", config.DefaultStepDelayMs, "milliseconds between animation steps")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	recordCmd := &cobra.Command{
		Use:   "record [algorithm]",
		Short: "print the animation log of one sort",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVar(&valuesFlag, "values", "", "comma separated input values")
	recordCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, yaml)")
	recordCmd.Flags().StringVar(&outFile, "out", "", "also write the recording to this file (.json or .yaml)")
	recordCmd.Flags().BoolVar(&save, "save", false, "save the recording in the data directory")

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "play a sort without the interactive UI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().StringVar(&valuesFlag, "values", "", "comma separated input values")
	playCmd.Flags().BoolVar(&plain, "plain", false, "stream ANSI frames while playing")
	playCmd.Flags().StringVar(&from, "from", "", "replay a saved run id or recording file")
	playCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as an SVG bar chart")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved recordings",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "event counts per algorithm across input sizes",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{8, 16, 32, 64, 128, 256}, "input sizes")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range viz.AlgorithmOrder {
				fmt.Fprintf(w, "%s\t%s\n", name, recorder.Describe(name))
			}
			w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tALGORITHM\tLENGTH\tDELAY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", name, p.Algorithm, p.Length, p.StepDelay())
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, recordCmd, playCmd, listCmd, benchCmd, algorithmsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file (or discovery), the preset and the
// flags that were set on the command line, in that order.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		config.ApplyEnvOverrides(loaded)
		cfg = loaded
	} else {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if cfg, err = config.LoadFrom(dir); err != nil {
			return nil, err
		}
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Algorithm = p.Algorithm
		cfg.Length = p.Length
		cfg.StepDelayMs = p.StepDelayMs
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("min") {
		cfg.MinValue = minValue
	}
	if flags.Changed("max") {
		cfg.MaxValue = maxValue
	}
	if flags.Changed("delay") {
		cfg.StepDelayMs = delayMs
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging applies the level and, outside the TUI, the output file.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)

	if logFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.SetWriter(f)
	return func() { f.Close() }, nil
}

func inputValues(s *session.Session) error {
	if valuesFlag == "" {
		return nil
	}
	values, err := anim.ParseValues(valuesFlag)
	if err != nil {
		return err
	}
	return s.SetValues(values)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.SetLevel(level)

	// The screen belongs to Bubble Tea; logs go to the file or nowhere.
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "sortviz")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logging.SetOutput(log.Default())
	} else {
		logging.SetWriter(io.Discard)
	}

	s, err := session.New(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewApp(s), tea.WithAltScreen())
	_, err = p.Run()
	s.Stop()
	return err
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := session.New(cfg)
	if err != nil {
		return err
	}
	if err := inputValues(s); err != nil {
		return err
	}

	values := s.Display().Values()
	events, err := recorder.Record(values, cfg.Algorithm)
	if err != nil {
		return err
	}
	rec := store.NewRecording(cfg.Algorithm, s.Seed(), values, events)

	if save {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", runID)
	}
	if outFile != "" {
		if err := store.WriteFile(outFile, rec); err != nil {
			return err
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		fmt.Printf("# %s %v\n", rec.Algorithm, rec.Values)
		for i, e := range rec.Events {
			fmt.Printf("%d\t%s\n", i, e)
		}
		fmt.Printf("# compares=%d swaps=%d finalizes=%d total=%d\n",
			rec.Counts.Compares, rec.Counts.Swaps, rec.Counts.Finalizes, rec.Counts.Total())
		return nil
	default:
		return fmt.Errorf("unknown format: %s (available: text, json, yaml)", format)
	}
}

// loadRecording resolves --from as a saved run id first, then as a file.
func loadRecording(ref string) (*store.Recording, error) {
	if rec, err := store.New(dataDir).Load(ref); err == nil {
		return rec, nil
	}
	return store.ReadFile(ref)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved recordings")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tN\tEVENTS\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Algorithm, r.Size, r.Events, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	var opts []session.Option
	var renderer *viz.PlainRenderer
	if plain {
		renderer = viz.NewPlainRenderer(os.Stdout, cfg.Algorithm, viz.PaletteFor(cfg), cfg.FrameRate)
		opts = append(opts, session.WithObserver(renderer))
		renderer.Start()
		defer renderer.Stop()
	}

	s, err := session.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := inputValues(s); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	var pb *player.Playback
	if from != "" {
		rec, err := loadRecording(from)
		if err != nil {
			return err
		}
		pb, err = s.Replay(rec.Algorithm, rec.Values, rec.Events)
		if err != nil {
			logging.Error("replay rejected", "from", from, "err", err)
			return err
		}
	} else if pb, err = s.Sort(cfg.Algorithm); err != nil {
		return err
	}

	err = pb.Wait(ctx)
	if ctx.Err() != nil {
		s.Stop()
		<-pb.Done()
		err = pb.Err()
	}
	switch {
	case errors.Is(err, player.ErrCanceled):
		fmt.Fprintln(os.Stderr, "stopped")
		return nil
	case err != nil:
		logging.Error("playback failed", "algorithm", cfg.Algorithm, "err", err)
		return err
	}

	if svgOut != "" {
		svg := export.FrameToSVG(s.Frame(), viz.PaletteFor(cfg), 800, 400)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if !plain {
		stats := s.LastStats()
		fmt.Printf("%s sorted %d values in %v\n", stats.Algorithm, stats.Size, time.Since(start).Round(time.Millisecond))
		fmt.Printf("values:    %v\n", s.Display().Values())
		fmt.Printf("compares:  %d\n", stats.Counts.Compares)
		fmt.Printf("swaps:     %d\n", stats.Counts.Swaps)
		fmt.Printf("finalizes: %d\n", stats.Counts.Finalizes)
		fmt.Printf("rate:      %.0f steps/s\n", s.Rate())
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	results, err := bench.Run(cmd.Context(), bench.Config{
		Algorithms: viz.AlgorithmOrder,
		Sizes:      sizes,
		Seed:       cfg.EffectiveSeed(),
		MinValue:   cfg.MinValue,
		MaxValue:   cfg.MaxValue,
	})
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d algorithms\n\n", len(viz.AlgorithmOrder))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tN\tCOMPARES\tSWAPS\tFINALIZES\tEVENTS\tTIME")
	for _, r := range results {
		c := r.Counts
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
			r.Algorithm, r.Size, c.Compares, c.Swaps, c.Finalizes, c.Total(), r.Elapsed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(sizes) > 1 {
		chart := asciigraph.PlotMany(bench.Series(results, viz.AlgorithmOrder),
			asciigraph.Height(12),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("compares vs N %v (%v)", sizes, viz.AlgorithmOrder)))
		fmt.Printf("\n%s\n", chart)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
