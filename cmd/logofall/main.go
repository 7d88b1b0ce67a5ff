package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/san-kum/logofall/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	verbose    bool
	// field overrides
	fps    int
	frames int
	size   float64
	width  float64
	height float64
	// headless runs
	scenarioFile string
	sweep        bool
	recordEvery  int
	noSave       bool
	// live view
	cellWidth  float64
	cellHeight float64
	// exports
	outPath  string
	frameIdx int
	trailIdx int
	// serve
	addr string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "logofall",
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
})

func main() {
	rootCmd := &cobra.Command{
		Use:   "logofall",
		Short: "falling logo particle field",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: runLive,
	}

	defaultData := os.Getenv("LOGOFALL_DATA")
	if defaultData == "" {
		defaultData = ".logofall"
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultData, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().Float64Var(&size, "size", 100, "logo size in pixels")
	rootCmd.PersistentFlags().Float64Var(&width, "width", config.DefaultWidth, "viewport width")
	rootCmd.PersistentFlags().Float64Var(&height, "height", config.DefaultHeight, "viewport height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal, following the mouse",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&cellWidth, "cell-width", 10, "viewport pixels per terminal column")
	liveCmd.Flags().Float64Var(&cellHeight, "cell-height", 20, "viewport pixels per terminal row")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the field headless and record the frames",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "pointer scenario file (yaml)")
	runCmd.Flags().BoolVar(&sweep, "sweep", false, "sweep the pointer across the viewport")
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "record one frame out of n")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot highlight and depth over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one recorded frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "recorded frame number (default last)")
	exportSVGCmd.Flags().IntVar(&trailIdx, "trail", -1, "draw the path of one particle instead of a frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %2d logos  size %3.0f  speed %.1f-%.1f  %4.0fx%-4.0f\n",
					name, len(p.Logos), p.Size, p.SpeedMin, p.SpeedMax, p.Viewport.Width, p.Viewport.Height)
			}
			return nil
		},
	}

	defaultAddr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		defaultAddr = ":" + port
	}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the field over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and explicit flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Lookup("scenario") != nil && flags.Changed("scenario") {
		cfg.Scenario = scenarioFile
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("config resolved", "preset", preset, "logos", len(cfg.Logos), "size", cfg.Size,
		"viewport", fmt.Sprintf("%.0fx%.0f", cfg.Viewport.Width, cfg.Viewport.Height), "seed", cfg.Seed)
	return cfg, nil
}
