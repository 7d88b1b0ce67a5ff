package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/logofall/internal/config"
	"github.com/san-kum/logofall/internal/export"
	"github.com/san-kum/logofall/internal/field"
	"github.com/san-kum/logofall/internal/loop"
	"github.com/san-kum/logofall/internal/metrics"
	"github.com/san-kum/logofall/internal/scenario"
	"github.com/san-kum/logofall/internal/server"
	"github.com/san-kum/logofall/internal/storage"
	"github.com/san-kum/logofall/internal/tui"
	"github.com/spf13/cobra"
)

func newField(cfg *config.Config) *field.Field {
	f := field.New(cfg.Logos, cfg.Viewport, cfg.FieldConfig(), rand.New(rand.NewSource(cfg.Seed)))
	for _, m := range metrics.Default() {
		f.AddMetric(m)
	}
	return f
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(newField(cfg), tui.Options{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		FPS:        cfg.FPS,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	f := newField(cfg)
	rec := storage.NewRecorder(recordEvery)
	f.AddObserver(rec)

	var sc *scenario.Scenario
	switch {
	case cfg.Scenario != "":
		sc, err = scenario.Load(cfg.Scenario)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
	case sweep:
		sc = scenario.Sweep(cfg.Viewport, max(1, cfg.Frames/2), 2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running %d frames with %d logos...\n", cfg.Frames, f.Len())
	start := time.Now()

	n, err := loop.Run(ctx, cfg.Frames, func(frame int) {
		if sc != nil {
			sc.Apply(f, frame)
		}
		f.Step(cfg.Viewport)
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("run interrupted", "frames", n)
	}

	elapsed := time.Since(start)
	results := f.Metrics()

	fmt.Printf("completed %d frames in %v\n", n, elapsed)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, results[name])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Preset:    preset,
		Seed:      cfg.Seed,
		Frames:    n,
		Particles: f.Len(),
		Size:      cfg.Size,
		SpeedMin:  cfg.SpeedMin,
		SpeedMax:  cfg.SpeedMax,
		Viewport:  cfg.Viewport,
		Scenario:  cfg.Scenario,
		Metrics:   results,
	}
	if sc != nil && meta.Scenario == "" {
		meta.Scenario = sc.Name
	}

	runID, err := st.Save(meta, rec.Frames())
	if err != nil {
		return err
	}
	logger.Debug("run stored", "dir", dataDir, "id", runID)
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tLOGOS\tVIEWPORT\tHIGHLIGHT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0fx%.0f\t%.4f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Viewport.Width,
			run.Viewport.Height,
			run.Metrics["highlight_ratio"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("logos: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(frames))

	highlighted := make([]float64, len(frames))
	depth := make([]float64, len(frames))
	for i, fr := range frames {
		highlighted[i] = float64(metrics.Highlighted(fr.Particles))
		sum := 0.0
		for _, p := range fr.Particles {
			sum += p.Position.Y
		}
		if len(fr.Particles) > 0 {
			depth[i] = sum / float64(len(fr.Particles))
		}
	}

	fmt.Println(asciigraph.Plot(highlighted,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("highlighted logos"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(depth,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean y (px)"),
	))

	return nil
}

func output() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportJSON(w, args[0]); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no recorded frames", runID)
	}

	var svg string
	if trailIdx >= 0 {
		points := make([]field.Vec2, 0, len(frames))
		for _, fr := range frames {
			if trailIdx < len(fr.Particles) {
				points = append(points, fr.Particles[trailIdx].Position)
			}
		}
		if len(points) < 2 {
			return fmt.Errorf("particle %d has fewer than two recorded positions", trailIdx)
		}
		svg = export.TrailToSVG(points, meta.Viewport, meta.Size, "#60a5fa")
	} else {
		fr := frames[len(frames)-1]
		if frameIdx >= 0 {
			i := sort.Search(len(frames), func(i int) bool { return frames[i].Index >= frameIdx })
			if i == len(frames) || frames[i].Index != frameIdx {
				return fmt.Errorf("frame %d not recorded in run %s", frameIdx, runID)
			}
			fr = frames[i]
		}
		svg = export.SnapshotToSVG(fr.Particles, meta.Viewport, meta.Size)
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(newField(cfg), cfg, logger).Run(ctx, addr)
}
