package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/physgen/gravgen/internal/config"
	"github.com/physgen/gravgen/internal/export"
	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
	"github.com/physgen/gravgen/internal/storage"
	"github.com/physgen/gravgen/internal/task"
	"github.com/physgen/gravgen/internal/viz"
)

var (
	dataDir    string
	samples    int
	seed       int64
	workers    int
	engine     string
	videos     bool
	configFile string
	preset     string
	// preview scenario parameters
	height   float64
	velocity float64
	gravity  float64
	fps      int
	duration float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravgen",
		Short: "gravity physics training data generator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "dataset", "dataset directory")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a batch of task pairs",
		RunE:  runGenerate,
	}
	generateCmd.Flags().IntVar(&samples, "samples", 100, "number of tasks")
	generateCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	generateCmd.Flags().IntVar(&workers, "workers", 1, "parallel workers")
	generateCmd.Flags().StringVar(&engine, "engine", "analytic", "physics engine (analytic, chipmunk, auto)")
	generateCmd.Flags().BoolVar(&videos, "videos", true, "encode ground-truth videos")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	generateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list generated tasks",
		RunE:  listTasks,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [task_id]",
		Short: "plot a task's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTask,
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "play one scenario in the terminal",
		RunE:  runPreview,
	}
	previewCmd.Flags().Float64Var(&height, "height", 15.0, "initial height (m)")
	previewCmd.Flags().Float64Var(&velocity, "velocity", 0.0, "initial velocity (m/s, up positive)")
	previewCmd.Flags().Float64Var(&gravity, "gravity", 9.8, "gravity (m/s^2)")
	previewCmd.Flags().StringVar(&engine, "engine", "analytic", "physics engine")
	previewCmd.Flags().IntVar(&fps, "fps", 15, "frame rate")
	previewCmd.Flags().Float64Var(&duration, "time", 3.0, "simulated duration (s)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [task_id]",
		Short: "export task metadata to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [task_id]",
		Short: "export task trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [task_id]",
		Short: "export task trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	rootCmd.AddCommand(generateCmd, listCmd, plotCmd, previewCmd, presetsCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and config file values.
	if cmd.Flags().Changed("samples") {
		cfg.NumSamples = samples
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine = engine
	}
	if cmd.Flags().Changed("videos") {
		cfg.GenerateVideos = videos
	}
	if cmd.Flags().Changed("data") {
		cfg.OutputDir = dataDir
	} else if cfg.OutputDir == "" {
		cfg.OutputDir = dataDir
	}
	cfg.Seed = seed

	if err := cfg.Validate(); err != nil {
		return err
	}

	st := storage.New(cfg.OutputDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("generating %d tasks (engine=%s, workers=%d, seed=%d)...\n",
		cfg.NumSamples, cfg.Engine, cfg.Workers, cfg.Seed)
	start := time.Now()

	batch := task.NewBatch(cfg, st, cfg.Workers, cfg.Seed)
	pairs, err := batch.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	kinds := map[string]int{}
	withVideo := 0
	for _, pair := range pairs {
		kinds[pair.Scenario.Kind()]++
		if pair.VideoPath != "" {
			withVideo++
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("dataset: %s\n", st.Dir())
	fmt.Printf("videos: %d/%d\n", withVideo, len(pairs))
	fmt.Println("\nscenario kinds:")
	for kind, n := range kinds {
		fmt.Printf("  %s: %d\n", kind, n)
	}

	return nil
}

func listTasks(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tasks, err := st.List()
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("no tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tENGINE\tHEIGHT\tVELOCITY\tGRAVITY\tFRAMES\tVIDEO")

	for _, t := range tasks {
		video := "-"
		if t.VideoPath != "" {
			video = filepath.Ext(t.VideoPath)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fm\t%+.1fm/s\t%.1f\t%d\t%s\n",
			t.ID,
			t.Timestamp.Format("2006-01-02 15:04:05"),
			t.Engine,
			t.Scenario.Height,
			t.Scenario.Velocity,
			t.Scenario.Gravity,
			t.Frames,
			video,
		)
	}

	return w.Flush()
}

func plotTask(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(taskID)
	if err != nil {
		return err
	}

	traj, _, err := st.LoadTrajectory(taskID)
	if err != nil {
		return err
	}
	if len(traj) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("task: %s\n", meta.ID)
	fmt.Printf("prompt: %s\n", meta.Prompt)
	fmt.Printf("samples: %d, selected frame: %d\n\n", len(traj), meta.SelectedFrame)

	heights := make([]float64, len(traj))
	velocities := make([]float64, len(traj))
	for i, s := range traj {
		heights[i] = s.Height
		velocities[i] = s.Velocity
	}

	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("height (m)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(velocities,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity (m/s)"),
	))

	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	eng, err := sim.NewEngine(engine)
	if err != nil {
		return err
	}

	steps := int(duration*float64(fps) + 0.5)
	if steps < 1 {
		steps = 1
	}
	radiusMeters := float64(config.DefaultBallRadius) / config.DefaultPPM
	p := sim.Params{
		Dt:           1.0 / float64(fps),
		Steps:        steps,
		RadiusMeters: radiusMeters,
	}
	sc := scenario.Scenario{
		Height:   height,
		Velocity: velocity,
		Gravity:  gravity,
		Radius:   config.DefaultBallRadius,
	}
	traj := eng.Simulate(sc, p)

	m := viz.NewModel(sc, traj, p.Dt, radiusMeters, eng.Name())
	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "height", "velocity"}); err != nil {
		return err
	}
	for i, s := range traj {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(s.Height, 'f', 6, 64),
			strconv.FormatFloat(s.Velocity, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(taskID)
	if err != nil {
		return err
	}

	traj, times, err := st.LoadTrajectory(taskID)
	if err != nil {
		return err
	}
	if len(traj) == 0 {
		return fmt.Errorf("no data to export")
	}

	dt := 1.0 / float64(meta.FPS)
	if len(times) > 1 {
		dt = times[1] - times[0]
	}

	svg := export.TrajectorySVG(traj, dt, 640, 320)
	path := filepath.Join(dataDir, taskID, "trajectory.svg")
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
