package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/fdtd2d/internal/analysis"
	"github.com/san-kum/fdtd2d/internal/analytic"
	"github.com/san-kum/fdtd2d/internal/automation"
	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/experiment"
	"github.com/san-kum/fdtd2d/internal/export"
	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/optim"
	"github.com/san-kum/fdtd2d/internal/probe"
	"github.com/san-kum/fdtd2d/internal/storage"
	"github.com/san-kum/fdtd2d/internal/tui"
	"github.com/san-kum/fdtd2d/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	courant    float64
	workers    int
	kappa      float64
	sigma      float64
	epsR       float64
	frameRate  int
	theme      string
	axis       string
	index      int
	output     string
	sweep      string
	ranges     []string
	target     float64
	measured   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fdtd2d",
		Short: "2D FDTD solver with absorbing layer and chiral panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fdtd2d", "data directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "thermal", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a cross-section and the probe series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&axis, "axis", "x", "section direction (x or y)")
	plotCmd.Flags().IntVar(&index, "index", -1, "node index on the other axis (default centre)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [preset]",
		Short: "run a scenario and write it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	addScenarioFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the final Hz of a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the final Hz of a run as an SVG heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render the final Hz and a cross-section with gonum/plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&output, "output", "o", "", "output file prefix")
	exportPNGCmd.Flags().StringVar(&axis, "axis", "x", "section direction (x or y)")
	exportPNGCmd.Flags().IntVar(&index, "index", -1, "node index on the other axis (default centre)")

	compareCmd := &cobra.Command{
		Use:   "compare [run_id]",
		Short: "compare a band run with the free-space solution",
		Args:  cobra.ExactArgs(1),
		RunE:  compareRun,
	}
	compareCmd.Flags().StringVarP(&output, "output", "o", "", "write the section as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum of the probe series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	transmissionCmd := &cobra.Command{
		Use:   "transmission [preset]",
		Short: "compare measured panel transmission with the analytic slab",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTransmission,
	}
	addScenarioFlags(transmissionCmd)
	transmissionCmd.Flags().Float64Var(&kappa, "kappa", 0, "panel coupling coefficient")
	transmissionCmd.Flags().Float64Var(&sigma, "sigma", 0, "panel conductivity")
	transmissionCmd.Flags().Float64Var(&epsR, "eps", 1, "panel relative permittivity")
	transmissionCmd.Flags().StringVar(&sweep, "sweep", "", "sweep one parameter, as name=lo:hi:n")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize [preset]",
		Short: "grid search panel parameters for a target transmission",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().StringArrayVar(&ranges, "param", nil, "parameter range, as name=lo:hi:n (repeatable)")
	optimizeCmd.Flags().Float64Var(&target, "target", 0.5, "target amplitude transmission")
	optimizeCmd.Flags().BoolVar(&measured, "measured", false, "score simulated rather than analytic transmission")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with a redrawn terminal heatmap",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui [preset]",
		Short: "interactive terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(nil)
			}
			cfg := config.GetPreset(args[0])
			if cfg == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
			}
			return runInteractive(cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "time sequential and parallel sweeps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, exportPNGCmd,
		compareCmd, analyzeCmd, transmissionCmd, batchCmd, optimizeCmd, liveCmd, tuiCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "time step (default from courant)")
	cmd.Flags().Float64Var(&duration, "time", 0, "simulated duration")
	cmd.Flags().Float64Var(&courant, "courant", 0, "fraction of the stability limit")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines per half-step sweep")
}

// loadScenario resolves preset, then config file, then changed flags.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
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
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("courant") {
		cfg.Courant = courant
		cfg.Dt = 0
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Name)
	result, err := experiment.RunConfig(context.Background(), cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	printResult(runID, result)
	return nil
}

func printResult(runID string, result *experiment.Result) {
	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.Steps)
	fmt.Fprintf(w, "dt\t%.6g\n", result.Dt)
	fmt.Fprintf(w, "time\t%.6g\n", result.Time)
	fmt.Fprintf(w, "peak |Hz|\t%.6g\n", result.Peak)
	fmt.Fprintf(w, "energy\t%.6g (initial %.6g)\n", result.Energy, result.Initial)
	if result.HasFlux {
		fmt.Fprintf(w, "flux\t%.6g\n", result.Flux)
	}
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6f\n", name, val)
	}
	w.Flush()

	for _, warning := range result.Warnings {
		fmt.Println(viz.StatusUnstable.Render("warning: " + warning))
	}
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tGRID\tDURATION\tDT\tSTEPS\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.3f\t%.5f\t%d\t%.4g\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx, run.Ny,
			run.Duration,
			run.Dt,
			run.Steps,
			run.Peak,
		)
	}

	return w.Flush()
}

// loadRunField returns the stored field and the grid it was computed on.
func loadRunField(runID string) (*storage.RunMetadata, *fdtd.Grid, fdtd.Field2D, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, fdtd.Field2D{}, err
	}
	field, err := st.LoadField(runID)
	if err != nil {
		return nil, nil, fdtd.Field2D{}, err
	}
	if meta.Config == nil {
		return nil, nil, fdtd.Field2D{}, fmt.Errorf("run %s has no stored scenario", runID)
	}
	g, err := meta.Config.BuildGrid()
	if err != nil {
		return nil, nil, fdtd.Field2D{}, err
	}
	return meta, g, field, nil
}

// section picks the cross-section requested by --axis and --index.
func section(g *fdtd.Grid, field fdtd.Field2D) ([]float64, []float64, string, error) {
	a, err := probe.ParseAxis(axis)
	if err != nil {
		return nil, nil, "", err
	}
	coords := g.Xs()
	idx := index
	if a == probe.AlongX {
		if idx < 0 {
			idx = g.Ny() / 2
		}
	} else {
		coords = g.Ys()
		if idx < 0 {
			idx = g.Nx() / 2
		}
	}
	values, err := probe.Slice(field, a, idx)
	if err != nil {
		return nil, nil, "", err
	}
	return coords, values, fmt.Sprintf("Hz along %s (index %d)", a, idx), nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, g, field, err := loadRunField(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	viz.SetTheme(theme)
	fmt.Println(viz.Heatmap(field, 60, 20, 0, viz.CurrentTheme))
	fmt.Println()

	_, values, caption, err := section(g, field)
	if err != nil {
		return err
	}
	fmt.Println(viz.SectionGraph(values, 80, 10, caption))
	fmt.Println()

	series, err := storage.New(dataDir).LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Hz) > 0 {
		fmt.Println(viz.SectionGraph(series.Hz, 80, 8, "probe Hz vs time"))
		fmt.Println()
	}
	if len(series.Flux) > 0 {
		fmt.Println(viz.SectionGraph(series.Flux, 80, 8, "cumulative flux vs time"))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	result, err := experiment.RunConfig(context.Background(), cfg)
	if err != nil {
		return err
	}
	if output == "" {
		return storage.WriteJSON(os.Stdout, result)
	}
	if err := storage.ExportJSON(output, result); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", output)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := output
	if path == "" {
		path = runID + "_hz.csv"
	}
	if err := storage.New(dataDir).ExportCSV(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	_, _, field, err := loadRunField(runID)
	if err != nil {
		return err
	}
	path := output
	if path == "" {
		path = runID + "_hz.svg"
	}
	if err := os.WriteFile(path, []byte(export.FieldToSVG(field, 4)), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, g, field, err := loadRunField(runID)
	if err != nil {
		return err
	}
	prefix := output
	if prefix == "" {
		prefix = runID
	}

	fieldPath := prefix + "_hz.png"
	if err := export.FieldPlot(fieldPath, meta.Scenario, g, field); err != nil {
		return err
	}

	coords, values, caption, err := section(g, field)
	if err != nil {
		return err
	}
	sectionPath := prefix + "_section.png"
	if err := export.SectionPlot(sectionPath, caption, axis, coords, export.Series{Name: "Hz", Values: values}); err != nil {
		return err
	}

	fmt.Printf("exported %s and %s\n", fieldPath, sectionPath)
	return nil
}

func compareRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, g, field, err := loadRunField(runID)
	if err != nil {
		return err
	}

	pulse := meta.Config.Pulse
	var coords, section []float64
	var center float64
	switch pulse.Shape {
	case "band-x":
		coords, center = g.Xs(), pulse.CenterX
		section, err = probe.Slice(field, probe.AlongX, g.NearestY(meta.Config.Probe.Y))
	case "band-y":
		coords, center = g.Ys(), pulse.CenterY
		section, err = probe.Slice(field, probe.AlongY, g.NearestX(meta.Config.Probe.X))
	default:
		return fmt.Errorf("run %s uses a %s pulse; compare needs band-x or band-y", runID, pulse.Shape)
	}
	if err != nil {
		return err
	}

	simulated := float64(meta.Steps) * meta.Dt
	want := analytic.TravelingWave(coords, center, pulse.Width, simulated)
	for k := range want {
		want[k] *= pulse.Amplitude
	}

	corr, err := analysis.Correlation(section, want)
	if err != nil {
		return err
	}
	rms, err := analysis.RMSError(section, want)
	if err != nil {
		return err
	}
	left, right, err := analysis.PeakPositions(coords, section, center)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "time\t%.4f\n", simulated)
	fmt.Fprintf(w, "correlation\t%.5f\n", corr)
	fmt.Fprintf(w, "rms error\t%.5f\n", rms)
	fmt.Fprintf(w, "peaks\t%.3f, %.3f (expected %.3f, %.3f)\n", left, right, center-simulated, center+simulated)
	if err := w.Flush(); err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(export.SectionToSVG(coords, section, 800, 300, "#ff8844")), 0644); err != nil {
			return err
		}
		fmt.Printf("section written to %s\n", output)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Hz) < 4 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	n := 1
	for n < len(series.Hz) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, series.Hz)

	freqs, power, err := analysis.PowerSpectrum(padded, meta.Dt)
	if err != nil {
		return err
	}
	fmt.Println(viz.SectionGraph(power[:max(2, len(power)/4)], 80, 15, "power spectrum (probe Hz)"))
	fmt.Println()

	peak, err := analysis.DominantFrequency(padded, meta.Dt)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.4f\n", peak)
	if peak > 0 {
		fmt.Printf("period: %.4f\n", 1.0/peak)
	}
	fmt.Printf("resolution: %.4f\n", freqs[1])
	return nil
}

func runTransmission(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"chiral-panel"}
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Panel == nil {
		return fmt.Errorf("scenario %s has no panel", cfg.Name)
	}

	flags := cmd.Flags()
	if flags.Changed("kappa") {
		cfg.Panel.Kappa = kappa
	}
	if flags.Changed("sigma") {
		cfg.Panel.Sigma = sigma
	}
	if flags.Changed("eps") {
		cfg.Panel.EpsR = epsR
	}

	if sweep != "" {
		return runSweep(cfg)
	}

	res, err := experiment.Transmission(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "panel\teps=%g sigma=%g kappa=%g width=%g\n", res.Slab.EpsR, res.Slab.Sigma, res.Slab.Kappa, res.Slab.Width)
	fmt.Fprintf(w, "flux with panel\t%.6g\n", res.Flux)
	fmt.Fprintf(w, "flux without\t%.6g\n", res.Reference)
	fmt.Fprintf(w, "measured T\t%.4f\n", res.Measured)
	fmt.Fprintf(w, "analytic T\t%.4f\n", res.Analytic)
	fmt.Fprintf(w, "analytic R\t%.4f\n", res.Reflection)
	fmt.Fprintf(w, "difference\t%.4f\n", res.Difference)
	return w.Flush()
}

func runSweep(cfg *config.Config) error {
	name, values, err := optim.ParseRange(sweep)
	if err != nil {
		return err
	}
	points, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: name,
		ParamMin:  values[0],
		ParamMax:  values[len(values)-1],
		NumSteps:  len(values),
	}, os.Stdout)
	if err != nil {
		return err
	}

	measuredT := make([]float64, len(points))
	for i, p := range points {
		measuredT[i] = p.Measured
	}
	fmt.Println()
	fmt.Println(viz.SectionGraph(measuredT, 60, 10, "transmission vs "+name))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario, os.Stdout, st.Save)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tRUN\tPEAK\tENERGY\tTRANSMISSION")
	for _, r := range results {
		if r.Transmission != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%.4f (analytic %.4f)\n", r.Name, r.Transmission.Measured, r.Transmission.Analytic)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.4g\t-\n", r.Name, r.RunID, r.Result.Peak, r.Result.Energy)
	}
	return w.Flush()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	name := "chiral-panel"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if len(ranges) == 0 {
		ranges = []string{"kappa=0:1:11"}
	}

	names := make([]string, 0, len(ranges))
	values := make([][]float64, 0, len(ranges))
	for _, r := range ranges {
		n, v, err := optim.ParseRange(r)
		if err != nil {
			return err
		}
		names = append(names, n)
		values = append(values, v)
	}

	objective := optim.AnalyticTransmission(target)
	if measured {
		objective = optim.MeasuredTransmission(target)
	}

	best, score, err := optim.NewGridSearch(names, values).Search(context.Background(), base, objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", n, best[n])
	}
	fmt.Fprintf(w, "|T - %.3f|\t%.5f\n", target, score)
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	viz.SetTheme(theme)
	renderer := tui.NewLiveRenderer(os.Stdout, frameRate, 70, 22, cfg.Pulse.Amplitude)
	exp.Solver().AddObserver(renderer)

	renderer.Start()
	defer renderer.Stop()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Println()
	printResult("", result)
	return nil
}

func runInteractive(cfg *config.Config) error {
	viz.SetTheme(theme)
	var m tea.Model
	if cfg == nil {
		m = tui.NewInteractiveApp()
	} else {
		m = tui.NewSimApp(cfg)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tPULSE\tDURATION\tPML\tPANEL")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		pml := "-"
		if cfg.PML != nil {
			pml = fmt.Sprintf("%d cells", cfg.PML.Thickness)
		}
		panel := "-"
		if p := cfg.Panel; p != nil {
			panel = fmt.Sprintf("eps=%g sigma=%g kappa=%g", p.EpsR, p.Sigma, p.Kappa)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%g\t%s\t%s\n",
			name, cfg.Grid.Nx, cfg.Grid.Ny, cfg.Pulse.Shape, cfg.Duration, pml, panel)
	}
	return w.Flush()
}

func benchPreset(cmd *cobra.Command, args []string) error {
	name := "gaussian"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tSTEPS\tELAPSED\tSTEPS/SEC\tMATCH")

	var reference fdtd.Field2D
	for _, n := range []int{1, 2, 4, runtime.NumCPU()} {
		cfg := base.Clone()
		cfg.Workers = n
		result, err := experiment.RunConfig(context.Background(), cfg)
		if err != nil {
			return err
		}
		if n == 1 {
			reference = result.Field
		}
		rate := float64(result.Steps) / result.Elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%v\n",
			n, result.Steps, result.Elapsed.Round(time.Millisecond), rate, result.Field.Equal(reference))
	}
	return w.Flush()
}
