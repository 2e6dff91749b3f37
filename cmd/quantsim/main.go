package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/quantsim/internal/analysis"
	"github.com/san-kum/quantsim/internal/automation"
	"github.com/san-kum/quantsim/internal/config"
	"github.com/san-kum/quantsim/internal/experiment"
	"github.com/san-kum/quantsim/internal/export"
	"github.com/san-kum/quantsim/internal/metrics"
	"github.com/san-kum/quantsim/internal/optim"
	"github.com/san-kum/quantsim/internal/quantity"
	"github.com/san-kum/quantsim/internal/storage"
	"github.com/san-kum/quantsim/internal/tui"
	"github.com/san-kum/quantsim/internal/viz"
)

var (
	dataDir string
	verbose bool

	configFile string
	runName    string
	mode       string
	method     string
	stepSize   float64
	relTol     float64
	absTol     float64
	maxSteps   int
	noSave     bool

	column  string
	xColumn string
	yColumn string
	svgOut  string
	svgW    int
	svgH    int
	phaseW  int
	phaseH  int

	sweepAxes    []string
	objectiveCol string
)

var (
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	env    config.Env
)

func main() {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if env.NoColor {
		os.Setenv("NO_COLOR", "1")
	}

	rootCmd := &cobra.Command{
		Use:   "quantsim",
		Short: "simulation engine for systems of named quantities",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose || env.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "run store directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation from a preset or definition file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "definition file (yaml)")
	runCmd.Flags().StringVar(&runName, "name", "", "override the run name")
	runCmd.Flags().StringVar(&mode, "mode", "idempotent", "runner mode: plain, idempotent, rebuild, single")
	runCmd.Flags().StringVar(&method, "method", "", "solver method: auto, euler, rk4, rkck54")
	runCmd.Flags().Float64Var(&stepSize, "step", 0, "output step size")
	runCmd.Flags().Float64Var(&relTol, "rel-tol", 0, "relative tolerance (rkck54)")
	runCmd.Flags().Float64Var(&absTol, "abs-tol", 0, "absolute tolerance (rkck54)")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "adaptive step budget")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip the run store")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart stored result columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot a single column")

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "per-column summary of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "braille phase portrait of two stored columns",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().StringVar(&xColumn, "x", "", "x-axis column (required)")
	phaseCmd.Flags().StringVar(&yColumn, "y", "", "y-axis column (required)")
	phaseCmd.Flags().IntVar(&phaseW, "width", 48, "canvas width in cells")
	phaseCmd.Flags().IntVar(&phaseH, "height", 16, "canvas height in cells")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one column",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "", "column to analyze (default: first)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored result as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored result as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one column as an SVG line chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVGRun,
	}
	exportSVGCmd.Flags().StringVar(&column, "column", "", "column to chart (required)")
	exportSVGCmd.Flags().StringVar(&xColumn, "x", "", "column for the x axis (default: row index)")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default: stdout)")
	exportSVGCmd.Flags().IntVar(&svgW, "width", 800, "chart width")
	exportSVGCmd.Flags().IntVar(&svgH, "height", 400, "chart height")

	modulesCmd := &cobra.Command{
		Use:   "modules",
		Short: "list the modules of every library",
		RunE:  listModules,
	}

	quantitiesCmd := &cobra.Command{
		Use:   "quantities [library]",
		Short: "list the quantities a library reads and writes",
		Args:  cobra.ExactArgs(1),
		RunE:  listQuantities,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "play a stored result back interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  liveRun,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "time every solver method on one definition",
		Args:  cobra.ExactArgs(1),
		RunE:  benchPreset,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "grid-search parameters, minimizing a column's final value",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepPreset,
	}
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "param", nil, "axis as name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&objectiveCol, "objective", "", "column to minimize (required)")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, statsCmd, phaseCmd,
		analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, modulesCmd,
		quantitiesCmd, presetsCmd, liveCmd, batchCmd, benchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDefinition turns the run command's argument and flags into a
// definition: a preset name or a --config file, with explicit flags
// winning over both, and QUANTSIM_METHOD below flags.
func resolveDefinition(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case len(args) == 1 && configFile != "":
		return nil, fmt.Errorf("give either a preset name or --config, not both")
	case len(args) == 1:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see: quantsim presets)", args[0])
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		return nil, fmt.Errorf("give a preset name or --config (see: quantsim presets)")
	}

	if runName != "" {
		cfg.Name = runName
	}
	if cmd.Flags().Changed("method") {
		cfg.Solver.Method = method
	} else if env.Method != "" {
		cfg.Solver.Method = env.Method
	}
	if cmd.Flags().Changed("step") {
		cfg.Solver.StepSize = stepSize
	}
	if cmd.Flags().Changed("rel-tol") {
		cfg.Solver.RelTol = relTol
	}
	if cmd.Flags().Changed("abs-tol") {
		cfg.Solver.AbsTol = absTol
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveDefinition(cmd, args)
	if err != nil {
		return err
	}
	logger.Debug("definition resolved",
		"name", cfg.Name,
		"method", cfg.Solver.Method,
		"direct", len(cfg.Direct),
		"differential", len(cfg.Differential))

	runner, err := experiment.Build(cfg, mode)
	if err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()
	result, err := runner.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	report := ""
	if rep, ok := runner.(interface{ Report() string }); ok {
		report = rep.Report()
	}

	fmt.Printf("completed in %v\n", elapsed)
	if report != "" {
		fmt.Println(report)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, report, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println()
	return writeSummary(result)
}

func writeSummary(result quantity.Frame) error {
	stats := metrics.Summarize(result)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMIN\tMAX\tMEAN\tFINAL\tDRIFT")
	for _, name := range metrics.Names(stats) {
		s := stats[name]
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.3g\n",
			name, s.Min, s.Max, s.Mean, s.Final, s.Drift)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMETHOD\tROWS\tCOLUMNS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.Rows,
			len(run.Columns),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	cols := result.Columns()
	if column != "" {
		if _, ok := result[column]; !ok {
			return fmt.Errorf("run %s has no column %q (has: %v)", args[0], column, cols)
		}
		cols = []string{column}
	} else if len(cols) > 6 {
		cols = cols[:6]
	}

	for _, c := range cols {
		graph := asciigraph.Plot(result[c],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return writeSummary(result)
}

func phaseRun(cmd *cobra.Command, args []string) error {
	if xColumn == "" || yColumn == "" {
		return fmt.Errorf("--x and --y are required")
	}

	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	plot, err := viz.PhasePlot(result, xColumn, yColumn, phaseW, phaseH)
	if err != nil {
		return err
	}
	fmt.Print(plot)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	col := column
	if col == "" {
		cols := result.Columns()
		if len(cols) == 0 {
			return fmt.Errorf("run %s has no columns", args[0])
		}
		col = cols[0]
	}

	power, n, err := analysis.Spectrum(result, col)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", args[0])
	fmt.Printf("column: %s, rows analyzed: %d\n\n", col, n)

	graph := asciigraph.Plot(power,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", col)),
	)
	fmt.Println(graph)
	fmt.Println()

	if period := analysis.DominantPeriod(power, n); period > 0 {
		fmt.Printf("dominant period: %.3f rows\n", period)
	} else {
		fmt.Println("no dominant period")
	}
	return nil
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return export.CSV(os.Stdout, result)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return export.JSON(os.Stdout, meta.Name, meta.Report, result)
}

func exportSVGRun(cmd *cobra.Command, args []string) error {
	if column == "" {
		return fmt.Errorf("--column is required")
	}

	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	svg, err := export.LineSVG(result, xColumn, column, svgW, svgH)
	if err != nil {
		return err
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func listModules(cmd *cobra.Command, args []string) error {
	libs := experiment.DefaultLibraries()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LIBRARY\tMODULE\tKIND\tFIXED-STEP")
	for _, libName := range libs.Names() {
		reg, err := libs.Library(libName)
		if err != nil {
			return err
		}
		for _, name := range reg.Modules() {
			d, err := reg.Retrieve(name)
			if err != nil {
				return err
			}
			fixed := ""
			if d.FixedStepOnly() {
				fixed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", libName, name, d.Kind(), fixed)
		}
	}
	return w.Flush()
}

func listQuantities(cmd *cobra.Command, args []string) error {
	libs := experiment.DefaultLibraries()
	reg, err := libs.Library(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tQUANTITY\tDIRECTION")
	for _, row := range reg.Quantities() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Module, row.Quantity, row.Direction)
	}
	return w.Flush()
}

func liveRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(meta.Name, result))
	_, err = p.Run()
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	runner := automation.NewRunner(st, logger)

	results, err := runner.RunScenario(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tROWS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.Label, r.RunID, r.Rows)
	}
	return w.Flush()
}

func benchPreset(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset %q (see: quantsim presets)", args[0])
	}

	methods := []string{"euler", "rk4", "rkck54"}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tROWS\tTIME\tREPORT")
	for _, m := range methods {
		cfg := base.Clone()
		cfg.Solver.Method = m

		runner, err := experiment.Build(cfg, "plain")
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := runner.Run()
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", m, err)
			continue
		}

		report := ""
		if rep, ok := runner.(interface{ Report() string }); ok {
			report = firstLine(rep.Report())
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", m, result.Duration(), elapsed, report)
	}
	return w.Flush()
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func sweepPreset(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset %q (see: quantsim presets)", args[0])
	}
	if objectiveCol == "" {
		return fmt.Errorf("--objective is required")
	}

	axes := make([]optim.Axis, 0, len(sweepAxes))
	for _, arg := range sweepAxes {
		name, list, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("malformed --param %q, want name=v1,v2,...", arg)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("malformed --param %q: %w", arg, err)
			}
			values = append(values, v)
		}
		axes = append(axes, optim.Axis{Parameter: name, Values: values})
	}

	search := optim.NewGridSearch(axes...)
	points, err := search.Search(cmd.Context(), base, optim.FinalValue(objectiveCol))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSCORE\tPARAMETERS")
	for i, p := range points {
		fmt.Fprintf(w, "%d\t%.6g\t%s\n", i+1, p.Score, formatParams(p.Parameters))
	}
	return w.Flush()
}

func formatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, params[name])
	}
	return strings.Join(parts, " ")
}
