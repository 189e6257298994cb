package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/eschmidt42/hardspheres-2d/internal/analysis"
	"github.com/eschmidt42/hardspheres-2d/internal/config"
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/export"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
	"github.com/eschmidt42/hardspheres-2d/internal/metrics"
	"github.com/eschmidt42/hardspheres-2d/internal/storage"
	"github.com/eschmidt42/hardspheres-2d/internal/sweep"
	"github.com/eschmidt42/hardspheres-2d/internal/viz"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	seed        int64
	recordEvery int
	label       string
	// Lattice parameters
	rows        int
	cols        int
	spacing     float64
	jitter      float64
	radius      float64
	mass        float64
	temperature float64
	// Config file and preset
	configFile string
	preset     string
	// Histogram bins
	bins int
	// SVG export
	outPath    string
	diskIndex  int
	seriesName string
	svgWidth   int
	// Sweep plan bootstrap
	sweepInit bool
	// SSH server
	host        string
	port        string
	hostKeyPath string
)

// main wires up the CLI; running without a subcommand opens the live view.
func main() {
	rootCmd := &cobra.Command{
		Use:   "hardspheres",
		Short: "2d hard-sphere gas simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hardspheres", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trajectory",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "keep every k-th state")
	runCmd.Flags().StringVar(&label, "label", "gas", "run label")
	runCmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "lattice rows")
	runCmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "lattice columns")
	runCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "lattice spacing")
	runCmd.Flags().Float64Var(&jitter, "jitter", config.DefaultJitter, "lattice jitter fraction")
	runCmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "disk radius")
	runCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "disk mass")
	runCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "sampling temperature kT")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run aggregates",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "speed histogram against maxwell-boltzmann",
		Args:  cobra.ExactArgs(1),
		RunE:  histRun,
	}
	histCmd.Flags().IntVar(&bins, "bins", 20, "histogram bins")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "correlation, diffusion and pressure analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "lattice rows")
	liveCmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "lattice columns")
	liveCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "lattice spacing")
	liveCmd.Flags().Float64Var(&jitter, "jitter", config.DefaultJitter, "lattice jitter fraction")
	liveCmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "disk radius")
	liveCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "disk mass")
	liveCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "sampling temperature kT")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the live view over ssh",
		RunE:  serveSSH,
	}
	serveCmd.Flags().StringVar(&host, "host", "localhost", "address to listen on")
	serveCmd.Flags().StringVar(&port, "port", "23234", "port to listen on")
	serveCmd.Flags().StringVar(&hostKeyPath, "host-key", ".ssh/hardspheres_ed25519", "ssh host key path")
	serveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	serveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	serveCmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "lattice rows")
	serveCmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "lattice columns")
	serveCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "lattice spacing")
	serveCmd.Flags().Float64Var(&jitter, "jitter", config.DefaultJitter, "lattice jitter fraction")
	serveCmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "disk radius")
	serveCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "disk mass")
	serveCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "sampling temperature kT")
	serveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	serveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "run.svg", "output file")
	exportSVGCmd.Flags().IntVar(&diskIndex, "disk", -1, "trajectory of one disk instead of the final snapshot")
	exportSVGCmd.Flags().StringVar(&seriesName, "series", "", "metric trace instead of the snapshot (energy, temperature, momentum, speed)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISKS\tSPACING\tRADIUS\tKT\tDT\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.4f\t%.1fs\n",
					name, p.Gas.Rows*p.Gas.Cols, p.Gas.Spacing, p.Gas.Radius,
					p.Gas.Temperature, p.Dt, p.Duration)
			}
			return w.Flush()
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [plan.yaml]",
		Short: "pressure sweep across spacing and temperature",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().BoolVar(&sweepInit, "init", false, "write a default plan and exit")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping across lattice sizes",
		RunE:  benchGas,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, histCmd, analyzeCmd, liveCmd, serveCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves the effective configuration: defaults, then
// preset, then config file, then explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		pc := *p
		cfg = &pc
	}

	// Config file overrides preset, explicit flags override both.
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if cmd.Flags().Changed("rows") {
		cfg.Gas.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Gas.Cols = cols
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Gas.Spacing = spacing
	}
	if cmd.Flags().Changed("jitter") {
		cfg.Gas.Jitter = jitter
	}
	if cmd.Flags().Changed("radius") {
		cfg.Gas.Radius = radius
	}
	if cmd.Flags().Changed("mass") {
		cfg.Gas.Mass = mass
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Gas.Temperature = temperature
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st, err := cfg.BuildState()
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	runner := engine.NewRunner()
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMomentumDrift())
	runner.AddMetric(metrics.NewTemperature())
	runner.AddMetric(metrics.NewCollisionRate())
	runner.AddMetric(metrics.NewWallPressure())
	runner.AddMetric(metrics.NewMaxOverlap())

	fmt.Printf("running %d-disk simulation...\n", st.N())
	start := time.Now()

	result, err := runner.Run(context.Background(), st, cfg.RunConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := store.Save(label, cfg.Dt, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("collisions: %d\n", result.Resolutions)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tDURATION\tDT\tDISKS\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.N,
			run.Resolutions,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := store.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("disks: %d\n", meta.N)
	fmt.Printf("samples: %d\n\n", len(states))

	series := []struct {
		name string
		f    func(*gas.State) float64
	}{
		{"kinetic energy", func(s *gas.State) float64 { return s.KineticEnergy() }},
		{"temperature", func(s *gas.State) float64 { return s.Temperature() }},
		{"momentum magnitude", func(s *gas.State) float64 { return s.Momentum().Length() }},
		{"max speed", maxSpeed},
	}

	for _, sr := range series {
		data := make([]float64, len(states))
		for i, s := range states {
			data[i] = sr.f(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func maxSpeed(s *gas.State) float64 {
	max := 0.0
	for _, v := range s.Vel {
		if sp := v.Length(); sp > max {
			max = sp
		}
	}
	return max
}

func histRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := store.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data")
	}

	final := states[len(states)-1]
	hist := analysis.SpeedHistogram(final, bins)
	if hist == nil {
		return fmt.Errorf("empty histogram")
	}

	kT := final.Temperature()
	meanMass := 0.0
	for _, m := range final.Mass {
		meanMass += m
	}
	meanMass /= float64(final.N())
	pdf := analysis.MaxwellBoltzmannPDF(meanMass, kT)

	fmt.Printf("speed distribution: %s\n", meta.ID)
	fmt.Printf("disks: %d, kT: %.4f\n\n", final.N(), kT)

	graph := asciigraph.Plot(hist.Density,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("measured speed density"),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPEED\tMEASURED\tMAXWELL-BOLTZMANN")
	for i, c := range hist.Centers() {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\n", c, hist.Density[i], pdf(c))
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := store.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) < 2 {
		return fmt.Errorf("not enough samples to analyze")
	}

	sampleDt := times[1] - times[0]

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("samples: %d, sample dt: %.4fs\n\n", len(states), sampleDt)

	vacf := analysis.VelocityAutocorrelation(states)
	graph := asciigraph.Plot(vacf,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity autocorrelation"),
	)
	fmt.Println(graph)
	fmt.Println()

	ps := analysis.PowerSpectrum(vacf)
	graph = asciigraph.Plot(ps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("vacf power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	freq := float64(maxIdx) / (sampleDt * float64(len(vacf)))
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	fmt.Println()

	msd := analysis.MeanSquaredDisplacement(states)
	graph = asciigraph.Plot(msd,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean squared displacement"),
	)
	fmt.Println(graph)
	fmt.Println()

	d := analysis.DiffusionCoefficient(msd, sampleDt)
	fmt.Printf("diffusion coefficient: %.6f\n", d)

	final := states[len(states)-1]
	virial := analysis.PressureVirial(final, meta.Metrics["collision_rate"])
	fmt.Printf("virial pressure: %.6f\n", virial)
	if wall, ok := meta.Metrics["wall_pressure"]; ok {
		fmt.Printf("wall pressure: %.6f\n", wall)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st, err := cfg.BuildState()
	if err != nil {
		return err
	}

	m := viz.NewModel(st, cfg.Dt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

func serveSSH(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st, err := cfg.BuildState()
	if err != nil {
		return err
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			gasMiddleware(st, cfg.Dt),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", "host", host, "port", port, "disks", st.N())
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("server error", "err", err)
			done <- nil
		}
	}()

	<-done
	log.Info("stopping ssh server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}

	return nil
}

// gasMiddleware runs a fresh live view for every session; the model
// clones the state, so clients never share a gas.
func gasMiddleware(st *gas.State, dt float64) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			_, _, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "error: pty required, connect with ssh -t")
				return
			}

			m := viz.NewModel(st, dt)
			p := tea.NewProgram(m,
				tea.WithInput(sess),
				tea.WithOutput(sess),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				log.Error("session error", "user", sess.User(), "err", err)
			}

			next(sess)
		}
	}
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	states, times, err := store.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < states[0].N(); i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, st := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for j := 0; j < st.N(); j++ {
			row = append(row,
				strconv.FormatFloat(st.Pos[j].X, 'f', 6, 64),
				strconv.FormatFloat(st.Pos[j].Y, 'f', 6, 64),
				strconv.FormatFloat(st.Vel[j].X, 'f', 6, 64),
				strconv.FormatFloat(st.Vel[j].Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := store.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &engine.Result{
		States:      states,
		Times:       times,
		Metrics:     meta.Metrics,
		Resolutions: meta.Resolutions,
		WallImpulse: meta.WallImpulse,
		EnergyDrift: meta.EnergyDrift,
	}

	return export.ExportJSONStdout(meta.Label, meta.Dt, meta.Duration, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	states, _, err := store.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	var doc string
	switch {
	case seriesName != "":
		f, err := seriesFunc(seriesName)
		if err != nil {
			return err
		}
		values := make([]float64, len(states))
		for i, st := range states {
			values[i] = f(st)
		}
		doc = export.SeriesToSVG(values, svgWidth, svgWidth*2/3, "#00ff88")
	case diskIndex >= 0:
		if diskIndex >= states[0].N() {
			return fmt.Errorf("disk %d out of range (run has %d disks)", diskIndex, states[0].N())
		}
		points := make([]gas.Vec2, len(states))
		for i, st := range states {
			points[i] = st.Pos[diskIndex]
		}
		b := states[0].Bounds
		svgHeight := int(float64(svgWidth) * b.Height / b.Width)
		doc = export.TrajectoryToSVG(points, svgWidth, svgHeight, "#00ff88")
	default:
		doc = export.StateToSVG(states[len(states)-1], svgWidth)
	}
	if doc == "" {
		return fmt.Errorf("nothing to render")
	}

	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func seriesFunc(name string) (func(*gas.State) float64, error) {
	switch name {
	case "energy":
		return func(s *gas.State) float64 { return s.KineticEnergy() }, nil
	case "temperature":
		return func(s *gas.State) float64 { return s.Temperature() }, nil
	case "momentum":
		return func(s *gas.State) float64 { return s.Momentum().Length() }, nil
	case "speed":
		return maxSpeed, nil
	}
	return nil, fmt.Errorf("unknown series: %s (available: energy, temperature, momentum, speed)", name)
}

func runSweep(cmd *cobra.Command, args []string) error {
	planPath := "sweep.yaml"
	if len(args) > 0 {
		planPath = args[0]
	}

	if sweepInit {
		if err := sweep.Save(planPath, sweep.DefaultPlan()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", planPath)
		return nil
	}

	plan := sweep.DefaultPlan()
	if len(args) > 0 {
		p, err := sweep.Load(planPath)
		if err != nil {
			return err
		}
		plan = p
	}

	fmt.Printf("sweep: %s (%d cells)\n", plan.Name, len(plan.Spacings)*len(plan.Temperatures))
	start := time.Now()

	points, err := sweep.Run(context.Background(), plan, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPACING\tKT\tPACKING\tPRESSURE\tIDEAL\tZ\tRATE")
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.4f\t%.6f\t%.6f\t%.4f\t%.2f\n",
			p.Spacing, p.Temperature, p.Packing, p.Pressure, p.IdealPressure, p.Z, p.CollisionRate)
	}

	return w.Flush()
}

func benchGas(cmd *cobra.Command, args []string) error {
	sizes := []int{4, 8, 16}
	dts := []float64{0.001, 0.005, 0.01}

	fmt.Printf("benchmarking lattice gas\n\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DISKS\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		for _, dt := range dts {
			cfg := config.DefaultConfig()
			cfg.Seed = 42
			cfg.Dt = dt
			cfg.Duration = 1.0
			cfg.RecordEvery = int(cfg.Duration / cfg.Dt)
			cfg.Gas.Rows = size
			cfg.Gas.Cols = size

			st, err := cfg.BuildState()
			if err != nil {
				return err
			}

			runner := engine.NewRunner()
			start := time.Now()
			result, err := runner.Run(context.Background(), st, cfg.RunConfig())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
				st.N(), dt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
