package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/export"
	"github.com/san-kum/chaoslab/internal/integrators"
	"github.com/san-kum/chaoslab/internal/metrics"
	"github.com/san-kum/chaoslab/internal/physics"
	"github.com/san-kum/chaoslab/internal/sim"
	"github.com/san-kum/chaoslab/internal/viz"
)

var (
	lorenzParams   = []string{"sigma", "rho", "beta", "dt", "trail_length"}
	pendulumParams = []string{"gravity", "damping", "length1", "length2", "mass1", "mass2", "dt", "friction", "trail_length"}
)

const (
	plotCols = 60
	plotRows = 20
)

func (a *app) newLorenz(cmd *cobra.Command, preset string) (*physics.Lorenz, error) {
	if err := a.applyModelPreset("lorenz", preset); err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(a.cfg.Integrator)
	if err != nil {
		return nil, err
	}
	l, err := physics.NewLorenz(a.cfg.Lorenz, physics.WithLorenzIntegrator(integ))
	if err != nil {
		return nil, err
	}
	set, err := overrides(cmd, lorenzParams...)
	if err != nil {
		return nil, err
	}
	return l, l.UpdateParams(set)
}

func (a *app) lorenzCmd() *cobra.Command {
	var (
		preset  string
		steps   int
		out     string
		plotSVG string
	)
	cmd := &cobra.Command{
		Use:   "lorenz",
		Short: "integrate the Lorenz system and plot its trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLorenz(cmd, preset)
			if err != nil {
				return err
			}
			n, err := a.stepCount(cmd, steps)
			if err != nil {
				return err
			}

			start := time.Now()
			pts := l.CalculateSteps(n)
			a.logger.Info("lorenz run completed",
				"steps", n, "integrator", a.cfg.Integrator,
				"chaotic", l.IsChaotic(), "duration_ms", time.Since(start).Milliseconds())

			w := cmd.OutOrStdout()
			p := l.Position()
			fmt.Fprintf(w, "lorenz %s\n", export.SortedParams(l.GetParams()))
			fmt.Fprintf(w, "final (%.4f, %.4f, %.4f)  chaotic: %v\n\n", p.X, p.Y, p.Z, l.IsChaotic())

			// x against z, z drawn upward.
			trail := l.Trail()
			plane := make([]dynamo.Point2, len(trail))
			for i, q := range trail {
				plane[i] = dynamo.Point2{X: q.X, Y: -q.Z}
			}
			c := viz.NewCanvas(plotCols, plotRows)
			c.PlotPath(viz.FitPoints(plane, 0), plane)
			fmt.Fprint(w, c.String())

			xs := make([]float64, 0, len(pts))
			for _, q := range tail(pts, 200) {
				xs = append(xs, q.X)
			}
			fmt.Fprintln(w, viz.PlotSeries(xs, "x(t), last 200 steps", plotCols, 8))

			if err := a.savePlot(cmd, plotSVG, c); err != nil {
				return err
			}
			return a.save(cmd, out, export.FromPoints3("lorenz", l.GetParams(), pts))
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "lorenz preset")
	cmd.Flags().IntVar(&steps, "steps", 0, "integration steps (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "export trajectory (.json, .csv, .svg)")
	cmd.Flags().StringVar(&plotSVG, "plot-svg", "", "write the terminal plot as SVG")
	paramFlags(cmd, lorenzParams...)
	return cmd
}

func tail[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

type pendulumStart struct {
	seed           int64
	theta1, theta2 float64
}

// initial is the seeded state unless --theta1/--theta2 were given.
func (ps pendulumStart) initial(cmd *cobra.Command) physics.PendulumState {
	s := physics.SeededPendulumState(ps.seed)
	if cmd.Flags().Changed("theta1") {
		s.Theta1 = ps.theta1
	}
	if cmd.Flags().Changed("theta2") {
		s.Theta2 = ps.theta2
	}
	return s
}

func (ps *pendulumStart) register(cmd *cobra.Command, defaultSeed int64) {
	cmd.Flags().Int64Var(&ps.seed, "seed", defaultSeed, "seed for the initial angles")
	cmd.Flags().Float64Var(&ps.theta1, "theta1", 0, "initial angle of the inner arm (rad)")
	cmd.Flags().Float64Var(&ps.theta2, "theta2", 0, "initial angle of the outer arm (rad)")
}

func (a *app) pendulumParams(cmd *cobra.Command, preset, equations string) (physics.PendulumParams, error) {
	if err := a.applyModelPreset("pendulum", preset); err != nil {
		return physics.PendulumParams{}, err
	}
	p := a.cfg.Pendulum
	if cmd.Flags().Changed("equations") {
		p.Equations = equations
	}
	return p, nil
}

func (a *app) newPendulum(cmd *cobra.Command, p physics.PendulumParams, s physics.PendulumState) (*physics.DoublePendulum, error) {
	d, err := physics.NewDoublePendulum(p, s)
	if err != nil {
		return nil, err
	}
	set, err := overrides(cmd, pendulumParams...)
	if err != nil {
		return nil, err
	}
	return d, d.UpdateParams(set)
}

func (a *app) pendulumCmd() *cobra.Command {
	var (
		preset    string
		equations string
		steps     int
		ensemble  int
		out       string
		plotSVG   string
		start     pendulumStart
	)
	cmd := &cobra.Command{
		Use:   "pendulum",
		Short: "integrate the double pendulum and report energy",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				start.seed = a.cfg.Seed
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pendulumParams(cmd, preset, equations)
			if err != nil {
				return err
			}
			n, err := a.stepCount(cmd, steps)
			if err != nil {
				return err
			}
			if ensemble > 0 {
				if cmd.Flags().Changed("theta1") || cmd.Flags().Changed("theta2") {
					return fmt.Errorf("--theta1/--theta2 cannot be combined with --ensemble: members start from seeds %d..%d", start.seed, start.seed+int64(ensemble)-1)
				}
				return a.runEnsemble(cmd, p, start, ensemble, n)
			}

			d, err := a.newPendulum(cmd, p, start.initial(cmd))
			if err != nil {
				return err
			}
			drift := metrics.NewEnergyDrift(d)
			energies := make([]float64, 0, n+1)
			energies = append(energies, d.TotalEnergy())
			drift.ObserveEnergy(energies[0])
			path := make([]dynamo.Point2, 0, n)

			began := time.Now()
			for range n {
				path = append(path, d.Step())
				e := d.TotalEnergy()
				drift.ObserveEnergy(e)
				energies = append(energies, e)
			}
			a.logger.Info("pendulum run completed",
				"steps", n, "equations", d.Params().Equations,
				"energy_drift", drift.Value(), "duration_ms", time.Since(began).Milliseconds())

			w := cmd.OutOrStdout()
			s := d.State()
			eb := d.EnergyBreakdown()
			fmt.Fprintf(w, "pendulum %s equations=%s\n", export.SortedParams(d.GetParams()), d.Params().Equations)
			fmt.Fprintf(w, "final θ1=%.4f θ2=%.4f ω1=%.4f ω2=%.4f\n", s.Theta1, s.Theta2, s.Omega1, s.Omega2)
			fmt.Fprintf(w, "energy T=%.4f V=%.4f total=%.4f (initial %.4f, max drift %.2e)\n\n",
				eb.T1+eb.T2, eb.V1+eb.V2, eb.Total(), drift.Initial(), drift.Value())

			c := viz.NewCanvas(plotCols/2, plotRows)
			c.DrawPendulum(d.Positions(), d.Trail(), viz.PendulumReach(d.Params()))
			fmt.Fprint(w, c.String())
			fmt.Fprintln(w, viz.PlotSeries(tail(energies, 400), "total energy", plotCols, 8))

			if err := a.savePlot(cmd, plotSVG, c); err != nil {
				return err
			}
			return a.save(cmd, out, export.FromPoints2("pendulum", d.GetParams(), path))
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "pendulum preset")
	cmd.Flags().StringVar(&equations, "equations", physics.EquationsReference, "equations of motion: reference or lagrangian")
	cmd.Flags().IntVar(&steps, "steps", 0, "integration steps (default from config)")
	cmd.Flags().IntVar(&ensemble, "ensemble", 0, "run this many seeded pendulums side by side")
	cmd.Flags().StringVarP(&out, "out", "o", "", "export outer bob path (.json, .csv, .svg)")
	cmd.Flags().StringVar(&plotSVG, "plot-svg", "", "write the terminal drawing as SVG")
	start.register(cmd, 1)
	paramFlags(cmd, pendulumParams...)
	return cmd
}

// runEnsemble integrates pendulums seeded seed, seed+1, ... concurrently and
// tabulates how far apart they end up.
func (a *app) runEnsemble(cmd *cobra.Command, p physics.PendulumParams, start pendulumStart, size, steps int) error {
	members := make([]sim.Member, size)
	var dt float64
	for i := range members {
		st := physics.SeededPendulumState(start.seed + int64(i))
		d, err := a.newPendulum(cmd, p, st)
		if err != nil {
			return err
		}
		dt = d.Params().Dt
		members[i] = sim.Member{
			System:     d,
			Integrator: integrators.NewRK4(),
			X0:         dynamo.State{st.Theta1, st.Theta2, st.Omega1, st.Omega2},
			Metrics:    []metrics.Metric{metrics.NewEnergy(d), metrics.NewEnergyDrift(d), metrics.NewStability(1e6)},
		}
	}

	cfg := sim.Config{Dt: dt, Steps: steps, ValidateState: true}
	results, err := sim.RunEnsemble(cmd.Context(), members, cfg, a.cfg.Render.Workers)
	if err != nil {
		return err
	}
	a.logger.Info("pendulum ensemble completed", "members", size, "steps", steps)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tθ1(0)\tθ2(0)\tθ1\tθ2\tMEAN E\tDRIFT\tSTABLE")
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, r := range results {
		x0, xf := r.States[0], r.Final()
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.2e\t%.3f\n",
			start.seed+int64(i), x0[0], x0[1], xf[0], xf[1],
			r.Metrics["energy"], r.Metrics["energy_drift"], r.Metrics["stability"])
		lo, hi = math.Min(lo, xf[1]), math.Max(hi, xf[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nθ2 spread after %d steps: %.4f rad\n", steps, hi-lo)
	return nil
}

func (a *app) compareCmd() *cobra.Command {
	var (
		preset string
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run the Lorenz system under several integrators from the same start",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = integrators.Names()
			}
			l, err := a.newLorenz(cmd, preset)
			if err != nil {
				return err
			}
			n, err := a.stepCount(cmd, steps)
			if err != nil {
				return err
			}
			x0 := dynamo.State{physics.DefaultLorenzStart.X, physics.DefaultLorenzStart.Y, physics.DefaultLorenzStart.Z}

			results := make([]*sim.Result, len(names))
			for i, name := range names {
				integ, err := integrators.ByName(name)
				if err != nil {
					return err
				}
				s := sim.New(l, integ)
				s.AddMetric(metrics.NewStability(1e6))
				if results[i], err = s.Run(cmd.Context(), x0, sim.Config{Dt: l.Params().Dt, Steps: n}); err != nil {
					return err
				}
			}
			return printComparison(cmd.OutOrStdout(), names, results)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "lorenz preset")
	cmd.Flags().IntVar(&steps, "steps", 0, "integration steps (default from config)")
	paramFlags(cmd, lorenzParams...)
	return cmd
}

// printComparison reports each run's end point and its distance from the
// first run, plus the step at which that distance first exceeded 1.
func printComparison(w io.Writer, names []string, results []*sim.Result) error {
	ref := results[0]
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INTEGRATOR\tX\tY\tZ\tDISTANCE\tSPLIT AT\tSTABLE")
	for i, r := range results {
		f := r.Final()
		split := "-"
		for k := range min(len(r.States), len(ref.States)) {
			if distance(r.States[k], ref.States[k]) > 1 {
				split = fmt.Sprintf("%d", k)
				break
			}
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%s\t%.3f\n",
			names[i], f[0], f[1], f[2], distance(f, ref.Final()), split, r.Metrics["stability"])
	}
	return tw.Flush()
}

func distance(a, b dynamo.State) float64 {
	d := make(dynamo.State, len(a))
	for i := range a {
		d[i] = a[i] - b[i]
	}
	return d.Norm()
}

func (a *app) liveCmd() *cobra.Command {
	var (
		preset        string
		theme         string
		stepsPerFrame int
		start         pendulumStart
	)
	cmd := &cobra.Command{
		Use:   "live",
		Short: "animate an engine in the terminal",
	}
	cmd.PersistentFlags().StringVar(&preset, "preset", "", "engine preset")
	cmd.PersistentFlags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	cmd.PersistentFlags().IntVar(&stepsPerFrame, "steps-per-frame", 4, "integration steps per frame")

	run := func(s viz.Simulation) error {
		a.logger.Debug("starting live view", "engine", s.Name(), "theme", theme)
		return viz.Run(viz.NewModel(s, stepsPerFrame).WithTheme(viz.GetTheme(theme)))
	}

	lorenz := &cobra.Command{
		Use:   "lorenz",
		Short: "rotating 3D view of the Lorenz trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLorenz(cmd, preset)
			if err != nil {
				return err
			}
			return run(viz.NewLorenzSimulation(l))
		},
	}
	paramFlags(lorenz, lorenzParams...)

	pendulum := &cobra.Command{
		Use:   "pendulum",
		Short: "animated double pendulum with energy chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				start.seed = a.cfg.Seed
			}
			p, err := a.pendulumParams(cmd, preset, "")
			if err != nil {
				return err
			}
			d, err := a.newPendulum(cmd, p, start.initial(cmd))
			if err != nil {
				return err
			}
			return run(viz.NewPendulumSimulation(d))
		},
	}
	start.register(pendulum, 1)
	paramFlags(pendulum, pendulumParams...)

	cmd.AddCommand(lorenz, pendulum)
	return cmd
}
