package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslab/internal/analysis"
	"github.com/san-kum/chaoslab/internal/export"
	"github.com/san-kum/chaoslab/internal/physics"
	"github.com/san-kum/chaoslab/internal/viz"
)

var logisticParams = []string{"r", "x0", "iterations", "history_length", "r_min", "r_max"}

func (a *app) logisticCmd() *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "logistic",
		Short: "explore the logistic map x ← r·x·(1−x)",
	}
	cmd.PersistentFlags().StringVar(&preset, "preset", "", fmt.Sprintf("r preset %v", slices.Sorted(maps.Keys(physics.LogisticPresets))))
	for _, p := range logisticParams {
		cmd.PersistentFlags().Float64(flagName(p), 0, "override "+p)
	}

	build := func(cmd *cobra.Command) (*physics.LogisticMap, error) {
		lm, err := physics.NewLogisticMap(a.cfg.Logistic)
		if err != nil {
			return nil, err
		}
		if preset != "" && !lm.ApplyPreset(preset) {
			return nil, unknownPreset("logistic", preset, slices.Sorted(maps.Keys(physics.LogisticPresets)))
		}
		set, err := overrides(cmd, logisticParams...)
		if err != nil {
			return nil, err
		}
		return lm, lm.UpdateParams(set)
	}

	var out string
	series := &cobra.Command{
		Use:   "series",
		Short: "iterate the map and plot the recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := build(cmd)
			if err != nil {
				return err
			}
			p := lm.Params()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "r=%g x0=%g regime=%s\n", p.R, p.X0, lm.Regime())
			if lm.Regime() == physics.RegimeStable {
				fmt.Fprintf(w, "fixed point %.6f\n", lm.FixedPoint())
			}
			if period := lm.Period(64); period > 0 {
				fmt.Fprintf(w, "period %d\n", period)
			} else {
				fmt.Fprintln(w, "no period up to 64")
			}
			fmt.Fprintln(w, viz.PlotSeries(lm.History(), fmt.Sprintf("last %d iterates", len(lm.History())), plotCols, 10))
			return a.save(cmd, out, export.FromSeries("logistic", lm.GetParams(), lm.Series()))
		},
	}
	series.Flags().StringVarP(&out, "out", "o", "", "export the series (.json, .csv, .svg)")

	var columns, height int
	bifurcation := &cobra.Command{
		Use:   "bifurcation",
		Short: "plot the bifurcation diagram over [r_min, r_max)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := build(cmd)
			if err != nil {
				return err
			}
			data, err := lm.Bifurcation(columns)
			if err != nil {
				return err
			}
			p := lm.Params()
			a.logger.Debug("bifurcation computed", "columns", columns, "r_min", p.RMin, "r_max", p.RMax)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "r ∈ [%g, %g)\n", p.RMin, p.RMax)
			fmt.Fprint(w, analysis.BifurcationToASCII(data, columns, height))
			return nil
		},
	}
	bifurcation.Flags().IntVar(&columns, "columns", 100, "r samples, one per text column")
	bifurcation.Flags().IntVar(&height, "height", 30, "plot height in rows")

	classify := &cobra.Command{
		Use:   "classify [r...]",
		Short: "label growth rates by dynamical regime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "R\tREGIME")
			for _, arg := range args {
				r, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid r %q: %w", arg, err)
				}
				fmt.Fprintf(tw, "%g\t%s\n", r, physics.Classify(r))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(series, bifurcation, classify)
	return cmd
}
