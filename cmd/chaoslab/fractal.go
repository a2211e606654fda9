package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslab/internal/compute"
	"github.com/san-kum/chaoslab/internal/config"
	"github.com/san-kum/chaoslab/internal/export"
	"github.com/san-kum/chaoslab/internal/fractal"
	"github.com/san-kum/chaoslab/internal/physics"
	"github.com/san-kum/chaoslab/internal/viz"
)

var (
	fractalParams = []string{"max_iterations", "zoom", "center_x", "center_y", "color_intensity"}
	juliaParams   = append(slices.Clone(fractalParams), "escape_radius", "c_real", "c_imag")
)

func newFractal(kind fractal.Kind, cfg *config.Config) (*fractal.Engine, error) {
	if kind == fractal.KindJulia {
		j, err := fractal.NewJulia(cfg.Julia)
		if err != nil {
			return nil, err
		}
		return j.Engine, nil
	}
	m, err := fractal.NewMandelbrot(cfg.Mandelbrot)
	if err != nil {
		return nil, err
	}
	return m.Engine, nil
}

func (a *app) fractalCmd(kind fractal.Kind) *cobra.Command {
	var (
		preset      string
		out         string
		showMetrics bool
		timeout     time.Duration
		render      config.RenderConfig
	)
	params := fractalParams
	if kind == fractal.KindJulia {
		params = juliaParams
	}

	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("render the %s set", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newFractal(kind, a.cfg)
			if err != nil {
				return err
			}
			if preset != "" && !eng.ApplyPreset(preset) {
				return unknownPreset(kind.String(), preset, eng.Presets())
			}
			set, err := overrides(cmd, params...)
			if err != nil {
				return err
			}
			if err := eng.UpdateParams(set); err != nil {
				return err
			}

			rc := a.renderConfig(cmd, render)
			if err := rc.Validate(); err != nil {
				return err
			}
			img, err := fractal.NewImage(rc.Width, rc.Height)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			sched := compute.NewScheduler(
				compute.WithWorkers(rc.Workers),
				compute.WithChunkRows(rc.ChunkRows),
				compute.WithLogger(a.logger),
				compute.WithMetrics(compute.NewMetrics(reg)),
			)
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			if err := sched.Render(ctx, eng, img); err != nil {
				return fmt.Errorf("render %s: %w", kind, err)
			}

			w := cmd.OutOrStdout()
			if out != "" {
				if err := export.Save(out, nil, img); err != nil {
					return err
				}
				fmt.Fprintf(w, "saved %s (%dx%d)\n", out, rc.Width, rc.Height)
			} else {
				fmt.Fprint(w, viz.HalfBlocks(img))
			}
			fmt.Fprintf(w, "%s %s\n", kind, export.SortedParams(eng.GetParams()))
			if kind == fractal.KindJulia {
				j := &fractal.Julia{Engine: eng}
				fmt.Fprintf(w, "c=%g%+gi  %s\n", eng.Params().CReal, eng.Params().CImag, j.SetDescription())
			}
			if showMetrics {
				return printMetrics(w, reg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", kind.String()+" preset")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write a PNG instead of drawing to the terminal")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print render metrics")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the render after this long")
	cmd.Flags().IntVar(&render.Width, "width", 0, "raster width in pixels (default from config)")
	cmd.Flags().IntVar(&render.Height, "height", 0, "raster height in pixels (default from config)")
	cmd.Flags().IntVar(&render.Workers, "workers", 0, "render workers (default from config, 0 = one per CPU)")
	cmd.Flags().IntVar(&render.ChunkRows, "chunk-rows", 0, "rows per work unit (default from config)")
	paramFlags(cmd, params...)
	return cmd
}

// renderConfig layers the render flags the user set over the config file.
func (a *app) renderConfig(cmd *cobra.Command, flags config.RenderConfig) config.RenderConfig {
	rc := a.cfg.Render
	if cmd.Flags().Changed("width") {
		rc.Width = flags.Width
	}
	if cmd.Flags().Changed("height") {
		rc.Height = flags.Height
	}
	if cmd.Flags().Changed("workers") {
		rc.Workers = flags.Workers
	}
	if cmd.Flags().Changed("chunk-rows") {
		rc.ChunkRows = flags.ChunkRows
	}
	return rc
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nMETRIC\tLABELS\tVALUE")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", mf.GetName(), strings.Join(labels, ","), metricValue(mf.GetType(), m))
		}
	}
	return tw.Flush()
}

func metricValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%.4fs", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "-"
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [engine]",
		Short: "list presets per engine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all := map[string][]string{
				"lorenz":   config.ListPresets("lorenz"),
				"pendulum": config.ListPresets("pendulum"),
				"logistic": slices.Sorted(maps.Keys(physics.LogisticPresets)),
			}
			for _, kind := range []fractal.Kind{fractal.KindMandelbrot, fractal.KindJulia} {
				eng, err := newFractal(kind, config.DefaultConfig())
				if err != nil {
					return err
				}
				all[kind.String()] = eng.Presets()
			}

			engines := slices.Sorted(maps.Keys(all))
			if len(args) == 1 {
				if _, ok := all[args[0]]; !ok {
					return fmt.Errorf("unknown engine: %s (available: %v)", args[0], engines)
				}
				engines = args
			}
			w := cmd.OutOrStdout()
			for _, e := range engines {
				fmt.Fprintf(w, "presets for %s:\n", e)
				for _, p := range all[e] {
					fmt.Fprintf(w, "  %s\n", p)
				}
			}
			return nil
		},
	}
}
