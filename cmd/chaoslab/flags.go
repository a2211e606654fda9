package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslab/internal/config"
	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/export"
	"github.com/san-kum/chaoslab/internal/viz"
)

// paramFlags registers one float flag per engine parameter. Flag names use
// dashes where parameter names use underscores.
func paramFlags(cmd *cobra.Command, params ...string) {
	for _, p := range params {
		cmd.Flags().Float64(flagName(p), 0, "override "+p)
	}
}

func flagName(param string) string { return strings.ReplaceAll(param, "_", "-") }

// overrides collects the parameter flags the user actually set.
func overrides(cmd *cobra.Command, params ...string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, p := range params {
		name := flagName(p)
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(name)
		if err != nil {
			return nil, err
		}
		out[p] = v
	}
	return out, nil
}

// stepCount is --steps when given, else the configured default.
func (a *app) stepCount(cmd *cobra.Command, flag int) (int, error) {
	if !cmd.Flags().Changed("steps") {
		return a.cfg.Steps, nil
	}
	if err := dynamo.NonNegative("cli", "steps", float64(flag)); err != nil {
		return 0, err
	}
	return flag, nil
}

func unknownPreset(model, name string, available []string) error {
	return fmt.Errorf("unknown preset: %s (available for %s: %v)", name, model, available)
}

// save writes an export when out is set.
func (a *app) save(cmd *cobra.Command, out string, t *export.Trajectory) error {
	if out == "" {
		return nil
	}
	if err := export.Save(out, t, nil); err != nil {
		return err
	}
	a.logger.Info("trajectory exported", "path", out, "id", t.ID, "rows", len(t.Rows))
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out)
	return nil
}

// savePlot writes the braille plot as SVG when path is set.
func (a *app) savePlot(cmd *cobra.Command, path string, c *viz.Canvas) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(export.CanvasSVG(c, 4)), 0o644); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
	return nil
}

func (a *app) applyModelPreset(model, name string) error {
	if name == "" {
		return nil
	}
	if !a.cfg.ApplyPreset(model, name) {
		return unknownPreset(model, name, config.ListPresets(model))
	}
	return nil
}
