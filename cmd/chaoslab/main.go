package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslab/internal/config"
	"github.com/san-kum/chaoslab/internal/fractal"
)

// app carries what every subcommand needs once the root has parsed its
// persistent flags.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "chaoslab",
		Short:             "nonlinear dynamics and fractal lab",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.lorenzCmd(),
		a.pendulumCmd(),
		a.compareCmd(),
		a.logisticCmd(),
		a.fractalCmd(fractal.KindMandelbrot),
		a.fractalCmd(fractal.KindJulia),
		a.liveCmd(),
		a.presetsCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the config file over the defaults and builds the logger. Log
// output goes to stderr so rendered output on stdout stays clean.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cmd.ErrOrStderr(), config.ParseLogLevel(cfg.LogLevel))
	return nil
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})
	return cmd
}
