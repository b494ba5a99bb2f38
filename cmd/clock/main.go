//go:build !js

// Command clock opens a desktop window and draws the analog clock face.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kjkrol/glclock/internal/app"
	"github.com/kjkrol/glclock/internal/config"
	"github.com/kjkrol/glclock/internal/logging"
	"github.com/kjkrol/glclock/internal/platform"
)

type options struct {
	configPath string
	logLevel   string
	driver     string
	shaderDir  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "clock",
		Short:         "Draw an analog clock with a GLSL fragment shader",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			return run(cfg)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.driver, "driver", "", "redraw driver: interval or frame")
	flags.StringVar(&opts.shaderDir, "shaders", "", "read shaders from this directory instead of the embedded pair")

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

// load reads the config file and applies flag overrides on top.
func (o options) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.driver != "" {
		cfg.Render.Driver = o.driver
	}
	if o.shaderDir != "" {
		cfg.Shaders.Dir = o.shaderDir
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	logger := logging.New(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surface, err := platform.NewWindow(platform.WindowConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, logger)
	if err != nil {
		logger.Error("open window", "err", err)
		return err
	}
	defer surface.Close()

	if err := app.Run(ctx, surface, cfg, app.AssetSource(cfg.Shaders), logger); err != nil {
		logger.Error("clock failed", "err", err)
		return err
	}
	return nil
}
