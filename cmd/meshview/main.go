// meshview opens a layout descriptor in an OpenGL window.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/config"
	"github.com/Faultbox/midgard-mesh/internal/layout"
	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/internal/viewer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var overrides config.Overrides
	var width, height int
	var fullscreen bool

	cmd := &cobra.Command{
		Use:           "meshview <descriptor>",
		Short:         "Show a mesh in an orbit viewer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(overrides)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer logger.Sync()

			md, err := layout.NewLoader(cfg.Import.SearchPaths...).Load(args[0])
			if err != nil {
				return err
			}

			wc := viewer.WindowConfig{
				Title:      "meshview - " + filepath.Base(args[0]),
				Width:      cfg.Viewer.Width,
				Height:     cfg.Viewer.Height,
				Fullscreen: cfg.Viewer.Fullscreen || fullscreen,
				VSync:      cfg.Viewer.VSync,
			}
			if width > 0 {
				wc.Width = width
			}
			if height > 0 {
				wc.Height = height
			}

			v, err := viewer.New(wc, md)
			if err != nil {
				return err
			}
			defer v.Close()

			logger.Info("viewing mesh",
				zap.String("path", args[0]),
				zap.Stringer("primitive", md.Primitive()),
				zap.Uint32("vertices", md.VertexCount()))
			v.Run()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&overrides.ConfigPath, "config", "", "path to config file")
	flags.BoolVar(&overrides.Debug, "debug", false, "enable debug logging")
	flags.StringVar(&overrides.LogFile, "log-file", "", "also log to this file")
	flags.IntVar(&width, "width", 0, "window width, overrides the config")
	flags.IntVar(&height, "height", 0, "window height, overrides the config")
	flags.BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	return cmd
}
