// meshtool inspects, generates and repacks meshes stored as layout
// descriptors with raw vertex and index blobs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/config"
	"github.com/Faultbox/midgard-mesh/internal/layout"
	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands.
type app struct {
	overrides config.Overrides
	cfg       *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "meshtool",
		Short:         "Inspect, generate and repack mesh layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.overrides.ConfigPath, "config", "", "path to config file")
	flags.BoolVar(&a.overrides.Debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.overrides.LogFile, "log-file", "", "also log to this file")
	flags.StringVar(&a.overrides.Format, "format", "", "output format (text or yaml)")
	flags.IntVar(&a.overrides.MaxRows, "max-rows", 0, "vertices printed per attribute by dump")

	root.AddCommand(newFormatsCmd(a))
	root.AddCommand(newInfoCmd(a))
	root.AddCommand(newDumpCmd(a))
	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newPackCmd(a))
	root.AddCommand(newTransformCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.overrides)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("format", cfg.Output.Format),
		zap.Strings("search_paths", cfg.Import.SearchPaths))
	return nil
}

func (a *app) loader() *layout.Loader {
	return layout.NewLoader(a.cfg.Import.SearchPaths...)
}

func (a *app) load(path string) (*meshdata.MeshData, error) {
	return a.loader().Load(path)
}

// baseName strips directory and descriptor extension from path.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
