package main

import (
	"github.com/spf13/cobra"
)

func newPackCmd(a *app) *cobra.Command {
	var wf writeFlags
	var level int
	cmd := &cobra.Command{
		Use:   "pack <descriptor>",
		Short: "Rewrite a mesh with zstd-compressed blobs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.load(args[0])
			if err != nil {
				return err
			}
			if level != 0 {
				a.cfg.Import.ZstdLevel = level
			}
			wf.compress = true
			return wf.write(cmd, a, md, baseName(args[0]))
		},
	}
	wf.register(cmd)
	cmd.Flags().IntVar(&level, "level", 0, "zstd level from 1 (fastest) to 4 (best), overrides the config")
	return cmd
}
