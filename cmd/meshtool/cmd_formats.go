package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-mesh/internal/wgpumesh"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

type formatInfo struct {
	Name       string `yaml:"name"`
	Size       uint32 `yaml:"size"`
	Components uint32 `yaml:"components"`
	Component  string `yaml:"component"`
	Normalized bool   `yaml:"normalized"`
	WebGPU     bool   `yaml:"webgpu"`
}

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the vertex formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []formatInfo
			for _, f := range mesh.VertexFormats() {
				_, err := wgpumesh.VertexFormat(f)
				infos = append(infos, formatInfo{
					Name:       f.String(),
					Size:       f.Size(),
					Components: f.ComponentCount(),
					Component:  f.ComponentFormat().String(),
					Normalized: f.IsNormalized(),
					WebGPU:     err == nil,
				})
			}

			out := cmd.OutOrStdout()
			if a.cfg.Output.Format == "yaml" {
				return writeYAML(out, infos)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tSIZE\tCOMPONENTS\tNORMALIZED\tWEBGPU")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%d x %s\t%s\t%s\n",
					info.Name, info.Size, info.Components, info.Component, yesNo(info.Normalized), yesNo(info.WebGPU))
			}
			return w.Flush()
		},
	}
}
