package main

import (
	"fmt"
	gomath "math"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-mesh/internal/layout"
	"github.com/Faultbox/midgard-mesh/internal/primitives"
	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

type writeFlags struct {
	output   string
	name     string
	toml     bool
	compress bool
}

func (f *writeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&f.name, "name", "", "base name of the written files")
	cmd.Flags().BoolVar(&f.toml, "toml", false, "write a TOML descriptor instead of YAML")
	cmd.Flags().BoolVar(&f.compress, "compress", false, "zstd-compress the blobs")
}

func (f *writeFlags) write(cmd *cobra.Command, a *app, md *meshdata.MeshData, defaultName string) error {
	name := f.name
	if name == "" {
		name = defaultName
	}
	opts := layout.WriteOptions{
		Format:   layout.FormatYAML,
		Compress: f.compress,
		Level:    a.cfg.Import.ZstdLevel,
	}
	if f.toml {
		opts.Format = layout.FormatTOML
	}
	path, err := layout.Write(f.output, name, md, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a builtin mesh",
	}

	var wf writeFlags
	var boxMin, boxMax []float32
	box := &cobra.Command{
		Use:   "wirebox",
		Short: "Line box between two corners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := vec3Flag("min", boxMin)
			if err != nil {
				return err
			}
			hi, err := vec3Flag("max", boxMax)
			if err != nil {
				return err
			}
			return wf.write(cmd, a, primitives.WireBox(lo, hi), "wirebox")
		},
	}
	box.Flags().Float32SliceVar(&boxMin, "min", []float32{-1, -1, -1}, "minimum corner x,y,z")
	box.Flags().Float32SliceVar(&boxMax, "max", []float32{1, 1, 1}, "maximum corner x,y,z")
	wf.register(box)

	var gf writeFlags
	var tilesX, tilesZ int
	var tileSize, height float32
	grid := &cobra.Command{
		Use:   "grid",
		Short: "Line grid over tiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tilesX < 1 || tilesZ < 1 {
				return fmt.Errorf("grid needs at least one tile, got %dx%d", tilesX, tilesZ)
			}
			md := primitives.TileGrid(tilesX, tilesZ, tileSize, height, primitives.GridColor)
			return gf.write(cmd, a, md, "grid")
		},
	}
	grid.Flags().IntVar(&tilesX, "tiles-x", 8, "tiles along X")
	grid.Flags().IntVar(&tilesZ, "tiles-z", 8, "tiles along Z")
	grid.Flags().Float32Var(&tileSize, "tile-size", 1, "tile edge length")
	grid.Flags().Float32Var(&height, "height", 0, "grid height")
	gf.register(grid)

	var hf writeFlags
	var cols, rows int
	var amplitude, spacing float32
	terrain := &cobra.Command{
		Use:   "heightmap",
		Short: "Triangle terrain from a sine height field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := primitives.Heightmap(waves(rows, cols, amplitude), spacing)
			if err != nil {
				return err
			}
			return hf.write(cmd, a, md, "heightmap")
		},
	}
	terrain.Flags().IntVar(&cols, "cols", 16, "height samples along X")
	terrain.Flags().IntVar(&rows, "rows", 16, "height samples along Z")
	terrain.Flags().Float32Var(&amplitude, "amplitude", 1, "wave height")
	terrain.Flags().Float32Var(&spacing, "tile-size", 1, "distance between samples")
	hf.register(terrain)

	var ff writeFlags
	fullscreen := &cobra.Command{
		Use:   "fullscreen",
		Short: "Attribute-less fullscreen triangle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ff.write(cmd, a, primitives.FullscreenTriangle(), "fullscreen")
		},
	}
	ff.register(fullscreen)

	cmd.AddCommand(box, grid, terrain, fullscreen)
	return cmd
}

func vec3Flag(name string, v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("--%s needs 3 components, got %d", name, len(v))
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// waves returns a rows x cols height field of crossing sine waves.
func waves(rows, cols int, amplitude float32) [][]float32 {
	heights := make([][]float32, rows)
	for z := range heights {
		heights[z] = make([]float32, cols)
		for x := range heights[z] {
			h := gomath.Sin(float64(x)*0.5) * gomath.Cos(float64(z)*0.5)
			heights[z][x] = amplitude * float32(h)
		}
	}
	return heights
}
