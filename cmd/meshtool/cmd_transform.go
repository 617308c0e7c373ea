package main

import (
	"fmt"
	gomath "math"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-mesh/internal/meshtools"
	"github.com/Faultbox/midgard-mesh/pkg/math"
)

func newTransformCmd(a *app) *cobra.Command {
	var wf writeFlags
	var translate, scale []float32
	var rotateY float32
	var center, smooth, faceNormals bool

	cmd := &cobra.Command{
		Use:   "transform <descriptor>",
		Short: "Transform positions and normals in place and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := vec3Flag("translate", translate)
			if err != nil {
				return err
			}
			s, err := vec3Flag("scale", scale)
			if err != nil {
				return err
			}

			md, err := a.load(args[0])
			if err != nil {
				return err
			}

			// Scale, then rotate, then move.
			m := math.Translate(t.X, t.Y, t.Z).
				Mul(math.RotateY(rotateY * gomath.Pi / 180)).
				Mul(math.Scale(s.X, s.Y, s.Z))
			if err := meshtools.Transform(md, m); err != nil {
				return err
			}
			if center {
				cx, cz, err := meshtools.CenterXZ(md)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "centered by (%g, %g)\n", -cx, -cz)
			}
			if faceNormals {
				if err := meshtools.FaceNormals(md); err != nil {
					return err
				}
			}
			if smooth {
				if err := meshtools.SmoothNormals(md); err != nil {
					return err
				}
			}
			return wf.write(cmd, a, md, baseName(args[0]))
		},
	}

	flags := cmd.Flags()
	flags.Float32SliceVar(&translate, "translate", []float32{0, 0, 0}, "translation x,y,z")
	flags.Float32SliceVar(&scale, "scale", []float32{1, 1, 1}, "scale x,y,z")
	flags.Float32Var(&rotateY, "rotate-y", 0, "rotation around Y in degrees")
	flags.BoolVar(&center, "center-xz", false, "center the mesh on the XZ plane")
	flags.BoolVar(&faceNormals, "face-normals", false, "recompute normals from triangles")
	flags.BoolVar(&smooth, "smooth-normals", false, "average normals of coincident vertices")
	wf.register(cmd)
	return cmd
}
