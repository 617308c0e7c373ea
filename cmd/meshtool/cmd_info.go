package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-mesh/internal/meshtools"
	"github.com/Faultbox/midgard-mesh/internal/wgpumesh"
	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

type meshInfo struct {
	Primitive   mesh.Primitive  `yaml:"primitive"`
	VertexCount uint32          `yaml:"vertex_count"`
	VertexBytes int             `yaml:"vertex_bytes"`
	Indices     *indexInfo      `yaml:"indices,omitempty"`
	Attributes  []attributeInfo `yaml:"attributes,omitempty"`
	Bounds      *boundsInfo     `yaml:"bounds,omitempty"`
	WebGPU      string          `yaml:"webgpu"`
}

type indexInfo struct {
	Type   mesh.IndexType `yaml:"type"`
	Count  uint32         `yaml:"count"`
	Offset int            `yaml:"offset"`
	Bytes  int            `yaml:"bytes"`
}

type attributeInfo struct {
	ID        uint32             `yaml:"id"`
	Name      meshdata.Attribute `yaml:"name"`
	Format    mesh.VertexFormat  `yaml:"format"`
	Offset    int                `yaml:"offset"`
	Stride    int                `yaml:"stride"`
	ArraySize uint16             `yaml:"array_size,omitempty"`
}

type boundsInfo struct {
	Min math.Vec3 `yaml:"min,flow"`
	Max math.Vec3 `yaml:"max,flow"`
}

func describe(md *meshdata.MeshData) meshInfo {
	info := meshInfo{
		Primitive:   md.Primitive(),
		VertexCount: md.VertexCount(),
		VertexBytes: len(md.VertexData()),
		WebGPU:      "ok",
	}
	if md.IsIndexed() {
		info.Indices = &indexInfo{
			Type:   md.IndexType(),
			Count:  md.IndexCount(),
			Offset: md.IndexOffset(),
			Bytes:  len(md.IndexData()),
		}
	}
	for id := range md.AttributeCount() {
		info.Attributes = append(info.Attributes, attributeInfo{
			ID:        id,
			Name:      md.AttributeName(id),
			Format:    md.AttributeFormat(id),
			Offset:    md.AttributeOffset(id),
			Stride:    md.AttributeStride(id),
			ArraySize: md.AttributeArraySize(id),
		})
	}

	if b, err := meshtools.ComputeBounds(md); err == nil && !b.IsEmpty() {
		info.Bounds = &boundsInfo{Min: b.Min, Max: b.Max}
	}

	if _, err := wgpumesh.Topology(md.Primitive()); err != nil {
		info.WebGPU = err.Error()
	} else if _, err := wgpumesh.VertexLayout(md, wgpumesh.DefaultLocations); err != nil {
		info.WebGPU = err.Error()
	} else if md.IsIndexed() {
		if _, err := wgpumesh.Indices(md); err != nil {
			info.WebGPU = err.Error()
		}
	}
	return info
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <descriptor>",
		Short: "Show the layout of a mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.load(args[0])
			if err != nil {
				return err
			}
			info := describe(md)

			out := cmd.OutOrStdout()
			if a.cfg.Output.Format == "yaml" {
				return writeYAML(out, info)
			}
			return writeInfoText(out, info)
		},
	}
}

func writeInfoText(out io.Writer, info meshInfo) error {
	fmt.Fprintf(out, "primitive: %s\n", info.Primitive)
	fmt.Fprintf(out, "vertices:  %d (%d bytes)\n", info.VertexCount, info.VertexBytes)
	if info.Indices != nil {
		fmt.Fprintf(out, "indices:   %d x %s at offset %d (%d bytes)\n",
			info.Indices.Count, info.Indices.Type, info.Indices.Offset, info.Indices.Bytes)
	} else {
		fmt.Fprintln(out, "indices:   none")
	}
	if info.Bounds != nil {
		fmt.Fprintf(out, "bounds:    %v - %v\n", info.Bounds.Min, info.Bounds.Max)
	}
	fmt.Fprintf(out, "webgpu:    %s\n", info.WebGPU)

	if len(info.Attributes) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFORMAT\tOFFSET\tSTRIDE")
	for _, attr := range info.Attributes {
		format := attr.Format.String()
		if attr.ArraySize != 0 {
			format = fmt.Sprintf("%s[%d]", format, attr.ArraySize)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", attr.ID, attr.Name, format, attr.Offset, attr.Stride)
	}
	return w.Flush()
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <descriptor>",
		Short: "Print indices and attribute values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.load(args[0])
			if err != nil {
				return err
			}
			rows := a.cfg.Output.MaxRows
			if rows <= 0 || rows > int(md.VertexCount()) {
				rows = int(md.VertexCount())
			}

			dump := map[string][]string{}
			var order []string
			add := func(key string, values []string) {
				order = append(order, key)
				dump[key] = values
			}

			if md.IsIndexed() {
				indices := md.IndicesAsArray()
				n := len(indices)
				if a.cfg.Output.MaxRows > 0 {
					n = min(n, a.cfg.Output.MaxRows)
				}
				values := make([]string, n)
				for i := range values {
					values[i] = fmt.Sprint(indices[i])
				}
				add("indices", values)
			}
			for id := range md.AttributeCount() {
				add(fmt.Sprintf("%d:%s", id, md.AttributeName(id)), attributeValues(md, id, rows))
			}

			out := cmd.OutOrStdout()
			if a.cfg.Output.Format == "yaml" {
				return writeYAML(out, dump)
			}
			for _, key := range order {
				fmt.Fprintf(out, "%s:\n", key)
				for i, v := range dump[key] {
					fmt.Fprintf(out, "  %4d  %s\n", i, v)
				}
			}
			return nil
		},
	}
}

// attributeValues formats the first rows elements of attribute id. Builtin
// attributes are decoded, everything else is printed as hex.
func attributeValues(md *meshdata.MeshData, id uint32, rows int) []string {
	name := md.AttributeName(id)
	if md.AttributeFormat(id).IsImplementationSpecific() {
		return hexValues(md.Attribute(id), rows)
	}
	n := nthOccurrence(md, id)
	switch name {
	case meshdata.AttributePosition:
		return formatAll(md.Positions3DAsArray(n)[:rows])
	case meshdata.AttributeNormal:
		return formatAll(md.NormalsAsArray(n)[:rows])
	case meshdata.AttributeTextureCoordinates:
		return formatAll(md.TextureCoordinates2DAsArray(n)[:rows])
	case meshdata.AttributeColor:
		return formatAll(md.ColorsAsArray(n)[:rows])
	}
	return hexValues(md.Attribute(id), rows)
}

func nthOccurrence(md *meshdata.MeshData, id uint32) uint32 {
	name := md.AttributeName(id)
	var n uint32
	for i := range id {
		if md.AttributeName(i) == name {
			n++
		}
	}
	return n
}

func formatAll[T any](items []T) []string {
	values := make([]string, len(items))
	for i, v := range items {
		values[i] = fmt.Sprintf("%v", v)
	}
	return values
}

func hexValues(data strided.Bytes, rows int) []string {
	values := make([]string, min(rows, data.Len()))
	for i := range values {
		values[i] = hex.EncodeToString(data.At(i))
	}
	return values
}
