package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-mesh/internal/layout"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

// testConfig writes a config file so tests never pick up the user's config.
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshtool.yaml")
	content := "logging:\n  level: error\n" + extra
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("meshtool %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestFormatsCommand(t *testing.T) {
	cfg := testConfig(t, "")

	out := mustRun(t, cfg, "formats")
	for _, want := range []string{"FORMAT", "Vector3ubNormalized", "Vector4h", "Double"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected formats output to contain %q, got:\n%s", want, out)
		}
	}

	out = mustRun(t, cfg, "--format", "yaml", "formats")
	if !strings.Contains(out, "name: Vector3\n") {
		t.Errorf("expected yaml entry for Vector3, got:\n%s", out)
	}
	if !strings.Contains(out, "webgpu: true") {
		t.Errorf("expected some webgpu compatible formats, got:\n%s", out)
	}
}

func TestGenerateAndInspect(t *testing.T) {
	cfg := testConfig(t, "")
	dir := t.TempDir()

	out := mustRun(t, cfg, "generate", "wirebox", "-o", dir, "--min", "0,0,0", "--max", "2,3,4")
	path := filepath.Join(dir, "wirebox.yaml")
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("expected descriptor path in output, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "wirebox"+layout.VertexExt)); err != nil {
		t.Errorf("expected vertex blob, got %v", err)
	}

	out = mustRun(t, cfg, "info", path)
	for _, want := range []string{"primitive: Lines", "vertices:  24", "indices:   none", "Position", "Vector3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected info to contain %q, got:\n%s", want, out)
		}
	}

	out = mustRun(t, cfg, "--format", "yaml", "info", path)
	if !strings.Contains(out, "vertex_count: 24") {
		t.Errorf("expected yaml vertex count, got:\n%s", out)
	}
	if !strings.Contains(out, "max: {x: 2, y: 3, z: 4}") {
		t.Errorf("expected bounds in yaml, got:\n%s", out)
	}

	out = mustRun(t, cfg, "--max-rows", "2", "dump", path)
	if !strings.Contains(out, "0:Position:") {
		t.Errorf("expected position section, got:\n%s", out)
	}
	if !strings.Contains(out, "{0 0 0}") || !strings.Contains(out, "{2 0 0}") {
		t.Errorf("expected the first two box corners, got:\n%s", out)
	}
	if strings.Contains(out, "   2  ") {
		t.Errorf("expected dump limited to 2 rows, got:\n%s", out)
	}
}

func TestGenerateHeightmap(t *testing.T) {
	cfg := testConfig(t, "")
	dir := t.TempDir()

	mustRun(t, cfg, "generate", "heightmap", "-o", dir, "--cols", "4", "--rows", "3", "--toml")
	md, err := layout.NewLoader().Load(filepath.Join(dir, "heightmap.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if md.VertexCount() != 12 {
		t.Errorf("expected 12 vertices, got %d", md.VertexCount())
	}
	if md.IndexType() != mesh.IndexTypeUnsignedShort {
		t.Errorf("expected 16-bit indices, got %v", md.IndexType())
	}
	if md.IndexCount() != 3*2*6 {
		t.Errorf("expected 36 indices, got %d", md.IndexCount())
	}

	if _, err := run(t, cfg, "generate", "heightmap", "-o", dir, "--cols", "1"); err == nil {
		t.Error("expected error for a single column heightmap")
	}
}

func TestGenerateFullscreen(t *testing.T) {
	cfg := testConfig(t, "")
	dir := t.TempDir()

	mustRun(t, cfg, "generate", "fullscreen", "-o", dir, "--name", "fs")
	out := mustRun(t, cfg, "info", filepath.Join(dir, "fs.yaml"))
	if !strings.Contains(out, "vertices:  3 (0 bytes)") {
		t.Errorf("expected attribute-less triangle, got:\n%s", out)
	}
}

func TestPackCommand(t *testing.T) {
	cfg := testConfig(t, "")
	src, dst := t.TempDir(), t.TempDir()

	mustRun(t, cfg, "generate", "grid", "-o", src, "--tiles-x", "2", "--tiles-z", "2")
	out := mustRun(t, cfg, "pack", filepath.Join(src, "grid.yaml"), "-o", dst, "--level", "4")
	if !strings.Contains(out, filepath.Join(dst, "grid.yaml")) {
		t.Errorf("expected packed descriptor path, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(dst, "grid"+layout.VertexExt+layout.CompressedExt)); err != nil {
		t.Errorf("expected compressed vertex blob, got %v", err)
	}

	packed, err := layout.NewLoader().Load(filepath.Join(dst, "grid.yaml"))
	if err != nil {
		t.Fatalf("load packed: %v", err)
	}
	original, err := layout.NewLoader().Load(filepath.Join(src, "grid.yaml"))
	if err != nil {
		t.Fatalf("load original: %v", err)
	}
	if !bytes.Equal(packed.VertexData(), original.VertexData()) {
		t.Error("expected packed vertex data to match the original")
	}
}

func TestTransformCommand(t *testing.T) {
	cfg := testConfig(t, "")
	dir := t.TempDir()

	mustRun(t, cfg, "generate", "wirebox", "-o", dir, "--min", "0,0,0", "--max", "1,1,1")
	mustRun(t, cfg, "transform", filepath.Join(dir, "wirebox.yaml"), "-o", dir, "--name", "moved",
		"--scale", "2,2,2", "--translate", "10,0,0")

	md, err := layout.NewLoader().Load(filepath.Join(dir, "moved.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	positions := md.Positions3DAsArray(0)
	lo, hi := positions[0], positions[0]
	for _, p := range positions {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	if lo.X != 10 || hi.X != 12 || hi.Y != 2 || hi.Z != 2 {
		t.Errorf("expected box from (10,0,0) to (12,2,2), got %v - %v", lo, hi)
	}

	out := mustRun(t, cfg, "transform", filepath.Join(dir, "moved.yaml"), "-o", dir, "--name", "centered", "--center-xz")
	if !strings.Contains(out, "centered by") {
		t.Errorf("expected centering report, got %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	cfg := testConfig(t, "")
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing descriptor", []string{"info", filepath.Join(dir, "nope.yaml")}},
		{"unknown extension", []string{"info", filepath.Join(dir, "mesh.json")}},
		{"short vector", []string{"generate", "wirebox", "-o", dir, "--min", "1,2"}},
		{"empty grid", []string{"generate", "grid", "-o", dir, "--tiles-x", "0"}},
		{"bad format", []string{"--format", "xml", "formats"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, cfg, tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"mesh.yaml":           "mesh",
		"/data/models/a.toml": "a",
		"dir/no_ext":          "no_ext",
	}
	for in, want := range tests {
		if got := baseName(in); got != want {
			t.Errorf("baseName(%q): expected %q, got %q", in, want, got)
		}
	}
}
