package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spliceplot/pkg/config"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"explicit single", "fig.svg", "data.json", "svg", false, "fig.svg"},
		{"derived from input", "", "runs/data.json", "svg", false, "runs/data.svg"},
		{"json never overwrites input", "", "data.json", "json", false, "data.figure.json"},
		{"multiple strips extension", "out/fig.svg", "data.json", "png", true, "out/fig.png"},
		{"multiple keeps base", "out/fig", "data.json", "pdf", true, "out/fig.pdf"},
		{"multiple json", "out/fig", "data.json", "json", true, "out/fig.figure.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.format, tt.multiple)
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "a/b.json", "a/b"},
		{"x.pdf", "b.json", "x"},
		{"x.tar", "b.json", "x.tar"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRenderFlagsApply(t *testing.T) {
	var f renderFlags
	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "")
	cmd.Flags().Float64Var(&f.width, "width", 0, "")
	cmd.Flags().Float64Var(&f.height, "height", 0, "")
	cmd.Flags().BoolVar(&f.acceptorLanes, "acceptor-lanes", true, "")
	if err := cmd.Flags().Parse([]string{"--width", "800", "--acceptor-lanes=false", "-f", "png,json"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Height = 700
	opts := f.apply(cmd, cfg)

	if opts.Width != 800 {
		t.Errorf("Width = %v, want 800", opts.Width)
	}
	if opts.Height != 700 {
		t.Errorf("Height = %v, want config value 700", opts.Height)
	}
	if opts.WantsAcceptorLanes() {
		t.Error("WantsAcceptorLanes() = true, want false")
	}
	if strings.Join(opts.Formats, ",") != "png,json" {
		t.Errorf("Formats = %v, want [png json]", opts.Formats)
	}
}

func TestRenderCommand(t *testing.T) {
	input := sampleDataset(t)
	out, err := execute(t, "render", input, "--no-cache", "-f", "svg,json")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	base := strings.TrimSuffix(input, ".json")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("svg output missing <svg> element")
	}

	data, err := os.ReadFile(base + ".figure.json")
	if err != nil {
		t.Fatalf("figure summary not written: %v", err)
	}
	var fig struct {
		Lanes []struct {
			Kind     string `json:"kind"`
			Position int    `json:"position"`
		} `json:"lanes"`
	}
	if err := json.Unmarshal(data, &fig); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(fig.Lanes) != 4 {
		t.Errorf("len(Lanes) = %d, want 4", len(fig.Lanes))
	}

	// The dataset itself is untouched.
	if ds, _ := os.ReadFile(input); !bytes.Contains(ds, []byte(`"transcriptome"`)) {
		t.Error("input dataset was overwritten")
	}

	for _, want := range []string{"Render complete", filepath.Base(base) + ".svg", "4 lanes", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandExplicitOutput(t *testing.T) {
	input := sampleDataset(t)
	target := filepath.Join(t.TempDir(), "figure.svg")
	if _, err := execute(t, "render", input, "--no-cache", "-o", target, "--width", "900", "--height", "700"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderCommandCached(t *testing.T) {
	input := sampleDataset(t)
	cfg := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(t.TempDir())+"\"\n")

	if _, err := execute(t, "--config", cfg, "render", input); err != nil {
		t.Fatalf("first render error = %v", err)
	}
	out, err := execute(t, "--config", cfg, "render", input)
	if err != nil {
		t.Fatalf("second render error = %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second render not served from cache:\n%s", out)
	}

	out, err = execute(t, "--config", cfg, "render", input, "--refresh")
	if err != nil {
		t.Fatalf("refresh render error = %v", err)
	}
	if !strings.Contains(out, "fresh") {
		t.Errorf("--refresh served from cache:\n%s", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := sampleDataset(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"render"}},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "none.json"), "--no-cache"}},
		{"bad format", []string{"render", input, "--no-cache", "-f", "gif"}},
		{"bad width", []string{"render", input, "--no-cache", "--width=-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCompleteFormats(t *testing.T) {
	got, _ := completeFormats(nil, nil, "svg,")
	want := map[string]bool{"svg,png": true, "svg,pdf": true, "svg,json": true}
	if len(got) != len(want) {
		t.Fatalf("completeFormats() = %v, want %d entries", got, len(want))
	}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected completion %q", g)
		}
	}

	if got, _ := completeDataset(nil, []string{"a.json"}, ""); got != nil {
		t.Errorf("completeDataset() with an arg = %v, want nil", got)
	}
}
