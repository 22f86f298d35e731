package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/spendgraph/pkg/buildinfo"
	"github.com/matzehuels/spendgraph/pkg/cache"
	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty uses default", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,dot,json", []string{"svg", "dot", "json"}},
		{"spaces and blanks", " svg, ,png ", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "week.json", "week"},
		{"", "data/week.layout.json", "data/week"},
		{"", "week", "week"},
		{"out/graph.svg", "week.json", "out/graph"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "week.json")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("graph G {}"), "json": []byte("{}")},
		formats:   []string{"dot", "json"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	for _, name := range []string{"week.dot", "week.layout.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	// A single format honours --output verbatim.
	out := filepath.Join(dir, "custom.gv")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("graph G {}")},
		formats:   []string{"dot"},
		input:     input,
		output:    out,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s: %v", out, err)
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"svg"},
		input:     input,
	}); err == nil {
		t.Error("missing artifact should fail")
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("{}")},
		formats:   []string{"json"},
		input:     input,
		output:    input,
	}); err == nil || !strings.Contains(err.Error(), "overwrite") {
		t.Errorf("writing over the input should fail, got %v", err)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		x, y    float64
		wantErr bool
	}{
		{"10,20", 10, 20, false},
		{" 1.5 , -2 ", 1.5, -2, false},
		{"10", 0, 0, true},
		{"a,2", 0, 0, true},
		{"1,b", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parsePoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parsePoint(%q) code = %s", tt.in, errors.GetCode(err))
		}
		if x != tt.x || y != tt.y {
			t.Errorf("parsePoint(%q) = %v,%v, want %v,%v", tt.in, x, y, tt.x, tt.y)
		}
	}
}

func TestDropPoint(t *testing.T) {
	s := layout.State{Categories: []layout.CategoryNode{{ID: "food", X: 300, Y: 700}}}

	x, y, err := dropPoint(s, dragOpts{onto: "food"})
	if err != nil || x != 300 || y != 700 {
		t.Errorf("dropPoint(onto food) = %v,%v,%v", x, y, err)
	}
	if _, _, err := dropPoint(s, dragOpts{onto: "rent"}); !errors.Is(err, errors.ErrCodeCategoryNotFound) {
		t.Errorf("dropPoint(onto rent) error = %v", err)
	}
	x, y, err = dropPoint(s, dragOpts{to: "5,6"})
	if err != nil || x != 5 || y != 6 {
		t.Errorf("dropPoint(to 5,6) = %v,%v,%v", x, y, err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spendgraph.toml")
	if err := os.WriteFile(path, []byte("width = 1600\nseed = 3\nformats = [\"dot\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	c.configPath = path
	opts, err := c.options(pipeline.Options{Seed: 9})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Width != 1600 {
		t.Errorf("Width = %v, want 1600 from config", opts.Width)
	}
	if opts.Seed != 9 {
		t.Errorf("Seed = %v, want 9 from flags", opts.Seed)
	}
	if opts.Height != pipeline.DefaultHeight {
		t.Errorf("Height = %v, want default %v", opts.Height, pipeline.DefaultHeight)
	}
	if diff := cmp.Diff([]string{"dot"}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Logger != c.Logger {
		t.Error("options should carry the CLI logger")
	}

	c.configPath = filepath.Join(dir, "missing.toml")
	if _, err := c.options(pipeline.Options{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v", err)
	}
}

func TestCacheKeyerScopedByVersion(t *testing.T) {
	key := cacheKeyer().LayoutKey("abc", cache.LayoutKeyOpts{})
	if !strings.HasPrefix(key, buildinfo.Version+":") {
		t.Errorf("layout key %q should start with version prefix", key)
	}
}
