package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/padviz/pkg/cache"
	"github.com/matzehuels/padviz/pkg/flow"
)

const sampleInput = `{
  "type": "block",
  "label": "main",
  "children": [
    {"type": "command", "label": "init"},
    {"type": "if", "condition": "ok",
     "then_block": {"type": "command", "label": "run"},
     "else_block": {"type": "error", "message": "bad"}},
    {"type": "loop", "condition": "more",
     "body": {"type": "command", "label": "next"}}
  ]
}`

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"empty gets defaults", Options{}, false},
		{"explicit formats", Options{Formats: []string{"svg", "json", "dot"}}, false},
		{"invalid format", Options{Formats: []string{"gif"}}, true},
		{"invalid style", Options{Style: "neon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if len(tt.opts.Formats) == 0 || tt.opts.Style == "" || tt.opts.Logger == nil {
					t.Errorf("defaults not applied: %+v", tt.opts)
				}
			}
		})
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), []byte(sampleInput), Options{
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 7 {
		t.Errorf("NodeCount = %d, want 7", result.Stats.NodeCount)
	}
	if result.TreeHash == "" {
		t.Error("TreeHash should be set")
	}
	if result.Geometry == nil || result.Geometry.Width == 0 {
		t.Error("Geometry should be computed")
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "init") {
		t.Errorf("svg artifact malformed:\n%.200s", svg)
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"id"`) {
		t.Error("json artifact should carry geometry ids")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph G") {
		t.Error("dot artifact should be a DOT graph")
	}
}

func TestExecuteInvalidJSON(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Execute(context.Background(), []byte(`{"type":`), Options{}); err == nil {
		t.Error("malformed input should fail")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Execute(context.Background(), []byte(sampleInput), Options{Style: "bogus"}); err == nil {
		t.Error("invalid style should fail before any work")
	}
}

func TestExecuteLayoutCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	first, err := runner.Execute(ctx, []byte(sampleInput), Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should be a cold cache")
	}

	second, err := runner.Execute(ctx, []byte(sampleInput), Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the cache.
	third, err := runner.Execute(ctx, []byte(sampleInput), Options{Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestCustomMeasurerSkipsCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Measurer: func(s string) float64 { return 42 }}
	ctx := context.Background()
	if _, err := runner.Execute(ctx, []byte(sampleInput), opts); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := runner.Execute(ctx, []byte(sampleInput), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if second.CacheInfo.LayoutHit {
		t.Error("custom measurer must not reuse cached geometry")
	}
}

func TestDecodeTotality(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	tree, err := runner.Decode(context.Background(), []byte(`{"type": "mystery"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tree.Kind != flow.KindError {
		t.Errorf("unknown discriminant should decode to an error node, got %s", tree.Kind)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	tree, _ := runner.Decode(context.Background(), []byte(sampleInput))
	geometry, err := runner.ComputeLayout(context.Background(), tree, Options{})
	if err != nil {
		t.Fatal(err)
	}

	// Bypass option validation to exercise the dispatch guard.
	_, err = Render(geometry, tree, Options{Formats: []string{"gif"}, Style: "simple"})
	if err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	tree, _ := runner.Decode(context.Background(), []byte(sampleInput))
	geometry, err := runner.ComputeLayout(context.Background(), tree, Options{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalGeometry(geometry)
	if err != nil {
		t.Fatalf("MarshalGeometry: %v", err)
	}
	got, err := UnmarshalGeometry(data)
	if err != nil {
		t.Fatalf("UnmarshalGeometry: %v", err)
	}
	if got.ID != geometry.ID || got.Width != geometry.Width {
		t.Errorf("round trip changed geometry: %+v", got)
	}
}
