package pad

import (
	"strings"
	"testing"

	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/layout"
)

func compute(t *testing.T, n *flow.Node) *layout.Node {
	t.Helper()
	return layout.New(nil).Compute(n)
}

func TestRenderSVGStructure(t *testing.T) {
	g := compute(t, flow.Block("main",
		flow.Command("a"),
		flow.If("c", flow.Command("t"), flow.Command("e")),
	))
	svg := string(RenderSVG(g))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg header: %.80s", svg)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("unterminated document")
	}

	// One group per geometry node, addressed by stable identity.
	ids := []string{}
	layout.Walk(g, func(n *layout.Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	for _, id := range ids {
		if !strings.Contains(svg, `<g id="`+id+`" transform="translate(`) {
			t.Errorf("missing group for %s", id)
		}
	}
	if got := strings.Count(svg, "<g id="); got != len(ids) {
		t.Errorf("%d groups, want %d", got, len(ids))
	}
}

func TestRenderSVGShapes(t *testing.T) {
	tests := []struct {
		name string
		tree *flow.Node
		want []string
	}{
		{
			name: "block has capsules and header",
			tree: flow.Block("main", flow.Command("x")),
			want: []string{`class="header"`, `class="capsule"`, `rx="15.0"`, `class="connector"`},
		},
		{
			name: "conditional wedge is a five-point polygon",
			tree: flow.If("ok", flow.Command("t"), nil),
			want: []string{`<polygon class="wedge"`, `class="cond-text"`},
		},
		{
			name: "loop carries the repetition stripe",
			tree: flow.Loop("more", flow.Command("b")),
			want: []string{`class="stripe"`, `class="cond"`},
		},
		{
			name: "error node renders as error box",
			tree: flow.ErrorNode("bad input"),
			want: []string{`class="error"`, "bad input"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(compute(t, tt.tree)))
			for _, want := range tt.want {
				if !strings.Contains(svg, want) {
					t.Errorf("missing %q in:\n%s", want, svg)
				}
			}
		})
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	svg := string(RenderSVG(compute(t, flow.Command("a < b && c"))))
	if strings.Contains(svg, "a < b &&") {
		t.Error("text not escaped")
	}
	if !strings.Contains(svg, "a &lt; b &amp;&amp; c") {
		t.Errorf("expected escaped label in:\n%s", svg)
	}
}

func TestRenderSVGNil(t *testing.T) {
	svg := string(RenderSVG(nil))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Errorf("nil tree should still produce a valid document:\n%s", svg)
	}
}

func TestRenderSVGStyles(t *testing.T) {
	g := compute(t, flow.Command("x"))

	simple := string(RenderSVG(g, WithStyle(Simple{})))
	if strings.Contains(simple, "rough") {
		t.Error("simple style should not carry the rough filter")
	}

	sketch := string(RenderSVG(g, WithStyle(Sketch{})))
	if !strings.Contains(sketch, `filter id="rough"`) {
		t.Error("sketch style should define the rough filter")
	}
}

func TestForName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"simple", "simple", false},
		{"sketch", "sketch", false},
		{"neon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ForName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForName: %v", err)
			}
			if s.Name() != tt.want {
				t.Errorf("Name = %s, want %s", s.Name(), tt.want)
			}
		})
	}
}
