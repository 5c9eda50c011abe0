package outline

import (
	"strings"
	"testing"

	"github.com/matzehuels/padviz/pkg/flow"
)

func TestToDOT_Basic(t *testing.T) {
	tree := flow.Block("main", flow.Command("a"), flow.Command("b"))

	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `label="main"`) {
		t.Error("ToDOT() output missing block node")
	}
	if !strings.Contains(dot, `label="a"`) || !strings.Contains(dot, `label="b"`) {
		t.Error("ToDOT() output missing command nodes")
	}
	if !strings.Contains(dot, `"n0" -> "n1"`) {
		t.Error("ToDOT() output missing edge")
	}
}

func TestToDOT_BranchLabels(t *testing.T) {
	tree := flow.If("x > 0", flow.Command("t"), flow.Command("e"))

	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, `[label="then"]`) {
		t.Error("ToDOT() output missing then edge label")
	}
	if !strings.Contains(dot, `[label="else"]`) {
		t.Error("ToDOT() output missing else edge label")
	}
}

func TestToDOT_LoopBody(t *testing.T) {
	tree := flow.Loop("more", flow.Command("step"))

	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, `[label="body"]`) {
		t.Error("ToDOT() output missing body edge label")
	}
}

func TestToDOT_ErrorNode(t *testing.T) {
	tree := flow.Sequence(flow.ErrorNode("unsupported syntax"))

	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() error node missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() error node missing lightgrey fill")
	}
}

func TestToDOT_ShowKinds(t *testing.T) {
	tree := flow.Command("x = 1")

	dot := ToDOT(tree, Options{ShowKinds: true})

	if !strings.Contains(dot, `command\nx = 1`) {
		t.Errorf("ToDOT() ShowKinds output missing kind prefix:\n%s", dot)
	}
}

func TestToDOT_Nil(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.Contains(dot, "digraph G") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) should emit an empty graph:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name string
		node *flow.Node
		want string
	}{
		{"command uses label", flow.Command("run"), "run"},
		{"conditional uses condition", flow.If("ok", nil, nil), "ok"},
		{"error uses message", flow.ErrorNode("boom"), "boom"},
		{"empty falls back to kind", flow.Sequence(), "sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, false); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
