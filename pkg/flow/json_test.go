package flow

import (
	"strings"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, n *Node)
	}{
		{
			name: "command",
			json: `{"type": "command", "label": "x = 1"}`,
			check: func(t *testing.T, n *Node) {
				if n.Kind != KindCommand || n.Label != "x = 1" {
					t.Errorf("got %s %q", n.Kind, n.Label)
				}
			},
		},
		{
			name: "block with children",
			json: `{"type": "block", "label": "main", "children": [
				{"type": "command", "label": "a"},
				{"type": "command", "label": "b"}
			]}`,
			check: func(t *testing.T, n *Node) {
				if n.Kind != KindBlock || n.Label != "main" {
					t.Fatalf("got %s %q", n.Kind, n.Label)
				}
				if len(n.Children) != 2 || n.Children[1].Label != "b" {
					t.Errorf("Children = %v", n.Children)
				}
			},
		},
		{
			name: "if with both branches",
			json: `{"type": "if", "condition": "x > 0",
				"then_block": {"type": "command", "label": "pos"},
				"else_block": {"type": "command", "label": "neg"}}`,
			check: func(t *testing.T, n *Node) {
				if n.Condition != "x > 0" {
					t.Errorf("Condition = %q", n.Condition)
				}
				if n.Then == nil || n.Then.Label != "pos" {
					t.Error("then_block not decoded")
				}
				if n.Else == nil || n.Else.Label != "neg" {
					t.Error("else_block not decoded")
				}
			},
		},
		{
			name: "if without then branch stays nil",
			json: `{"type": "if", "condition": "c"}`,
			check: func(t *testing.T, n *Node) {
				if n.Then != nil || n.Else != nil {
					t.Error("missing branches should be nil")
				}
			},
		},
		{
			name: "loop",
			json: `{"type": "loop", "condition": "i < n",
				"body": {"type": "sequence", "children": [{"type": "command", "label": "step"}]}}`,
			check: func(t *testing.T, n *Node) {
				if n.Kind != KindLoop || n.Condition != "i < n" {
					t.Fatalf("got %s %q", n.Kind, n.Condition)
				}
				if n.Body == nil || n.Body.Kind != KindSequence {
					t.Error("body not decoded")
				}
			},
		},
		{
			name: "error",
			json: `{"type": "error", "message": "unsupported syntax"}`,
			check: func(t *testing.T, n *Node) {
				if n.Kind != KindError || n.Message != "unsupported syntax" {
					t.Errorf("got %s %q", n.Kind, n.Message)
				}
			},
		},
		{
			name: "unknown type becomes error node",
			json: `{"type": "goto", "label": "l1"}`,
			check: func(t *testing.T, n *Node) {
				if n.Kind != KindError {
					t.Fatalf("Kind = %s, want error", n.Kind)
				}
				if !strings.Contains(n.Message, `"goto"`) {
					t.Errorf("Message should name the unknown type: %q", n.Message)
				}
			},
		},
		{
			name: "unknown type nested in a sequence",
			json: `{"type": "sequence", "children": [
				{"type": "command", "label": "ok"},
				{"type": "switch"}
			]}`,
			check: func(t *testing.T, n *Node) {
				if len(n.Children) != 2 {
					t.Fatalf("len(Children) = %d", len(n.Children))
				}
				if n.Children[0].Kind != KindCommand {
					t.Error("valid sibling should decode normally")
				}
				if n.Children[1].Kind != KindError {
					t.Error("unknown sibling should become an error node")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Unmarshal([]byte(tt.json))
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			tt.check(t, n)
		})
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type": `)); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestDecode(t *testing.T) {
	r := strings.NewReader(`{"type": "command", "label": "x"}`)
	n, err := Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n.Kind != KindCommand {
		t.Errorf("Kind = %s", n.Kind)
	}
}

func TestMarshalFieldNames(t *testing.T) {
	tree := If("c", Command("t"), Command("e"))
	data, err := Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// The wire contract uses snake_case branch names.
	for _, field := range []string{`"type":"if"`, `"then_block"`, `"else_block"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("output missing %s: %s", field, data)
		}
	}
}

func TestMarshalOmitsEmpty(t *testing.T) {
	data, err := Marshal(Command("x"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, field := range []string{"children", "condition", "message", "then_block", "body"} {
		if strings.Contains(string(data), field) {
			t.Errorf("output should omit empty %s: %s", field, data)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tree := Block("process",
		Command("init"),
		If("ok", Sequence(Command("a"), Command("b")), ErrorNode("bad")),
		Loop("more", Command("next")),
	)

	data, err := Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !Equal(got, tree) {
		t.Error("round-tripped tree differs from the original")
	}
	if got.Children[1].Else.Kind != KindError || got.Children[1].Else.Message != "bad" {
		t.Error("error node did not survive the round trip")
	}
	if got.Children[2].Body.Label != "next" {
		t.Error("loop body did not survive the round trip")
	}
}
