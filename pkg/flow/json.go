package flow

import (
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Wire Format
// =============================================================================
//
// The JSON shape is the contract with the external language parsers and
// must not change: a `type` discriminant in {sequence, block, if, loop,
// command, error} plus kind-specific fields (children, label, condition,
// then_block, else_block, body, message).

// wireNode is the JSON representation of a Node.
type wireNode struct {
	Type      string      `json:"type"`
	Label     string      `json:"label,omitempty"`
	Condition string      `json:"condition,omitempty"`
	Message   string      `json:"message,omitempty"`
	Children  []*wireNode `json:"children,omitempty"`
	Then      *wireNode   `json:"then_block,omitempty"`
	Else      *wireNode   `json:"else_block,omitempty"`
	Body      *wireNode   `json:"body,omitempty"`
}

// Unmarshal decodes a control-flow tree from JSON bytes.
//
// Decoding is total over syntactically valid JSON: an unknown `type`
// value becomes an error node carrying the offending discriminant, and
// missing child slots (e.g. an `if` without `then_block`) are left nil
// for the layout engine to handle. Only malformed JSON itself fails.
func Unmarshal(data []byte) (*Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode control-flow tree: %w", err)
	}
	return fromWire(&w), nil
}

// Decode reads a control-flow tree from r. See [Unmarshal].
func Decode(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read control-flow tree: %w", err)
	}
	return Unmarshal(data)
}

// Marshal encodes a control-flow tree to its wire JSON.
func Marshal(n *Node) ([]byte, error) {
	return json.Marshal(toWire(n))
}

// MarshalIndent encodes a control-flow tree to pretty-printed wire JSON.
func MarshalIndent(n *Node) ([]byte, error) {
	return json.MarshalIndent(toWire(n), "", "  ")
}

func fromWire(w *wireNode) *Node {
	if w == nil {
		return nil
	}

	kind := Kind(w.Type)
	if !ValidKinds[kind] {
		return ErrorNode(fmt.Sprintf("unknown node type %q", w.Type))
	}

	n := &Node{
		Kind:      kind,
		Label:     w.Label,
		Condition: w.Condition,
		Message:   w.Message,
		Then:      fromWire(w.Then),
		Else:      fromWire(w.Else),
		Body:      fromWire(w.Body),
	}
	if len(w.Children) > 0 {
		n.Children = make([]*Node, len(w.Children))
		for i, c := range w.Children {
			n.Children[i] = fromWire(c)
		}
	}
	return n
}

func toWire(n *Node) *wireNode {
	if n == nil {
		return nil
	}

	w := &wireNode{
		Type:      string(n.Kind),
		Label:     n.Label,
		Condition: n.Condition,
		Message:   n.Message,
		Then:      toWire(n.Then),
		Else:      toWire(n.Else),
		Body:      toWire(n.Body),
	}
	if len(n.Children) > 0 {
		w.Children = make([]*wireNode, len(n.Children))
		for i, c := range n.Children {
			w.Children[i] = toWire(c)
		}
	}
	return w
}
