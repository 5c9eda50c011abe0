package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/padviz/pkg/layout"
)

// MarshalGeometry serializes a geometry tree as pretty-printed JSON.
// This is the payload of the json output format and of the layout
// service endpoint.
func MarshalGeometry(g *layout.Node) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize geometry: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalGeometry deserializes a geometry tree from JSON.
func UnmarshalGeometry(data []byte) (*layout.Node, error) {
	var g layout.Node
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	return &g, nil
}
