package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/errors"
)

// treeNode is the wire form of one tree node.
type treeNode struct {
	Kind     string         `json:"kind"`
	Props    map[string]any `json:"props,omitempty"`
	Children []childNode    `json:"children,omitempty"`
}

// childNode accepts either a nested node object or a bare string, the
// shorthand for a text node.
type childNode struct {
	node *treeNode
	text string
	leaf bool
}

func (c *childNode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		c.leaf = true
		return json.Unmarshal(trimmed, &c.text)
	}
	c.node = &treeNode{}
	return json.Unmarshal(trimmed, c.node)
}

func (c childNode) MarshalJSON() ([]byte, error) {
	if c.leaf {
		return json.Marshal(c.text)
	}
	return json.Marshal(c.node)
}

// ReadTree decodes a JSON tree from r.
//
// The returned tree is independent of r and can be modified safely after
// ReadTree returns. ReadTree does not close r.
func ReadTree(r io.Reader) (*dashboard.Node, error) {
	dec := json.NewDecoder(r)
	var root treeNode
	if err := dec.Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	return toNode(&root), nil
}

func toNode(t *treeNode) *dashboard.Node {
	n := &dashboard.Node{
		Kind:  dashboard.Kind(t.Kind),
		Props: dashboard.Props(t.Props),
	}
	for _, c := range t.Children {
		if c.leaf {
			n.Children = append(n.Children, dashboard.TextNode(c.text))
			continue
		}
		if c.node != nil {
			n.Children = append(n.Children, toNode(c.node))
		}
	}
	return n
}

// ImportTree reads a JSON file at path and returns the decoded tree.
// The error wraps the underlying cause with the file path for context.
func ImportTree(path string) (*dashboard.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadTree(f)
}
