package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/errors"
)

// WriteDashboard encodes a compiled document as JSON and writes it to w.
// With pretty set, the output is indented for human review; otherwise it
// is compact, the form the HTTP API serves.
func WriteDashboard(d *dashboard.Dashboard, w io.Writer, pretty bool) error {
	data, err := d.Marshal(pretty)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	if pretty {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}
	return nil
}

// MarshalTree encodes a tree back into its wire form. Text nodes become
// bare strings, so a tree read with [ReadTree] round-trips byte-stable
// once key order settles. The canonical bytes feed cache key derivation.
func MarshalTree(n *dashboard.Node) ([]byte, error) {
	data, err := json.Marshal(fromNode(n))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return data, nil
}

func fromNode(n *dashboard.Node) *treeNode {
	t := &treeNode{Kind: string(n.Kind), Props: n.Props}
	for _, c := range n.Children {
		if c.Kind == dashboard.KindTextNode {
			t.Children = append(t.Children, childNode{leaf: true, text: c.Text})
			continue
		}
		t.Children = append(t.Children, childNode{node: fromNode(c)})
	}
	return t
}

// ExportDashboard writes a compiled document to a JSON file at path.
// This is a convenience wrapper around [WriteDashboard] for file output.
func ExportDashboard(d *dashboard.Dashboard, path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteDashboard(d, f, pretty)
}
