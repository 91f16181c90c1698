package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/errors"
)

func TestReadTree(t *testing.T) {
	input := `{
		"kind": "dashboard",
		"props": {"title": "svc"},
		"children": [
			{"kind": "row", "props": {"title": "Traffic"}, "children": [
				{"kind": "timeseries", "props": {"width": 12},
				 "children": ["rate(http_requests_total[5m])"]}
			]}
		]
	}`

	root, err := ReadTree(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTree() error: %v", err)
	}

	if root.Kind != dashboard.KindDashboard {
		t.Errorf("root kind = %q", root.Kind)
	}
	if root.Props.String("title", "") != "svc" {
		t.Errorf("root title = %v", root.Props["title"])
	}

	row := root.Children[0]
	if row.Kind != dashboard.KindRow || len(row.Children) != 1 {
		t.Fatalf("row = %+v", row)
	}

	ts := row.Children[0]
	if ts.Kind != dashboard.KindTimeseries {
		t.Errorf("panel kind = %q", ts.Kind)
	}
	if len(ts.Children) != 1 || ts.Children[0].Kind != dashboard.KindTextNode {
		t.Fatalf("string child should decode to a text node, got %+v", ts.Children)
	}
	if ts.Children[0].Text != "rate(http_requests_total[5m])" {
		t.Errorf("text = %q", ts.Children[0].Text)
	}
}

func TestReadTreeMalformed(t *testing.T) {
	_, err := ReadTree(strings.NewReader(`{"kind": `))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestImportTreeMissingFile(t *testing.T) {
	_, err := ImportTree(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestMarshalTreeRoundTrip(t *testing.T) {
	root := dashboard.New(dashboard.KindDashboard, dashboard.Props{"title": "t"},
		dashboard.New(dashboard.KindStat, dashboard.Props{"width": float64(6)},
			dashboard.TextNode("up"),
		),
	)

	first, err := MarshalTree(root)
	if err != nil {
		t.Fatal(err)
	}

	reread, err := ReadTree(strings.NewReader(string(first)))
	if err != nil {
		t.Fatal(err)
	}
	second, err := MarshalTree(reread)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("canonical form is not stable:\n%s\n%s", first, second)
	}
	if !strings.Contains(string(first), `"up"`) {
		t.Error("text node should encode as a bare string")
	}
}

func TestWriteDashboard(t *testing.T) {
	d := &dashboard.Dashboard{
		UID:           "svc",
		Title:         "Service Health",
		Tags:          []string{},
		Panels:        []*dashboard.Panel{},
		Time:          dashboard.DefaultTimeRange,
		SchemaVersion: dashboard.SchemaVersion,
	}

	var compact, pretty bytes.Buffer
	if err := WriteDashboard(d, &compact, false); err != nil {
		t.Fatal(err)
	}
	if err := WriteDashboard(d, &pretty, true); err != nil {
		t.Fatal(err)
	}

	var view map[string]any
	if err := json.Unmarshal(compact.Bytes(), &view); err != nil {
		t.Fatalf("compact output is not valid JSON: %v", err)
	}
	if view["uid"] != "svc" {
		t.Errorf("uid = %v", view["uid"])
	}

	if !strings.Contains(pretty.String(), "\n  ") {
		t.Error("pretty output should be indented")
	}
	if !strings.HasSuffix(pretty.String(), "\n") {
		t.Error("pretty output should end with a newline")
	}
}
