package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "tree.json")
	out := filepath.Join(dir, "out.json")

	input := `{
		"kind": "dashboard",
		"props": {"title": "svc", "uid": "svc"},
		"children": [
			{"kind": "timeseries", "props": {"title": "RPS", "width": 12},
			 "children": ["rate(http_requests_total[5m])"]}
		]
	}`
	if err := os.WriteFile(tree, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"build", tree, "-o", out, "--no-cache"})

	if err := root.Execute(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["uid"] != "svc" {
		t.Errorf("uid = %v", doc["uid"])
	}
	panels, ok := doc["panels"].([]any)
	if !ok || len(panels) != 1 {
		t.Fatalf("panels = %v", doc["panels"])
	}
}

func TestBuildCommandStdout(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(tree, []byte(`{"kind":"dashboard","props":{"title":"t"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"build", tree, "--no-cache"})

	if err := root.Execute(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not valid JSON: %v", err)
	}
	if doc["title"] != "t" {
		t.Errorf("title = %v", doc["title"])
	}
}

func TestBuildCommandReportsCacheHit(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	tree := filepath.Join(dir, "tree.json")
	out := filepath.Join(dir, "out.json")
	input := `{
		"kind": "dashboard",
		"props": {"title": "svc", "uid": "svc"},
		"children": [
			{"kind": "stat", "props": {"title": "Up"}, "children": ["up"]}
		]
	}`
	if err := os.WriteFile(tree, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	c := New(&logs, LogInfo)

	run := func() {
		t.Helper()
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs([]string{"build", tree, "-o", out})
		if err := root.Execute(); err != nil {
			t.Fatalf("build failed: %v", err)
		}
	}

	run()
	if !strings.Contains(logs.String(), "Compiled 1 panels") {
		t.Errorf("first run should compile: %q", logs.String())
	}

	logs.Reset()
	run()
	if !strings.Contains(logs.String(), "Loaded cached document") {
		t.Errorf("second run should report the cached document: %q", logs.String())
	}
	if strings.Contains(logs.String(), "Compiled 0 panels") {
		t.Errorf("cache hit must not report zero compiled panels: %q", logs.String())
	}
}

func TestBuildCommandMissingInput(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"build", filepath.Join(t.TempDir(), "nope.json"), "--no-cache"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}
