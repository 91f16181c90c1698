// Package pipeline provides the core build pipeline for dashforge.
//
// This package implements the complete load → compile → encode pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and decode the input tree (file, raw bytes, or in-memory)
//  2. Compile: Walk the tree, place panels on the grid, resolve defaults
//  3. Encode: Serialize the document to its final JSON form
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:  "dashboard.json",
//	    Pretty: true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Encoded)
//
// Run individual stages:
//
//	// Load only
//	tree, err := runner.Load(ctx, opts)
//
//	// Compile an existing tree
//	doc, err := runner.CompileTree(tree, opts)
package pipeline

import (
	"encoding/json"
	stdio "io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/dashforge/dashforge/pkg/cache"
	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/errors"
)

// Options contains all configuration for the build pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one input source is required: a file path,
	// raw tree JSON, or a pre-built tree.
	Input  string          `json:"input,omitempty"`
	Source json.RawMessage `json:"source,omitempty"`
	Tree   *dashboard.Node `json:"-"`

	// Compile options
	DefaultsFile string         `json:"defaults_file,omitempty"` // TOML defaults layer
	Defaults     map[string]any `json:"defaults,omitempty"`      // inline defaults, wins over the file
	UID          string         `json:"uid,omitempty"`

	// Encode options
	Pretty bool `json:"pretty,omitempty"`

	// Refresh bypasses cache reads; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dashboard is the compiled document. Nil when the encoded form was
	// served straight from cache.
	Dashboard *dashboard.Dashboard

	// Encoded is the final document JSON.
	Encoded []byte

	// TreeHash is the content hash of the canonical input tree. The API
	// uses it as the retrieval handle for stored trees.
	TreeHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount  int
	LoadTime    time.Duration
	CompileTime time.Duration
	EncodeTime  time.Duration
	Bytes       int
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	DocumentHit bool // Whether the encoded document came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	sources := 0
	if o.Input != "" {
		sources++
	}
	if len(o.Source) > 0 {
		sources++
	}
	if o.Tree != nil {
		sources++
	}
	if sources == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "an input tree is required")
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "multiple input sources given, want exactly one")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResolveDefaults merges the TOML defaults file (if any) with the inline
// defaults map; inline values win on conflicting keys. The result is the
// external defaults layer handed to the compiler.
func (o *Options) ResolveDefaults() (map[string]any, error) {
	if o.DefaultsFile == "" {
		return o.Defaults, nil
	}
	fromFile := map[string]any{}
	if _, err := toml.DecodeFile(o.DefaultsFile, &fromFile); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "defaults file %s", o.DefaultsFile)
	}
	for k, v := range o.Defaults {
		fromFile[k] = v
	}
	return fromFile, nil
}

// DashboardKeyOpts returns cache key options for document caching.
func (o *Options) DashboardKeyOpts(defaultsHash string) cache.DashboardKeyOpts {
	return cache.DashboardKeyOpts{
		DefaultsHash:  defaultsHash,
		UID:           o.UID,
		Pretty:        o.Pretty,
		SchemaVersion: dashboard.SchemaVersion,
	}
}
