// Package io provides JSON import and export for dashboard node trees and
// rendered documents.
//
// # Tree Format
//
// An input tree is a JSON object with a "kind", an optional "props" object
// and an optional "children" array:
//
//	{
//	  "kind": "dashboard",
//	  "props": {"title": "Service Health", "datasource": "prometheus"},
//	  "children": [
//	    {"kind": "row", "props": {"title": "Traffic"}, "children": [
//	      {"kind": "timeseries", "props": {"title": "RPS", "width": 12},
//	       "children": ["rate(http_requests_total[5m])"]}
//	    ]}
//	  ]
//	}
//
// A bare string inside "children" is shorthand for a text node; panels
// treat text children as query expressions and text panels treat them as
// content. Everything else in "props" passes through untouched, so the
// format carries arbitrary per-kind configuration without this package
// knowing about it.
//
// # Import
//
// Use [ImportTree] to read a tree from a file path, or [ReadTree] to read
// from any io.Reader:
//
//	root, err := io.ImportTree("dashboard.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import validates JSON structure only; semantic validation (root kind,
// container constraints) happens at compile time. Errors carry the input
// path or the offending node for context.
//
// # Export
//
// Use [ExportDashboard] to write a compiled document to a file, or
// [WriteDashboard] to write to any io.Writer. Output is the final document
// JSON, importable by the target system as-is.
package io
