// Package pkg provides the core libraries for the dashforge compiler.
//
// # Overview
//
// Dashforge transforms declarative dashboard trees into complete dashboard
// JSON documents. The pkg directory is organized into five main areas:
//
//  1. [dashboard] - Domain types (node trees, the document model)
//  2. [compile] - The compiler (grid placement, defaults resolution)
//  3. [normalize] - Shorthand expansion (thresholds, legends, mappings)
//  4. [cache] - Build cache backends and key derivation
//  5. [pipeline] - Orchestration (load → compile → encode)
//
// # Architecture
//
// The typical data flow through dashforge:
//
//	Tree file / API request
//	         ↓
//	    [io] package (decode the tree)
//	         ↓
//	    [compile] package (grid layout + defaults + panel builders)
//	         ↓
//	    [dashboard] package (document model + serialization)
//	         ↓
//	    dashboard JSON output
//
// # Quick Start
//
//	root, err := io.ImportTree("dashboard.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := compile.Compile(root, compile.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := doc.Marshal(true)
//	os.Stdout.Write(data)
package pkg
