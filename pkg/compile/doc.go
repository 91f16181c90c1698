// Package compile turns an authored node tree into a dashboard document.
//
// A compile pass is a pure function of (input tree, options) → document.
// All mutable state — the grid cursor, the defaults stack, the id counter
// and the output accumulators — lives in one context owned by the pass,
// so independent passes may run concurrently. The walker visits children
// in document order and dispatches on the node kind: scope nodes (row,
// container, defaults) adjust engine state around their children, side
// entities (variable, annotation, link) accumulate outside layout, and
// panel nodes emit one output record each.
//
// Errors are structural and fatal: a non-dashboard root, a container with
// an inconsistent width declaration, or a child panel exceeding its
// container width abort the pass with a coded error. There is no partial
// output.
package compile
