// Package dashboard defines the input node tree and the output document
// model for the dashforge compiler.
//
// The input side is a tree of [Node] values: a dashboard root, scope nodes
// (rows, containers, defaults), side-entity nodes (variables, annotations,
// links) and visual panel nodes. Nodes carry a [Props] bag of optional,
// kind-specific properties and an ordered child list. Nodes are immutable
// as authored; the compiler never mutates them.
//
// The output side is the [Dashboard] envelope with its ordered [Panel]
// records, matching the JSON schema the target dashboarding tool ingests.
// Panel records support a raw-merge escape hatch applied on the loosely
// typed serialization view, so authored overrides can reach any field
// without weakening the typed model.
package dashboard
