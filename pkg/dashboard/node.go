package dashboard

import "strings"

// Kind identifies the type of a tree node. The set is closed: the compiler
// dispatches exhaustively over these values, with KindComposite as the
// explicit variant for opaque grouping wrappers.
type Kind string

// Structural and side-entity kinds.
const (
	KindDashboard  Kind = "dashboard"
	KindRow        Kind = "row"
	KindContainer  Kind = "container"
	KindDefaults   Kind = "defaults"
	KindTarget     Kind = "target"
	KindVariable   Kind = "variable"
	KindAnnotation Kind = "annotation"
	KindLink       Kind = "link"

	// KindTextNode is a text content leaf. Text children supply panel
	// queries and variable query strings.
	KindTextNode Kind = "#text"

	// KindComposite is an opaque grouping wrapper: it emits nothing itself
	// and the compiler recurses into its children (or its expansion, when
	// the node carries an Expand hook).
	KindComposite Kind = "composite"
)

// Visual panel kinds. Each maps 1:1 to a panel type string in the output
// document.
const (
	KindTimeseries     Kind = "timeseries"
	KindBarChart       Kind = "barchart"
	KindBarGauge       Kind = "bargauge"
	KindStat           Kind = "stat"
	KindGauge          Kind = "gauge"
	KindTable          Kind = "table"
	KindText           Kind = "text"
	KindHeatmap        Kind = "heatmap"
	KindHistogram      Kind = "histogram"
	KindLogs           Kind = "logs"
	KindNews           Kind = "news"
	KindPieChart       Kind = "piechart"
	KindStateTimeline  Kind = "state-timeline"
	KindStatusHistory  Kind = "status-history"
	KindXYChart        Kind = "xychart"
	KindCanvas         Kind = "canvas"
	KindCandlestick    Kind = "candlestick"
	KindDashList       Kind = "dashlist"
	KindAlertList      Kind = "alertlist"
	KindAnnotationList Kind = "annolist"
	KindNodeGraph      Kind = "nodeGraph"
	KindTrend          Kind = "trend"
	KindTraces         Kind = "traces"
	KindFlameGraph     Kind = "flamegraph"
	KindGeomap         Kind = "geomap"
	KindDatagrid       Kind = "datagrid"
)

// PanelKinds is the set of visual panel kinds in dispatch order.
var PanelKinds = []Kind{
	KindTimeseries, KindBarChart, KindBarGauge, KindStat, KindGauge,
	KindTable, KindText, KindHeatmap, KindHistogram, KindLogs, KindNews,
	KindPieChart, KindStateTimeline, KindStatusHistory, KindXYChart,
	KindCanvas, KindCandlestick, KindDashList, KindAlertList,
	KindAnnotationList, KindNodeGraph, KindTrend, KindTraces,
	KindFlameGraph, KindGeomap, KindDatagrid,
}

var panelKindSet = func() map[Kind]bool {
	m := make(map[Kind]bool, len(PanelKinds))
	for _, k := range PanelKinds {
		m[k] = true
	}
	return m
}()

// IsPanel reports whether k is a visual panel kind.
func IsPanel(k Kind) bool { return panelKindSet[k] }

// Node is one element of the input tree. A node either carries text
// content (KindTextNode) or a property bag plus an ordered child list.
type Node struct {
	Kind     Kind
	Props    Props
	Children []*Node

	// Text holds the content of a KindTextNode leaf.
	Text string

	// Expand, when non-nil, marks a function-node indirection: the
	// compiler invokes it and recurses into the produced subtree instead
	// of this node's children.
	Expand func() *Node
}

// TextNode creates a text content leaf.
func TextNode(s string) *Node {
	return &Node{Kind: KindTextNode, Text: s}
}

// New creates a node of the given kind with props and children.
func New(kind Kind, props Props, children ...*Node) *Node {
	return &Node{Kind: kind, Props: props, Children: children}
}

// TextContent returns the concatenated text of the node's immediate text
// children, trimmed of surrounding whitespace.
func (n *Node) TextContent() string {
	var b strings.Builder
	for _, c := range n.Children {
		if c != nil && c.Kind == KindTextNode {
			b.WriteString(c.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
