package compile

import (
	"strings"

	"github.com/dashforge/dashforge/pkg/dashboard"
)

// RefID returns the short letter code identifying target index i:
// A, B, ..., Z, AA, AB, ... (bijective base 26).
func RefID(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}

// targetsOf extracts the query targets of a panel node: text children
// become expression targets, target children are carried verbatim.
// Targets lacking an explicit refId get a sequential one by position.
func targetsOf(n *dashboard.Node) []dashboard.Target {
	var out []dashboard.Target
	for _, child := range n.Children {
		switch child.Kind {
		case dashboard.KindTextNode:
			expr := strings.TrimSpace(child.Text)
			if expr == "" {
				continue
			}
			out = append(out, dashboard.Target{"expr": expr})
		case dashboard.KindTarget:
			out = append(out, dashboard.Target(child.Props.Clone()))
		}
	}
	for i, t := range out {
		if _, ok := t["refId"]; !ok {
			t["refId"] = RefID(i)
		}
	}
	return out
}
