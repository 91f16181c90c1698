package dashboard

import "strings"

// TimeRange is the document's visible time window. Values follow the
// target tool's relative-time syntax ("now-6h", "now") or absolute
// timestamps.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DefaultTimeRange is used when the document declares no range.
var DefaultTimeRange = TimeRange{From: "now-6h", To: "now"}

// ParseTimeRange expands the bare-duration shorthand: "6h" becomes
// {from: "now-6h", to: "now"}. Strings already containing "now" or an
// absolute timestamp are used verbatim as the from edge.
func ParseTimeRange(s string) TimeRange {
	if s == "" {
		return DefaultTimeRange
	}
	if strings.Contains(s, "now") {
		return TimeRange{From: s, To: "now"}
	}
	return TimeRange{From: "now-" + s, To: "now"}
}

// Tooltip sharing modes in the output document.
const (
	TooltipHidden = 0 // no shared tooltip across panels
	TooltipSingle = 1 // shared crosshair only
	TooltipShared = 2 // shared crosshair and tooltip
)

// TooltipMode maps the three-way sharing enum to its integer code.
// Unrecognized values fall back to hidden.
func TooltipMode(s string) int {
	switch s {
	case "shared":
		return TooltipShared
	case "single":
		return TooltipSingle
	default:
		return TooltipHidden
	}
}
