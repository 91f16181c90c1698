package normalize

// TooltipOptions is the canonical per-panel tooltip configuration.
type TooltipOptions struct {
	Mode string `json:"mode"`
	Sort string `json:"sort"`
}

// Tooltip converts tooltip shorthand. Absent input yields single mode
// with no sorting; a bare mode string expands to a minimal object; a
// full object is defaulted field by field.
func Tooltip(input any) TooltipOptions {
	out := TooltipOptions{Mode: "single", Sort: "none"}

	switch v := input.(type) {
	case string:
		out.Mode = v
	case TooltipOptions:
		if v.Mode == "" {
			v.Mode = out.Mode
		}
		if v.Sort == "" {
			v.Sort = out.Sort
		}
		return v
	case map[string]any:
		if mode, ok := v["mode"].(string); ok {
			out.Mode = mode
		}
		if sort, ok := v["sort"].(string); ok {
			out.Sort = sort
		}
	}
	return out
}

// ReduceOptions is the canonical reduce configuration for single-value
// panels (stat, gauge, bar gauge, pie chart).
type ReduceOptions struct {
	Values bool     `json:"values"`
	Calcs  []string `json:"calcs"`
	Fields string   `json:"fields,omitempty"`
}

// Reduce converts reduce shorthand. Absent input yields the lastNotNull
// calculation over reduced values; a bare calculation name expands to a
// minimal object; a full object is defaulted field by field.
func Reduce(input any) ReduceOptions {
	out := ReduceOptions{Calcs: []string{"lastNotNull"}}

	switch v := input.(type) {
	case string:
		out.Calcs = []string{v}
	case ReduceOptions:
		if v.Calcs == nil {
			v.Calcs = []string{"lastNotNull"}
		}
		return v
	case map[string]any:
		if values, ok := v["values"].(bool); ok {
			out.Values = values
		}
		if calcs := asStrings(v["calcs"]); calcs != nil {
			out.Calcs = calcs
		}
		if fields, ok := v["fields"].(string); ok {
			out.Fields = fields
		}
	}
	return out
}

// LineStyleOptions is the canonical line-style configuration.
type LineStyleOptions struct {
	Fill string    `json:"fill"`
	Dash []float64 `json:"dash,omitempty"`
}

// LineStyle converts line-style shorthand. Absent input yields a solid
// line; the "dash" and "dot" scalars expand to their preset patterns; a
// full object is defaulted field by field.
func LineStyle(input any) LineStyleOptions {
	out := LineStyleOptions{Fill: "solid"}

	switch v := input.(type) {
	case string:
		switch v {
		case "dash":
			out.Fill = "dash"
			out.Dash = []float64{10, 10}
		case "dot":
			out.Fill = "dot"
			out.Dash = []float64{0, 10}
		case "solid":
		default:
			out.Fill = v
		}
	case LineStyleOptions:
		if v.Fill == "" {
			v.Fill = "solid"
		}
		return v
	case map[string]any:
		if fill, ok := v["fill"].(string); ok {
			out.Fill = fill
		}
		if dash, ok := v["dash"].([]any); ok {
			out.Dash = make([]float64, 0, len(dash))
			for _, d := range dash {
				if f, ok := asFloat(d); ok {
					out.Dash = append(out.Dash, f)
				}
			}
		} else if dash, ok := v["dash"].([]float64); ok {
			out.Dash = dash
		}
	}
	return out
}

// ScaleDistributionOptions is the canonical axis scale configuration.
type ScaleDistributionOptions struct {
	Type string  `json:"type"`
	Log  float64 `json:"log,omitempty"`
}

// ScaleDistribution converts scale shorthand. Absent input yields a
// linear scale; the "log" scalar selects base-2 log; a bare number
// selects a log scale with that base; a full object is defaulted field
// by field.
func ScaleDistribution(input any) ScaleDistributionOptions {
	out := ScaleDistributionOptions{Type: "linear"}

	switch v := input.(type) {
	case string:
		if v == "log" {
			return ScaleDistributionOptions{Type: "log", Log: 2}
		}
		out.Type = v
	case ScaleDistributionOptions:
		if v.Type == "" {
			v.Type = "linear"
		}
		return v
	case map[string]any:
		if typ, ok := v["type"].(string); ok {
			out.Type = typ
		}
		if base, ok := asFloat(v["log"]); ok {
			out.Log = base
		}
	default:
		if base, ok := asFloat(input); ok {
			return ScaleDistributionOptions{Type: "log", Log: base}
		}
	}
	return out
}
