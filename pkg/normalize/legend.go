package normalize

// LegendOptions is the canonical legend configuration.
type LegendOptions struct {
	ShowLegend  bool     `json:"showLegend"`
	DisplayMode string   `json:"displayMode"`
	Placement   string   `json:"placement"`
	Calcs       []string `json:"calcs"`
}

// tableCalcs are the preset calculations attached when a bare placement
// string selects table mode.
var tableCalcs = []string{"mean", "lastNotNull"}

// Legend converts legend shorthand. Absent input yields the fixed default
// (list mode at the bottom, no calculations). A bare placement string
// selects table mode with the preset calculations. A full config object
// is defaulted field by field, never overwriting supplied fields.
func Legend(input any) LegendOptions {
	out := LegendOptions{
		ShowLegend:  true,
		DisplayMode: "list",
		Placement:   "bottom",
		Calcs:       []string{},
	}

	switch v := input.(type) {
	case nil:
		return out
	case bool:
		out.ShowLegend = v
		return out
	case string:
		out.DisplayMode = "table"
		out.Placement = v
		out.Calcs = append([]string(nil), tableCalcs...)
		return out
	case LegendOptions:
		if v.DisplayMode == "" {
			v.DisplayMode = out.DisplayMode
		}
		if v.Placement == "" {
			v.Placement = out.Placement
		}
		if v.Calcs == nil {
			v.Calcs = []string{}
		}
		return v
	case map[string]any:
		if show, ok := v["showLegend"].(bool); ok {
			out.ShowLegend = show
		}
		if mode, ok := v["displayMode"].(string); ok {
			out.DisplayMode = mode
		}
		if placement, ok := v["placement"].(string); ok {
			out.Placement = placement
		}
		if calcs := asStrings(v["calcs"]); calcs != nil {
			out.Calcs = calcs
		}
		return out
	}
	return out
}

func asStrings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
