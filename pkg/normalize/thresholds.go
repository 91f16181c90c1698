package normalize

import (
	"sort"
	"strconv"
)

// ThresholdStep is one entry of a canonical threshold list. The first
// step is always the base step with a nil value.
type ThresholdStep struct {
	Color string   `json:"color"`
	Value *float64 `json:"value"`
}

// Thresholds converts threshold shorthand into an ordered step list. The
// input is either absent, a map of numeric-breakpoint to color, or a list
// of (breakpoint, color) pairs. The output starts with a base step
// (value nil, base color) followed by the breakpoints sorted ascending;
// every color goes through [Color]. An already-canonical list passes
// through with only color canonicalization.
func Thresholds(input any, base string) []ThresholdStep {
	steps := []ThresholdStep{{Color: Color(base)}}

	switch v := input.(type) {
	case nil:
		return steps
	case []ThresholdStep:
		out := make([]ThresholdStep, len(v))
		for i, s := range v {
			out[i] = ThresholdStep{Color: Color(s.Color), Value: s.Value}
		}
		if len(out) == 0 || out[0].Value != nil {
			out = append(steps, out...)
		}
		sortSteps(out)
		return out
	case map[string]any:
		steps = append(steps, stepsFromStringMap(v)...)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, c := range v {
			m[k] = c
		}
		steps = append(steps, stepsFromStringMap(m)...)
	case map[float64]string:
		for val, c := range v {
			steps = append(steps, step(val, c))
		}
	case map[int]string:
		for val, c := range v {
			steps = append(steps, step(float64(val), c))
		}
	case []any:
		for _, e := range v {
			if s, ok := stepFromEntry(e); ok {
				steps = append(steps, s)
			}
		}
	}

	sortSteps(steps)
	return steps
}

func step(value float64, color string) ThresholdStep {
	v := value
	return ThresholdStep{Color: Color(color), Value: &v}
}

func stepsFromStringMap(m map[string]any) []ThresholdStep {
	out := make([]ThresholdStep, 0, len(m))
	for k, c := range m {
		val, err := strconv.ParseFloat(k, 64)
		if err != nil {
			continue
		}
		if color, ok := c.(string); ok {
			out = append(out, step(val, color))
		}
	}
	return out
}

// stepFromEntry accepts one (breakpoint, color) pair, either as a
// two-element list or as a map with "value" and "color" keys.
func stepFromEntry(e any) (ThresholdStep, bool) {
	switch pair := e.(type) {
	case []any:
		if len(pair) != 2 {
			return ThresholdStep{}, false
		}
		val, ok := asFloat(pair[0])
		if !ok {
			return ThresholdStep{}, false
		}
		color, ok := pair[1].(string)
		if !ok {
			return ThresholdStep{}, false
		}
		return step(val, color), true
	case map[string]any:
		val, ok := asFloat(pair["value"])
		if !ok {
			return ThresholdStep{}, false
		}
		color, _ := pair["color"].(string)
		return step(val, color), true
	}
	return ThresholdStep{}, false
}

// sortSteps orders breakpoints ascending, keeping the base step first.
func sortSteps(steps []ThresholdStep) {
	sort.SliceStable(steps, func(i, j int) bool {
		a, b := steps[i].Value, steps[j].Value
		if a == nil || b == nil {
			return b != nil
		}
		return *a < *b
	})
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
