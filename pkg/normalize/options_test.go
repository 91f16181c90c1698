package normalize

import (
	"reflect"
	"testing"
)

func TestLegend(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  LegendOptions
	}{
		{
			name:  "absent yields list at bottom",
			input: nil,
			want:  LegendOptions{ShowLegend: true, DisplayMode: "list", Placement: "bottom", Calcs: []string{}},
		},
		{
			name:  "bare placement selects table mode with preset calcs",
			input: "right",
			want:  LegendOptions{ShowLegend: true, DisplayMode: "table", Placement: "right", Calcs: []string{"mean", "lastNotNull"}},
		},
		{
			name:  "bool toggles visibility",
			input: false,
			want:  LegendOptions{ShowLegend: false, DisplayMode: "list", Placement: "bottom", Calcs: []string{}},
		},
		{
			name:  "object defaulted field by field",
			input: map[string]any{"calcs": []any{"max"}},
			want:  LegendOptions{ShowLegend: true, DisplayMode: "list", Placement: "bottom", Calcs: []string{"max"}},
		},
		{
			name:  "explicit fields never overwritten",
			input: map[string]any{"displayMode": "table", "placement": "right"},
			want:  LegendOptions{ShowLegend: true, DisplayMode: "table", Placement: "right", Calcs: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Legend(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Legend() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTooltip(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  TooltipOptions
	}{
		{"absent", nil, TooltipOptions{Mode: "single", Sort: "none"}},
		{"bare mode", "multi", TooltipOptions{Mode: "multi", Sort: "none"}},
		{"object", map[string]any{"sort": "desc"}, TooltipOptions{Mode: "single", Sort: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tooltip(tt.input); got != tt.want {
				t.Errorf("Tooltip() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  ReduceOptions
	}{
		{"absent", nil, ReduceOptions{Calcs: []string{"lastNotNull"}}},
		{"bare calc", "mean", ReduceOptions{Calcs: []string{"mean"}}},
		{
			"object",
			map[string]any{"values": true, "fields": "/.*/"},
			ReduceOptions{Values: true, Calcs: []string{"lastNotNull"}, Fields: "/.*/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reduce() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLineStyle(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  LineStyleOptions
	}{
		{"absent", nil, LineStyleOptions{Fill: "solid"}},
		{"dash shorthand", "dash", LineStyleOptions{Fill: "dash", Dash: []float64{10, 10}}},
		{"dot shorthand", "dot", LineStyleOptions{Fill: "dot", Dash: []float64{0, 10}}},
		{"object", map[string]any{"fill": "dash", "dash": []any{4.0, 4.0}}, LineStyleOptions{Fill: "dash", Dash: []float64{4, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineStyle(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LineStyle() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScaleDistribution(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  ScaleDistributionOptions
	}{
		{"absent", nil, ScaleDistributionOptions{Type: "linear"}},
		{"log shorthand", "log", ScaleDistributionOptions{Type: "log", Log: 2}},
		{"numeric base", 10.0, ScaleDistributionOptions{Type: "log", Log: 10}},
		{"object", map[string]any{"type": "symlog", "log": 2.0}, ScaleDistributionOptions{Type: "symlog", Log: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleDistribution(tt.input); got != tt.want {
				t.Errorf("ScaleDistribution() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizersIdempotent(t *testing.T) {
	legend := Legend("right")
	if got := Legend(legend); !reflect.DeepEqual(got, legend) {
		t.Errorf("Legend not idempotent: %+v vs %+v", got, legend)
	}

	tooltip := Tooltip("multi")
	if got := Tooltip(tooltip); got != tooltip {
		t.Errorf("Tooltip not idempotent: %+v vs %+v", got, tooltip)
	}

	reduce := Reduce("mean")
	if got := Reduce(reduce); !reflect.DeepEqual(got, reduce) {
		t.Errorf("Reduce not idempotent: %+v vs %+v", got, reduce)
	}

	line := LineStyle("dash")
	if got := LineStyle(line); !reflect.DeepEqual(got, line) {
		t.Errorf("LineStyle not idempotent: %+v vs %+v", got, line)
	}

	scale := ScaleDistribution("log")
	if got := ScaleDistribution(scale); got != scale {
		t.Errorf("ScaleDistribution not idempotent: %+v vs %+v", got, scale)
	}
}
