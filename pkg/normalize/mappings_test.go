package normalize

import (
	"reflect"
	"testing"
)

func TestValueMappings(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []map[string]any
	}{
		{
			name:  "absent yields empty list",
			input: nil,
			want:  []map[string]any{},
		},
		{
			name: "exact value",
			input: []any{
				map[string]any{"type": "value", "value": "down", "text": "DOWN", "color": "red"},
			},
			want: []map[string]any{
				{
					"type":    "value",
					"options": map[string]any{"down": map[string]any{"text": "DOWN", "color": "red"}},
				},
			},
		},
		{
			name: "numeric exact value keyed by decimal form",
			input: []any{
				map[string]any{"type": "value", "value": 0.0, "text": "down", "color": "red"},
				map[string]any{"type": "value", "value": 1.5, "text": "partial"},
			},
			want: []map[string]any{
				{
					"type":    "value",
					"options": map[string]any{"0": map[string]any{"text": "down", "color": "red"}},
				},
				{
					"type":    "value",
					"options": map[string]any{"1.5": map[string]any{"text": "partial"}},
				},
			},
		},
		{
			name: "range with index",
			input: []any{
				map[string]any{"type": "range", "from": 0.0, "to": 50.0, "text": "low", "index": 1.0},
			},
			want: []map[string]any{
				{
					"type": "range",
					"options": map[string]any{
						"from": 0.0, "to": 50.0,
						"result": map[string]any{"text": "low", "index": 1},
					},
				},
			},
		},
		{
			name: "regex and special",
			input: []any{
				map[string]any{"type": "regex", "pattern": "err.*", "text": "error"},
				map[string]any{"type": "special", "match": "null", "text": "n/a"},
			},
			want: []map[string]any{
				{
					"type":    "regex",
					"options": map[string]any{"pattern": "err.*", "result": map[string]any{"text": "error"}},
				},
				{
					"type":    "special",
					"options": map[string]any{"match": "null", "result": map[string]any{"text": "n/a"}},
				},
			},
		},
		{
			name: "alias colors canonicalized",
			input: []any{
				map[string]any{"type": "value", "value": "warn", "color": "ylw"},
			},
			want: []map[string]any{
				{
					"type":    "value",
					"options": map[string]any{"warn": map[string]any{"color": "#EAB839"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueMappings(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValueMappings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValueMappingsIdempotent(t *testing.T) {
	first := ValueMappings([]any{
		map[string]any{"type": "value", "value": "up", "text": "UP", "color": "green"},
	})
	entries := make([]any, len(first))
	for i, e := range first {
		entries[i] = e
	}
	second := ValueMappings(entries)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-normalizing changed the value: %+v vs %+v", first, second)
	}
}

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name string
		dst  map[string]any
		src  map[string]any
		want map[string]any
	}{
		{
			name: "scalar replaces scalar",
			dst:  map[string]any{"a": 1},
			src:  map[string]any{"a": 2},
			want: map[string]any{"a": 2},
		},
		{
			name: "nested objects recurse",
			dst:  map[string]any{"cfg": map[string]any{"a": 1, "b": 2}},
			src:  map[string]any{"cfg": map[string]any{"b": 3}},
			want: map[string]any{"cfg": map[string]any{"a": 1, "b": 3}},
		},
		{
			name: "arrays replaced outright",
			dst:  map[string]any{"xs": []any{1, 2, 3}},
			src:  map[string]any{"xs": []any{9}},
			want: map[string]any{"xs": []any{9}},
		},
		{
			name: "object replaces scalar",
			dst:  map[string]any{"a": 1},
			src:  map[string]any{"a": map[string]any{"b": 2}},
			want: map[string]any{"a": map[string]any{"b": 2}},
		},
		{
			name: "nil source value replaces",
			dst:  map[string]any{"a": 1},
			src:  map[string]any{"a": nil},
			want: map[string]any{"a": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepMerge(tt.dst, tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeepMerge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDeepMergeReturnsTarget(t *testing.T) {
	dst := map[string]any{"a": 1}
	got := DeepMerge(dst, map[string]any{"b": 2})
	if !reflect.DeepEqual(dst, got) {
		t.Error("DeepMerge should mutate and return the target map")
	}
	if dst["b"] != 2 {
		t.Error("DeepMerge should merge in place")
	}
}
