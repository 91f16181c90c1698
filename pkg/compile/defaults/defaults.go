// Package defaults implements the scoped, stackable property-override
// resolver of the compiler.
//
// Layers are pushed on entering a defaults scope (or the document root)
// and popped on exit; scopes nest strictly. Each layer holds global
// overrides plus optional per-panel-kind sub-maps. A nil value at any
// layer unsets the key: resolution falls through to whatever a lower
// layer (or the built-in default) supplies.
//
// Resolution precedence is layer order first, kind-specificity second
// within a layer: an inner layer's global value beats an outer layer's
// kind-specific value. This asymmetry reproduces the observed behavior of
// the system this compiler replaces and is kept intentionally.
package defaults

// Layer is one named set of overrides on the stack.
type Layer struct {
	// Global applies to every panel kind.
	Global map[string]any

	// Kinds holds per-panel-kind overrides, beating the same layer's
	// global value for that kind.
	Kinds map[string]map[string]any
}

// FromProps splits a scope node's property bag into a layer. Map-valued
// keys naming a panel kind (as decided by isKind) become kind-specific
// sub-maps; everything else is a global override. An explicit nil value
// is kept as the unset sentinel.
func FromProps(props map[string]any, isKind func(string) bool) Layer {
	l := Layer{Global: map[string]any{}}
	for k, v := range props {
		if m, ok := v.(map[string]any); ok && isKind != nil && isKind(k) {
			if l.Kinds == nil {
				l.Kinds = map[string]map[string]any{}
			}
			l.Kinds[k] = m
			continue
		}
		l.Global[k] = v
	}
	return l
}

// Merge overlays other onto l and returns the combined layer; other wins
// on conflicting keys. Neither input is mutated.
func (l Layer) Merge(other Layer) Layer {
	out := Layer{Global: map[string]any{}}
	for k, v := range l.Global {
		out.Global[k] = v
	}
	for k, v := range other.Global {
		out.Global[k] = v
	}
	if len(l.Kinds) > 0 || len(other.Kinds) > 0 {
		out.Kinds = map[string]map[string]any{}
		for kind, m := range l.Kinds {
			merged := make(map[string]any, len(m))
			for k, v := range m {
				merged[k] = v
			}
			out.Kinds[kind] = merged
		}
		for kind, m := range other.Kinds {
			merged, ok := out.Kinds[kind]
			if !ok {
				merged = make(map[string]any, len(m))
				out.Kinds[kind] = merged
			}
			for k, v := range m {
				merged[k] = v
			}
		}
	}
	return out
}

// Empty reports whether the layer carries no overrides.
func (l Layer) Empty() bool {
	return len(l.Global) == 0 && len(l.Kinds) == 0
}

// Stack is the ordered list of layers in effect. The zero value is an
// empty stack.
type Stack struct {
	layers []Layer
}

// Push adds a layer on scope entry.
func (s *Stack) Push(l Layer) {
	s.layers = append(s.layers, l)
}

// Pop removes the most recent layer on scope exit. Scopes nest strictly,
// so push/pop pairs never interleave.
func (s *Stack) Pop() {
	if n := len(s.layers); n > 0 {
		s.layers = s.layers[:n-1]
	}
}

// Depth returns the number of layers in effect.
func (s *Stack) Depth() int { return len(s.layers) }

// Resolve folds the stack bottom to top for the given panel kind: each
// layer applies its global keys, then re-applies its kind-specific keys,
// so kind-specific wins within a layer but any later layer wins across
// layers. A nil value deletes the key from the running result.
func (s *Stack) Resolve(kind string) map[string]any {
	out := map[string]any{}
	for _, l := range s.layers {
		apply(out, l.Global)
		apply(out, l.Kinds[kind])
	}
	return out
}

func apply(dst map[string]any, src map[string]any) {
	for k, v := range src {
		if v == nil {
			delete(dst, k)
			continue
		}
		dst[k] = v
	}
}
