package dashboard

// Props is the property bag attached to a node. All fields are optional;
// accessors return the supplied fallback when a key is absent or has an
// incompatible type. Numeric values decoded from JSON arrive as float64,
// so the integer accessor accepts both int and float64.
type Props map[string]any

// Has reports whether the key is present, even with a nil value.
func (p Props) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the string value for key, or fallback.
func (p Props) String(key, fallback string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns the integer value for key, or fallback.
func (p Props) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// Float returns the float value for key, or fallback.
func (p Props) Float(key string, fallback float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

// Bool returns the boolean value for key, or fallback.
func (p Props) Bool(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}

// Map returns the map value for key, or nil.
func (p Props) Map(key string) map[string]any {
	v, _ := p[key].(map[string]any)
	return v
}

// Strings returns the string-slice value for key, accepting both []string
// and []any with string elements.
func (p Props) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone returns a shallow copy of the bag. Nested values are shared.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Without returns a shallow copy with the given keys removed.
func (p Props) Without(keys ...string) Props {
	out := p.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
