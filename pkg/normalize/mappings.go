package normalize

import "strconv"

// ValueMappings converts a list of tagged mapping entries into the output
// schema's per-type option-bag shape. Each entry is a map with a "type"
// tag (value, range, regex, special) plus display options (text, color,
// index). Absent input yields an empty list. Already-converted entries
// (carrying an "options" bag) pass through unchanged.
func ValueMappings(input any) []map[string]any {
	entries, ok := input.([]any)
	if !ok {
		if typed, ok := input.([]map[string]any); ok {
			entries = make([]any, len(typed))
			for i, e := range typed {
				entries[i] = e
			}
		} else {
			return []map[string]any{}
		}
	}

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if _, done := entry["options"]; done {
			out = append(out, entry)
			continue
		}
		if m := valueMapping(entry); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func valueMapping(entry map[string]any) map[string]any {
	result := mappingResult(entry)

	switch entry["type"] {
	case "value", nil:
		match, ok := entry["value"]
		if !ok {
			return nil
		}
		key, ok := exactMatchKey(match)
		if !ok {
			return nil
		}
		return map[string]any{
			"type":    "value",
			"options": map[string]any{key: result},
		}
	case "range":
		options := map[string]any{"result": result}
		if from, ok := asFloat(entry["from"]); ok {
			options["from"] = from
		}
		if to, ok := asFloat(entry["to"]); ok {
			options["to"] = to
		}
		return map[string]any{"type": "range", "options": options}
	case "regex":
		pattern, _ := entry["pattern"].(string)
		return map[string]any{
			"type":    "regex",
			"options": map[string]any{"pattern": pattern, "result": result},
		}
	case "special":
		match, _ := entry["match"].(string)
		return map[string]any{
			"type":    "special",
			"options": map[string]any{"match": match, "result": result},
		}
	}
	return nil
}

// exactMatchKey renders an exact-match value as its option-bag key.
// Numeric matches ("0" means down) are keyed by their shortest decimal
// form, matching how the output schema stores them.
func exactMatchKey(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if f, ok := asFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// mappingResult extracts the optional display text/color/index of one
// mapping entry.
func mappingResult(entry map[string]any) map[string]any {
	result := map[string]any{}
	if text, ok := entry["text"].(string); ok {
		result["text"] = text
	}
	if color, ok := entry["color"].(string); ok {
		result["color"] = Color(color)
	}
	if index, ok := asFloat(entry["index"]); ok {
		result["index"] = int(index)
	}
	return result
}
