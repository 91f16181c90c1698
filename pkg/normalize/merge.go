package normalize

// DeepMerge recursively merges src into dst in place and returns dst.
// For each key: when both sides hold a plain object, the merge recurses;
// otherwise the source value replaces the target value outright. Arrays
// are always replaced, never concatenated or merged element-wise.
func DeepMerge(dst, src map[string]any) map[string]any {
	for k, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				DeepMerge(dm, sm)
				continue
			}
		}
		dst[k] = sv
	}
	return dst
}
