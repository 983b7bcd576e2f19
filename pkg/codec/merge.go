package codec

// Composite coerces a stored serialize-mode record into a map. Anything that
// is not a map (missing, corrupt or legacy scalar data) yields an empty map.
func Composite(stored any) map[string]any {
	switch value := stored.(type) {
	case map[string]any:
		return cloneMap(value)
	case map[string]string:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = item
		}
		return out
	default:
		return map[string]any{}
	}
}

// Merge applies the serialize-mode policy for one field. removed is the
// composite without name and is always written first; when keep is true,
// merged (removed plus the trimmed value) is written second.
func Merge(old any, name string, submitted any) (removed, merged map[string]any, keep bool) {
	removed = Composite(old)
	delete(removed, name)

	value := Trim(submitted)
	if IsEmpty(value) {
		return removed, nil, false
	}

	merged = cloneMap(removed)
	merged[name] = value
	return removed, merged, true
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
