package locale

import "fmt"

// Merge deep-merges override into a copy of base. Leaves in override win;
// nested maps are merged key by key instead of replaced. Neither input is
// modified.
func Merge(base, override map[string]any) map[string]any {
	out := Clone(base)
	if out == nil {
		out = make(map[string]any, len(override))
	}
	for key, ov := range override {
		om, ok := asMap(ov)
		if !ok {
			out[key] = ov
			continue
		}
		if bm, ok := asMap(out[key]); ok {
			out[key] = Merge(bm, om)
			continue
		}
		out[key] = Clone(om)
	}
	return out
}

// Clone returns a deep copy of the nested maps in m. Non-map values are shared.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := asMap(v); ok {
			out[k] = Clone(sub)
			continue
		}
		out[k] = v
	}
	return out
}

// asMap normalizes the map shapes produced by the YAML and JSON decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
