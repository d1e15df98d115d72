package recipe

// dereference walks a parsed property tree and replaces every string
// scalar matching a known identifier by the live object it names.
// Lookup priority: results, then datasets, then figures. The tree is
// rebuilt, never mutated in place, so shared structures stay intact.
func (r *Recipe) dereference(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = r.dereference(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = r.dereference(item)
		}
		return out
	case string:
		if result, ok := r.Results[v]; ok {
			return result
		}
		if ds, ok := r.dataset(v); ok {
			return ds
		}
		if figure, ok := r.Figures[v]; ok {
			return figure
		}
		return v
	default:
		return value
	}
}

// mergeValue overlays an incoming property value onto a step's current
// value. Nested maps merge key-wise; a list of mappings assigned onto
// an existing list of mappings merges positionally and never grows or
// shrinks the target; anything else, plain scalar lists included,
// overwrites.
func mergeValue(current, incoming any) any {
	switch inc := incoming.(type) {
	case map[string]any:
		cur, ok := current.(map[string]any)
		if !ok {
			return incoming
		}
		out := make(map[string]any, len(cur))
		for k, v := range cur {
			out[k] = v
		}
		for k, v := range inc {
			if existing, ok := out[k]; ok {
				out[k] = mergeValue(existing, v)
				continue
			}
			out[k] = v
		}
		return out
	case []any:
		cur, ok := current.([]any)
		if !ok || !isMappingList(cur) || !isMappingList(inc) {
			return incoming
		}
		out := make([]any, len(cur))
		copy(out, cur)
		for i := 0; i < len(out) && i < len(inc); i++ {
			out[i] = mergeValue(out[i], inc[i])
		}
		return out
	default:
		return incoming
	}
}

// isMappingList reports whether a non-empty list consists of mappings.
func isMappingList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if _, ok := item.(map[string]any); !ok {
			return false
		}
	}
	return true
}

// applyProperties assigns task properties onto a constructed step.
// Properties the step does not declare are silently ignored: recipes
// may carry hints unknown to older step implementations.
func (r *Recipe) applyProperties(s Step, props map[string]any) {
	for key, value := range props {
		current, known := s.Properties()[key]
		if !known {
			continue
		}
		s.SetProperty(key, mergeValue(current, r.dereference(value)))
	}
}
