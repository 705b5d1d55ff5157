package config

// Merge folds secondary into primary and returns primary. At every key
// present only in secondary the secondary value is adopted; where both
// sides hold nested mappings the merge recurses; where both sides hold
// non-mapping values the primary value is kept. Sequences are opaque
// leaves and follow the non-mapping rule.
//
// Merge mutates primary in place; callers must not assume the input is
// copied. This single rule defines the pipeline's precedence law:
// command-line overrides are primary over the user file, the user file is
// primary over the defaults, and the merged tree is primary over the
// derived tree so that derived values only fill gaps.
func Merge(primary, secondary Tree) Tree {
	for key, sv := range secondary {
		pv, ok := primary[key]
		if !ok {
			primary[key] = sv
			continue
		}
		pm, pok := asTree(pv)
		sm, sok := asTree(sv)
		if pok && sok {
			Merge(pm, sm)
		}
	}
	return primary
}
