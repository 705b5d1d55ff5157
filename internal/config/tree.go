// Package config implements the provisioning configuration pipeline:
// layered default/user merging, address-space derivation from CIDR inputs,
// required-field validation, and advisory checks against live fabric state.
package config

// Tree is a nested configuration mapping. Values are scalars, nested
// mappings, or sequences of either. Sequences are opaque leaves; they are
// never merged element-wise.
//
// Three trees flow through the pipeline: the shipped defaults, the
// user-supplied overrides, and the tree of fields derived by Adjust.
type Tree map[string]any

// asTree reports whether v is a nested mapping, normalizing the
// map[string]any values produced by the YAML decoder.
func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	}
	return nil, false
}

// Lookup walks path through nested mappings and returns the value at the
// end, with ok=false when any intermediate key is missing or not a mapping.
// A present-but-nil leaf returns (nil, true); callers that care about
// emptiness must check the value themselves.
func (t Tree) Lookup(path ...string) (any, bool) {
	cur := t
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		cur, ok = asTree(v)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set places value at path, creating intermediate mappings as needed.
// An intermediate key holding a non-mapping value is replaced.
func (t Tree) Set(value any, path ...string) {
	cur := t
	for _, key := range path[:len(path)-1] {
		next, ok := asTree(cur[key])
		if !ok {
			next = Tree{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// String returns the string at path, or "" when the path is missing or the
// value is not a string.
func (t Tree) String(path ...string) string {
	v, ok := t.Lookup(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int returns the integer at path, or 0 when the path is missing or the
// value is not an integer.
func (t Tree) Int(path ...string) int {
	v, ok := t.Lookup(path...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	return 0
}

// Strings returns the sequence of strings at path, or nil when the path is
// missing or the value is not a sequence.
func (t Tree) Strings(path ...string) []string {
	v, ok := t.Lookup(path...)
	if !ok {
		return nil
	}
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
