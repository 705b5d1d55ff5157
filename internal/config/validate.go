package config

// requiredField ties the logical name reported to the operator to the tree
// path that must resolve to a usable value.
type requiredField struct {
	name string
	path []string
}

// requiredFields is the fixed set of fields the pipeline cannot run
// without. Validation walks every entry so the operator sees all missing
// fields at once.
var requiredFields = []requiredField{
	{"system_id", []string{"aci_config", "system_id"}},
	{"aep", []string{"aci_config", "aep"}},
	{"apic_host", []string{"aci_config", "apic_hosts"}},
	{"apic_username", []string{"aci_config", "apic_login", "username"}},
	{"apic_password", []string{"aci_config", "apic_login", "password"}},
	{"uplink_if", []string{"node_config", "uplink_iface"}},
	{"vxlan_if", []string{"node_config", "vxlan_uplink_iface"}},
	{"kubeapi_vlan", []string{"net_config", "kubeapi_vlan"}},
	{"service_vlan", []string{"net_config", "service_vlan"}},
}

// Validate checks the fully merged tree against the required-field table.
// A field fails when any intermediate key on its path is missing or when
// the resolved value is empty. On failure a *ValidationError listing every
// failing logical name is returned; this is a hard gate, callers must not
// generate output.
func Validate(t Tree) error {
	var missing []string
	for _, f := range requiredFields {
		v, ok := t.Lookup(f.path...)
		if !ok || isEmpty(v) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// isEmpty reports whether a resolved value is unusable as a required
// field: nil, an empty string, false, zero, or an empty sequence. The
// lookup itself distinguishes a missing path from a present value, so only
// genuinely unusable values land here.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case []any:
		return len(x) == 0
	}
	return false
}
