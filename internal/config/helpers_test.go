package config

// userTree returns a user configuration carrying every required field, the
// way a complete input file would after decoding.
func userTree() Tree {
	return Tree{
		"aci_config": map[string]any{
			"system_id":  "kube",
			"aep":        "kube-cluster",
			"apic_hosts": []any{"10.30.120.100"},
			"apic_login": map[string]any{
				"username": "admin",
				"password": "secret",
			},
		},
		"node_config": map[string]any{
			"uplink_iface":       "eth1",
			"vxlan_uplink_iface": "eth1.4093",
		},
	}
}
