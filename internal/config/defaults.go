package config

// Default returns the shipped configuration tree. It carries the lowest
// precedence: user input and derived fields are merged on top of it.
//
// A fresh tree is built on every call because Merge mutates its inputs.
func Default() Tree {
	return Tree{
		"aci_config": Tree{
			"system_id": "kube",
			"vrf": Tree{
				"name":   "kube",
				"tenant": "common",
			},
			"l3out": Tree{
				"name":              "l3out",
				"external_networks": []any{"default"},
			},
			"vmm_domain": Tree{
				"encap_type":   "vxlan",
				"mcast_fabric": "225.1.2.3",
				"mcast_range": Tree{
					"start": "225.2.1.1",
					"end":   "225.2.255.255",
				},
			},
			"client_cert": false,
			"client_ssl":  true,
		},
		"net_config": Tree{
			"node_subnet":     "10.1.0.1/16",
			"pod_subnet":      "10.2.0.1/16",
			"extern_dynamic":  "10.3.0.1/24",
			"extern_static":   "10.4.0.1/24",
			"node_svc_subnet": "10.5.0.1/24",
			"kubeapi_vlan":    4001,
			"service_vlan":    4003,
			"infra_vlan":      4093,
		},
		"kube_config": Tree{
			"controller":            "1.1.1.1",
			"use_cluster_role":      true,
			"use_ds_rolling_update": true,
		},
		"registry": Tree{
			"image_prefix": "noiro",
		},
		"logging": Tree{
			"controller_log_level": "info",
			"hostagent_log_level":  "info",
			"opflexagent_log_level": "info",
			"aim_debug":            "False",
		},
	}
}
