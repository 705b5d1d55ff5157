package config

import (
	"context"
	"fmt"

	"github.com/noiro/accprovision/internal/util/naming"
)

// Intent selects whether the run only generates output, also applies the
// provisioning descriptor to the fabric controller, or removes a previous
// application.
type Intent int

const (
	IntentNone Intent = iota
	IntentApply
	IntentRemove
)

// Provisioning reports whether the run talks to the fabric controller at
// all. Only provisioning runs are allowed to perform network calls.
func (i Intent) Provisioning() bool {
	return i != IntentNone
}

// FabricReader is the read-only fabric-controller surface consulted while
// deriving and advising on configuration. Existence lookups return the
// object's attributes, or nil when the object is not configured.
type FabricReader interface {
	InfraVLAN(ctx context.Context) (int, error)
	AttachmentProfile(ctx context.Context, name string) (map[string]any, error)
	VRF(ctx context.Context, tenant, name string) (map[string]any, error)
	L3Out(ctx context.Context, tenant, name string) (map[string]any, error)
}

// Adjust derives the secondary configuration fields from the merged
// primary tree: fabric object names by suffixing convention, IP pools and
// the pod network from the four subnet CIDRs, and the default
// endpoint-group bindings. The returned tree is meant to be merged on top
// of the defaults, never on top of user input; Adjust does not mutate t.
//
// When intent is a provisioning run the node/infrastructure VLAN is read
// from the live fabric instead of the configured value. That value must
// win over any statically configured default, so callers re-assert
// net_config.infra_vlan from the returned tree after the generic merge.
// A fabric failure here is fatal: later fields depend on the answer.
func Adjust(ctx context.Context, t Tree, intent Intent, fab FabricReader) (Tree, error) {
	systemID := t.String("aci_config", "system_id")
	tenant := naming.Tenant(systemID)

	infraVLAN := t.Int("net_config", "infra_vlan")
	if intent.Provisioning() {
		vlan, err := fab.InfraVLAN(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read infra VLAN from the fabric: %w", err)
		}
		infraVLAN = vlan
	}

	podSubnet, err := SplitCIDR(t.String("net_config", "pod_subnet"))
	if err != nil {
		return nil, fmt.Errorf("pod_subnet: %w", err)
	}
	externDynamic, err := SplitCIDR(t.String("net_config", "extern_dynamic"))
	if err != nil {
		return nil, fmt.Errorf("extern_dynamic: %w", err)
	}
	externStatic, err := SplitCIDR(t.String("net_config", "extern_static"))
	if err != nil {
		return nil, fmt.Errorf("extern_static: %w", err)
	}
	nodeSvcSubnet, err := SplitCIDR(t.String("net_config", "node_svc_subnet"))
	if err != nil {
		return nil, fmt.Errorf("node_svc_subnet: %w", err)
	}

	return Tree{
		"aci_config": Tree{
			"cluster_tenant": tenant,
			"physical_domain": Tree{
				"domain":    naming.PhysicalDomain(systemID),
				"vlan_pool": naming.VLANPool(systemID),
			},
			"vmm_domain": Tree{
				"domain":     naming.VMMDomain(systemID),
				"controller": naming.VMMController(systemID),
				"mcast_pool": naming.MulticastPool(systemID),
			},
			"aim_login": Tree{
				"username": naming.FabricLogin(systemID),
				// TODO(provision): replace with a generated client certificate
				// once certificate-based fabric logins are wired up.
				"password": "ToBeFixed!",
				"certfile": nil,
			},
		},
		"net_config": Tree{
			"infra_vlan": infraVLAN,
		},
		"node_config": Tree{
			"encap_type": t.String("aci_config", "vmm_domain", "encap_type"),
		},
		"kube_config": Tree{
			"default_endpoint_group": Tree{
				"tenant":      tenant,
				"app_profile": "kubernetes",
				"group":       "kube-default",
			},
			"namespace_default_endpoint_group": Tree{
				"kube-system": Tree{
					"tenant":      tenant,
					"app_profile": "kubernetes",
					"group":       "kube-system",
				},
			},
			"pod_ip_pool": []any{
				Tree{"start": podSubnet.Start, "end": podSubnet.End},
			},
			"pod_network": []any{
				Tree{
					"subnet":  podSubnet.CIDR(),
					"gateway": podSubnet.Gateway,
					"routes": []any{
						Tree{"dst": "0.0.0.0/0", "gw": podSubnet.Gateway},
					},
				},
			},
			"service_ip_pool": []any{
				Tree{"start": externDynamic.Start, "end": externDynamic.End},
			},
			"static_service_ip_pool": []any{
				Tree{"start": externStatic.Start, "end": externStatic.End},
			},
			"node_service_ip_pool": []any{
				Tree{"start": nodeSvcSubnet.Start, "end": nodeSvcSubnet.End},
			},
			"node_service_gw_subnets": []any{
				t.String("net_config", "node_svc_subnet"),
			},
		},
	}, nil
}
