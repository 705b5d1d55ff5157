package fabric

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/noiro/accprovision/internal/config"
)

// Mo is a single managed-object write: the object's path on the controller
// and its body in the controller's native configuration shape. Shared
// marks objects that annotate pre-existing shared infrastructure and must
// survive unprovisioning.
type Mo struct {
	Path   string
	Body   map[string]any
	Shared bool
}

// Descriptor is the ordered set of managed objects provisioned for one
// cluster. Order matters: objects referenced by later entries come first.
type Descriptor struct {
	Mos []Mo
}

// BuildDescriptor shapes the final configuration tree into the fabric
// controller's native configuration: the VLAN pool, physical and VMM
// domains, multicast address pool, attachment-profile domain bindings, the
// cluster tenant with its default endpoint groups, and the fabric login
// user. It is a pure function of the tree.
func BuildDescriptor(t config.Tree) Descriptor {
	systemID := t.String("aci_config", "system_id")
	tenant := t.String("aci_config", "cluster_tenant")
	aep := t.String("aci_config", "aep")
	physDom := t.String("aci_config", "physical_domain", "domain")
	vlanPool := t.String("aci_config", "physical_domain", "vlan_pool")
	vmmDom := t.String("aci_config", "vmm_domain", "domain")
	vmmController := t.String("aci_config", "vmm_domain", "controller")
	mcastPool := t.String("aci_config", "vmm_domain", "mcast_pool")

	vlanPoolDn := fmt.Sprintf("uni/infra/vlanns-[%s]-static", vlanPool)
	physDomDn := "uni/phys-" + physDom
	mcastPoolDn := "uni/infra/maddrns-" + mcastPool
	vmmDomDn := "uni/vmmp-Kubernetes/dom-" + vmmDom

	vlanPoolMo := Mo{
		Path: vlanPoolDn,
		Body: mo("fvnsVlanInstP",
			attrs{"name": vlanPool, "allocMode": "static"},
			mo("fvnsEncapBlk", encapBlock(t.Int("net_config", "kubeapi_vlan"))),
			mo("fvnsEncapBlk", encapBlock(t.Int("net_config", "service_vlan"))),
		),
	}

	physDomMo := Mo{
		Path: physDomDn,
		Body: mo("physDomP",
			attrs{"name": physDom},
			mo("infraRsVlanNs", attrs{"tDn": vlanPoolDn}),
		),
	}

	mcastPoolMo := Mo{
		Path: mcastPoolDn,
		Body: mo("fvnsMcastAddrInstP",
			attrs{"name": mcastPool},
			mo("fvnsMcastAddrBlk", attrs{
				"from": t.String("aci_config", "vmm_domain", "mcast_range", "start"),
				"to":   t.String("aci_config", "vmm_domain", "mcast_range", "end"),
			}),
		),
	}

	vmmDomMo := Mo{
		Path: vmmDomDn,
		Body: mo("vmmDomP",
			attrs{
				"name":      vmmDom,
				"mode":      "k8s",
				"enfPref":   "sw",
				"encapMode": t.String("aci_config", "vmm_domain", "encap_type"),
				"mcastAddr": t.String("aci_config", "vmm_domain", "mcast_fabric"),
			},
			mo("vmmCtrlrP", attrs{
				"name":     vmmController,
				"scope":    "kubernetes",
				"hostOrIp": t.String("kube_config", "controller"),
			}),
			mo("vmmRsDomMcastAddrNs", attrs{"tDn": mcastPoolDn}),
		),
	}

	aepMo := Mo{
		Path:   "uni/infra/attentp-" + aep,
		Shared: true,
		Body: mo("infraAttEntityP",
			attrs{"name": aep},
			mo("infraRsDomP", attrs{"tDn": physDomDn}),
			mo("infraRsDomP", attrs{"tDn": vmmDomDn}),
		),
	}

	podBd := mo("fvBD",
		attrs{"name": "kube-pod-bd"},
		mo("fvSubnet", attrs{"ip": podGateway(t)}),
		mo("fvRsCtx", attrs{"tnFvCtxName": t.String("aci_config", "vrf", "name")}),
	)
	appProfile := mo("fvAp",
		attrs{"name": "kubernetes"},
		epg("kube-default", vmmDomDn),
		epg("kube-system", vmmDomDn),
		epg("kube-nodes", vmmDomDn),
	)
	tenantMo := Mo{
		Path: "uni/tn-" + tenant,
		Body: mo("fvTenant", attrs{"name": tenant}, podBd, appProfile),
	}

	loginMo := Mo{
		Path: "uni/userext/user-" + t.String("aci_config", "aim_login", "username"),
		Body: mo("aaaUser", attrs{
			"name": t.String("aci_config", "aim_login", "username"),
			"pwd":  t.String("aci_config", "aim_login", "password"),
		}),
	}

	return Descriptor{Mos: []Mo{
		vlanPoolMo, physDomMo, mcastPoolMo, vmmDomMo, aepMo, tenantMo, loginMo,
	}}.withSystemID(systemID)
}

// withSystemID stamps the cluster owner on every object as an annotation,
// so operators can attribute fabric objects back to the cluster.
func (d Descriptor) withSystemID(systemID string) Descriptor {
	for _, m := range d.Mos {
		for _, obj := range m.Body {
			body, ok := obj.(map[string]any)
			if !ok {
				continue
			}
			if a, ok := body["attributes"].(map[string]any); ok {
				a["annotation"] = "orchestrator:" + systemID
			}
		}
	}
	return d
}

// Write renders the descriptor as the controller expects to receive it:
// each object's API path followed by its body as indented JSON.
func (d Descriptor) Write(w io.Writer) error {
	for _, m := range d.Mos {
		data, err := json.MarshalIndent(m.Body, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", m.Path, err)
		}
		if _, err := fmt.Fprintf(w, "/api/mo/%s.json\n%s\n\n", m.Path, data); err != nil {
			return err
		}
	}
	return nil
}

// CarriedConfig returns the subset of the configuration tree the
// descriptor encodes. ConfigSubset is its inverse: parsing a built
// descriptor recovers exactly this subset.
func CarriedConfig(t config.Tree) config.Tree {
	return config.Tree{
		"aci_config": config.Tree{
			"system_id":      t.String("aci_config", "system_id"),
			"aep":            t.String("aci_config", "aep"),
			"cluster_tenant": t.String("aci_config", "cluster_tenant"),
			"physical_domain": config.Tree{
				"domain":    t.String("aci_config", "physical_domain", "domain"),
				"vlan_pool": t.String("aci_config", "physical_domain", "vlan_pool"),
			},
			"vmm_domain": config.Tree{
				"domain":       t.String("aci_config", "vmm_domain", "domain"),
				"controller":   t.String("aci_config", "vmm_domain", "controller"),
				"mcast_pool":   t.String("aci_config", "vmm_domain", "mcast_pool"),
				"mcast_fabric": t.String("aci_config", "vmm_domain", "mcast_fabric"),
				"encap_type":   t.String("aci_config", "vmm_domain", "encap_type"),
				"mcast_range": config.Tree{
					"start": t.String("aci_config", "vmm_domain", "mcast_range", "start"),
					"end":   t.String("aci_config", "vmm_domain", "mcast_range", "end"),
				},
			},
		},
		"net_config": config.Tree{
			"kubeapi_vlan": t.Int("net_config", "kubeapi_vlan"),
			"service_vlan": t.Int("net_config", "service_vlan"),
		},
	}
}

// ConfigSubset reconstructs the configuration fields the descriptor
// carries, reversing BuildDescriptor's shape transformation.
func (d Descriptor) ConfigSubset() config.Tree {
	out := config.Tree{
		"aci_config": config.Tree{},
		"net_config": config.Tree{},
	}
	aci := out["aci_config"].(config.Tree)
	netCfg := out["net_config"].(config.Tree)

	for _, m := range d.Mos {
		for class, obj := range m.Body {
			body, ok := obj.(map[string]any)
			if !ok {
				continue
			}
			a, _ := body["attributes"].(map[string]any)
			switch class {
			case "fvnsVlanInstP":
				aci["physical_domain"] = ensureTree(aci, "physical_domain")
				aci["physical_domain"].(config.Tree)["vlan_pool"] = stringAttr(a, "name")
				vlans := childEncaps(body)
				if len(vlans) == 2 {
					netCfg["kubeapi_vlan"] = vlans[0]
					netCfg["service_vlan"] = vlans[1]
				}
			case "physDomP":
				aci["physical_domain"] = ensureTree(aci, "physical_domain")
				aci["physical_domain"].(config.Tree)["domain"] = stringAttr(a, "name")
			case "fvnsMcastAddrInstP":
				vmm := ensureTree(aci, "vmm_domain")
				aci["vmm_domain"] = vmm
				vmm["mcast_pool"] = stringAttr(a, "name")
				for _, child := range children(body, "fvnsMcastAddrBlk") {
					vmm["mcast_range"] = config.Tree{
						"start": stringAttr(child, "from"),
						"end":   stringAttr(child, "to"),
					}
				}
			case "vmmDomP":
				vmm := ensureTree(aci, "vmm_domain")
				aci["vmm_domain"] = vmm
				vmm["domain"] = stringAttr(a, "name")
				vmm["encap_type"] = stringAttr(a, "encapMode")
				vmm["mcast_fabric"] = stringAttr(a, "mcastAddr")
				aci["system_id"] = stringAttr(a, "name")
				for _, child := range children(body, "vmmCtrlrP") {
					vmm["controller"] = stringAttr(child, "name")
				}
			case "infraAttEntityP":
				aci["aep"] = stringAttr(a, "name")
			case "fvTenant":
				aci["cluster_tenant"] = stringAttr(a, "name")
			}
		}
	}
	return out
}

// attrs is shorthand for a managed object's attribute map.
type attrs map[string]any

// mo builds a managed-object body of the given class with optional
// children, each itself a single-class body.
func mo(class string, a attrs, childBodies ...map[string]any) map[string]any {
	inner := map[string]any{"attributes": map[string]any(a)}
	if len(childBodies) > 0 {
		kids := make([]any, 0, len(childBodies))
		for _, c := range childBodies {
			kids = append(kids, c)
		}
		inner["children"] = kids
	}
	return map[string]any{class: inner}
}

// epg builds a default endpoint group bound to the pod bridge domain and
// the cluster's VMM domain.
func epg(name, vmmDomDn string) map[string]any {
	return mo("fvAEPg",
		attrs{"name": name},
		mo("fvRsBd", attrs{"tnFvBDName": "kube-pod-bd"}),
		mo("fvRsDomAtt", attrs{"tDn": vmmDomDn}),
	)
}

func encapBlock(vlan int) attrs {
	encap := "vlan-" + strconv.Itoa(vlan)
	return attrs{"allocMode": "static", "from": encap, "to": encap}
}

// podGateway returns the pod network gateway in ip/mask form for the
// bridge-domain subnet, derived from the adjusted pod_network entry.
func podGateway(t config.Tree) string {
	nets, ok := t.Lookup("kube_config", "pod_network")
	if !ok {
		return ""
	}
	seq, ok := nets.([]any)
	if !ok || len(seq) == 0 {
		return ""
	}
	entry, ok := asAttrs(seq[0])
	if !ok {
		return ""
	}
	gw, _ := entry["gateway"].(string)
	subnet, _ := entry["subnet"].(string)
	if i := strings.IndexByte(subnet, '/'); i >= 0 && gw != "" {
		return gw + subnet[i:]
	}
	return gw
}

func asAttrs(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case config.Tree:
		return m, true
	}
	return nil, false
}

func ensureTree(parent config.Tree, key string) config.Tree {
	if existing, ok := parent[key].(config.Tree); ok {
		return existing
	}
	return config.Tree{}
}

func stringAttr(a map[string]any, key string) string {
	s, _ := a[key].(string)
	return s
}

// children returns the attribute maps of all direct children of the given
// class.
func children(body map[string]any, class string) []map[string]any {
	kids, _ := body["children"].([]any)
	var out []map[string]any
	for _, kid := range kids {
		km, ok := kid.(map[string]any)
		if !ok {
			continue
		}
		if obj, ok := km[class].(map[string]any); ok {
			if a, ok := obj["attributes"].(map[string]any); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// childEncaps extracts the VLAN ids of a pool's encap blocks, in order.
func childEncaps(body map[string]any) []int {
	var vlans []int
	for _, a := range children(body, "fvnsEncapBlk") {
		from := stringAttr(a, "from")
		vlan, err := strconv.Atoi(strings.TrimPrefix(from, "vlan-"))
		if err != nil {
			continue
		}
		vlans = append(vlans, vlan)
	}
	return vlans
}
