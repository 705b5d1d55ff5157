// Package generate renders the pipeline's two output artifacts: the
// fabric provisioning descriptor and the Kubernetes deployment manifest.
package generate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/noiro/accprovision/internal/config"
)

//go:embed templates
var templatesFS embed.FS

// manifestData is the root object the deployment manifest template renders
// from. The three agent config sections are pre-shaped here so the
// template only has to embed them as indented JSON.
type manifestData struct {
	Config            config.Tree
	ControllerConfig  map[string]any
	HostAgentConfig   map[string]any
	OpflexAgentConfig map[string]any
}

// RenderManifest substitutes the final configuration tree into the
// deployment manifest template. Beyond the sprig function set the template
// gets two shaping filters: jsonIndent for embedding substructures as
// pretty-printed JSON, and yamlQuote for single-quoted YAML scalars.
func RenderManifest(t config.Tree) ([]byte, error) {
	tmpl, err := template.New("aci-containers.yaml").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"jsonIndent": jsonIndent,
			"yamlQuote":  yamlQuote,
		}).
		ParseFS(templatesFS, "templates/aci-containers.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest template: %w", err)
	}

	data := manifestData{
		Config:            t,
		ControllerConfig:  controllerConfig(t),
		HostAgentConfig:   hostAgentConfig(t),
		OpflexAgentConfig: opflexAgentConfig(t),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// controllerConfig shapes the controller's config section from the tree.
func controllerConfig(t config.Tree) map[string]any {
	return map[string]any{
		"log-level":                        t.String("logging", "controller_log_level"),
		"apic-hosts":                       valueAt(t, "aci_config", "apic_hosts"),
		"apic-username":                    t.String("aci_config", "aim_login", "username"),
		"aci-prefix":                       t.String("aci_config", "system_id"),
		"aci-vmm-domain":                   t.String("aci_config", "vmm_domain", "domain"),
		"aci-vrf":                          t.String("aci_config", "vrf", "name"),
		"aci-vrf-tenant":                   t.String("aci_config", "vrf", "tenant"),
		"aci-l3out":                        t.String("aci_config", "l3out", "name"),
		"aci-ext-networks":                 valueAt(t, "aci_config", "l3out", "external_networks"),
		"aci-policy-tenant":                t.String("aci_config", "cluster_tenant"),
		"default-endpoint-group":           valueAt(t, "kube_config", "default_endpoint_group"),
		"namespace-default-endpoint-group": valueAt(t, "kube_config", "namespace_default_endpoint_group"),
		"pod-ip-pool":                      valueAt(t, "kube_config", "pod_ip_pool"),
		"pod-network":                      valueAt(t, "kube_config", "pod_network"),
		"service-ip-pool":                  valueAt(t, "kube_config", "service_ip_pool"),
		"static-service-ip-pool":           valueAt(t, "kube_config", "static_service_ip_pool"),
		"node-service-ip-pool":             valueAt(t, "kube_config", "node_service_ip_pool"),
		"node-service-subnets":             valueAt(t, "kube_config", "node_service_gw_subnets"),
	}
}

// hostAgentConfig shapes the per-node agent's config section from the tree.
func hostAgentConfig(t config.Tree) map[string]any {
	return map[string]any{
		"log-level":          t.String("logging", "hostagent_log_level"),
		"aci-prefix":         t.String("aci_config", "system_id"),
		"aci-vmm-domain":     t.String("aci_config", "vmm_domain", "domain"),
		"aci-infra-vlan":     t.Int("net_config", "infra_vlan"),
		"kubeapi-vlan":       t.Int("net_config", "kubeapi_vlan"),
		"service-vlan":       t.Int("net_config", "service_vlan"),
		"encap-type":         t.String("node_config", "encap_type"),
		"uplink-iface":       t.String("node_config", "uplink_iface"),
		"vxlan-uplink-iface": t.String("node_config", "vxlan_uplink_iface"),
	}
}

// opflexAgentConfig shapes the opflex agent's config section from the tree.
func opflexAgentConfig(t config.Tree) map[string]any {
	return map[string]any{
		"log": map[string]any{
			"level": t.String("logging", "opflexagent_log_level"),
		},
		"opflex": map[string]any{
			"notif": map[string]any{
				"enabled": "true",
			},
		},
	}
}

func valueAt(t config.Tree, path ...string) any {
	v, _ := t.Lookup(path...)
	return v
}

// jsonIndent pretty-prints a substructure as indented JSON.
func jsonIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// yamlQuote renders a scalar as a single-quoted YAML string, doubling
// embedded quotes, so arbitrary values embed safely in the manifest.
func yamlQuote(v any) string {
	return "'" + strings.ReplaceAll(fmt.Sprint(v), "'", "''") + "'"
}
