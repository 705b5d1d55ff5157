package generate

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sigyaml "sigs.k8s.io/yaml"

	"github.com/noiro/accprovision/internal/config"
)

// renderTree builds the finished configuration tree the pipeline hands to
// the manifest renderer.
func renderTree(t *testing.T, user config.Tree) config.Tree {
	t.Helper()
	tree := config.Merge(user, config.Default())
	derived, err := config.Adjust(context.Background(), tree, config.IntentNone, nil)
	require.NoError(t, err)
	return config.Merge(tree, derived)
}

func userTree() config.Tree {
	return config.Tree{
		"aci_config": config.Tree{
			"system_id":  "kube",
			"apic_hosts": []any{"10.30.120.100"},
			"apic_login": config.Tree{
				"username": "admin",
				"password": "secret",
			},
			"aep": "kube-cluster",
		},
		"node_config": config.Tree{
			"uplink_iface":       "eth1",
			"vxlan_uplink_iface": "eth1.4093",
		},
	}
}

// manifestDocs renders the manifest and parses every YAML document in it.
func manifestDocs(t *testing.T, tree config.Tree) []map[string]any {
	t.Helper()
	out, err := RenderManifest(tree)
	require.NoError(t, err)

	var docs []map[string]any
	for _, doc := range strings.Split(string(out), "\n---\n") {
		var parsed map[string]any
		require.NoError(t, sigyaml.Unmarshal([]byte(doc), &parsed), "document:\n%s", doc)
		docs = append(docs, parsed)
	}
	return docs
}

func findDoc(docs []map[string]any, kind, name string) map[string]any {
	for _, d := range docs {
		meta, _ := d["metadata"].(map[string]any)
		if d["kind"] == kind && meta["name"] == name {
			return d
		}
	}
	return nil
}

func TestRenderManifestDocuments(t *testing.T) {
	t.Parallel()
	docs := manifestDocs(t, renderTree(t, userTree()))

	var kinds []string
	for _, d := range docs {
		kinds = append(kinds, d["kind"].(string))
	}
	assert.Equal(t, []string{
		"ConfigMap", "Secret", "ServiceAccount", "ServiceAccount",
		"ClusterRole", "ClusterRoleBinding", "ClusterRoleBinding",
		"DaemonSet", "DaemonSet", "Deployment",
	}, kinds)
}

func TestRenderManifestControllerConfig(t *testing.T) {
	t.Parallel()
	docs := manifestDocs(t, renderTree(t, userTree()))

	cm := findDoc(docs, "ConfigMap", "aci-containers-config")
	require.NotNil(t, cm)
	data := cm["data"].(map[string]any)

	var cc map[string]any
	require.NoError(t, json.Unmarshal([]byte(data["controller-config"].(string)), &cc),
		"embedded controller config must be valid JSON")
	assert.Equal(t, "kube", cc["aci-prefix"])
	assert.Equal(t, "kube", cc["aci-vmm-domain"])
	assert.Equal(t, "kube", cc["aci-vrf"])
	assert.Equal(t, "common", cc["aci-vrf-tenant"])
	assert.Equal(t, []any{"10.30.120.100"}, cc["apic-hosts"])

	pool := cc["pod-ip-pool"].([]any)[0].(map[string]any)
	assert.Equal(t, "10.2.0.2", pool["start"])
	assert.Equal(t, "10.2.255.254", pool["end"])
}

func TestRenderManifestHostAgentConfig(t *testing.T) {
	t.Parallel()
	docs := manifestDocs(t, renderTree(t, userTree()))

	cm := findDoc(docs, "ConfigMap", "aci-containers-config")
	require.NotNil(t, cm)
	data := cm["data"].(map[string]any)

	var hc map[string]any
	require.NoError(t, json.Unmarshal([]byte(data["host-agent-config"].(string)), &hc))
	assert.Equal(t, float64(4093), hc["aci-infra-vlan"])
	assert.Equal(t, float64(4001), hc["kubeapi-vlan"])
	assert.Equal(t, "vxlan", hc["encap-type"])
	assert.Equal(t, "eth1", hc["uplink-iface"])
	assert.Equal(t, "eth1.4093", hc["vxlan-uplink-iface"])
}

func TestRenderManifestSecret(t *testing.T) {
	t.Parallel()
	docs := manifestDocs(t, renderTree(t, userTree()))

	secret := findDoc(docs, "Secret", "aci-user-cert")
	require.NotNil(t, secret)
	key := secret["data"].(map[string]any)["user.key"].(string)
	decoded, err := base64.StdEncoding.DecodeString(key)
	require.NoError(t, err)
	assert.Equal(t, "ToBeFixed!", string(decoded))
}

func TestRenderManifestImages(t *testing.T) {
	t.Parallel()
	user := userTree()
	user.Set("registry.example.com/noiro", "registry", "image_prefix")
	out, err := RenderManifest(renderTree(t, user))
	require.NoError(t, err)

	assert.Contains(t, string(out), "image: registry.example.com/noiro/aci-containers-host:latest")
	assert.Contains(t, string(out), "image: registry.example.com/noiro/aci-containers-controller:latest")
	assert.Contains(t, string(out), "image: registry.example.com/noiro/openvswitch:latest")
	assert.Contains(t, string(out), "image: registry.example.com/noiro/opflex:latest")
}

func TestRenderManifestClusterRoleOptional(t *testing.T) {
	t.Parallel()
	user := userTree()
	user.Set(false, "kube_config", "use_cluster_role")
	docs := manifestDocs(t, renderTree(t, user))

	for _, d := range docs {
		assert.NotEqual(t, "ClusterRole", d["kind"])
		assert.NotEqual(t, "ClusterRoleBinding", d["kind"])
	}
}

func TestRenderManifestVLANEncap(t *testing.T) {
	t.Parallel()
	user := userTree()
	user.Set("vlan", "aci_config", "vmm_domain", "encap_type")
	out, err := RenderManifest(renderTree(t, user))
	require.NoError(t, err)

	assert.NotContains(t, string(out), "opflex-hostconfig-volume",
		"the in-memory opflex config volume exists only for vxlan encapsulation")
}

func TestYamlQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{"info", "'info'"},
		{"it's", "'it''s'"},
		{4093, "'4093'"},
		{"", "''"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, yamlQuote(tt.in))
	}
}

func TestJSONIndent(t *testing.T) {
	t.Parallel()

	out, err := jsonIndent(map[string]any{"log-level": "info"})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"log-level\": \"info\"\n}", out)
}
