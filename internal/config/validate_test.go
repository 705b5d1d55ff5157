package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateComplete(t *testing.T) {
	t.Parallel()
	merged := Merge(userTree(), Default())
	assert.NoError(t, Validate(merged))
}

func TestValidateMissingFields(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(Tree)
		missing []string
	}{
		{
			name:    "missing password",
			mutate:  func(tr Tree) { tr.Set("", "aci_config", "apic_login", "password") },
			missing: []string{"apic_password"},
		},
		{
			name:    "missing whole login section",
			mutate:  func(tr Tree) { delete(tr["aci_config"].(map[string]any), "apic_login") },
			missing: []string{"apic_username", "apic_password"},
		},
		{
			name:    "empty host list",
			mutate:  func(tr Tree) { tr.Set([]any{}, "aci_config", "apic_hosts") },
			missing: []string{"apic_host"},
		},
		{
			name:    "zero VLAN id",
			mutate:  func(tr Tree) { tr.Set(0, "net_config", "kubeapi_vlan") },
			missing: []string{"kubeapi_vlan"},
		},
		{
			name: "several at once",
			mutate: func(tr Tree) {
				tr.Set("", "aci_config", "aep")
				tr.Set("", "node_config", "uplink_iface")
			},
			missing: []string{"aep", "uplink_if"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			merged := Merge(userTree(), Default())
			tt.mutate(merged)

			err := Validate(merged)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}

func TestValidateReportsAllFailures(t *testing.T) {
	t.Parallel()
	// An empty tree fails every check in one pass, not just the first.
	err := Validate(Tree{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Missing, len(requiredFields))
}
