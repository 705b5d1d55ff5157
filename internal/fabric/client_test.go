package fabric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noiro/accprovision/internal/config"
)

func TestNewFromTree(t *testing.T) {
	t.Parallel()

	tree := config.Tree{
		"aci_config": config.Tree{
			"apic_hosts": []any{"10.30.120.100", "10.30.120.101"},
			"apic_login": config.Tree{
				"username": "admin",
				"password": "secret",
			},
		},
	}

	c, err := NewFromTree(tree)
	require.NoError(t, err)
	assert.Equal(t, "https://10.30.120.100", c.baseURL, "first configured host wins")
	assert.Equal(t, "admin", c.username)
	assert.Equal(t, "secret", c.password)
}

func TestNewFromTreeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tree    config.Tree
		wantErr string
	}{
		{
			name:    "no fabric section",
			tree:    config.Tree{},
			wantErr: "no fabric configuration present",
		},
		{
			name: "no hosts",
			tree: config.Tree{"aci_config": config.Tree{
				"apic_login": config.Tree{"username": "admin"},
			}},
			wantErr: "no fabric controller host configured",
		},
		{
			name: "empty host list",
			tree: config.Tree{"aci_config": config.Tree{
				"apic_hosts": []any{},
			}},
			wantErr: "no fabric controller host configured",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFromTree(tt.tree)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMockClientRecordsCalls(t *testing.T) {
	t.Parallel()

	m := &MockClient{}
	_, _ = m.InfraVLAN(context.Background())
	_, _ = m.VRF(context.Background(), "common", "kube")
	_, _ = m.VRF(context.Background(), "common", "kube")

	assert.Equal(t, 1, m.Calls["InfraVLAN"])
	assert.Equal(t, 2, m.Calls["VRF"])
	assert.Equal(t, 3, m.TotalCalls())
}
