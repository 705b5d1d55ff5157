package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noiro/accprovision/internal/logging"
)

func TestLoadUserFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aci_config:\n  system_id: mykube\n"), 0o644))

	var buf bytes.Buffer
	tree, err := LoadUser(logging.New(&buf), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "mykube", tree.String("aci_config", "system_id"))
	assert.Contains(t, buf.String(), "INFO:")
	assert.Contains(t, buf.String(), path)
}

func TestLoadUserFromStdin(t *testing.T) {
	t.Parallel()
	stdin := strings.NewReader("net_config:\n  kubeapi_vlan: 4001\n")

	var buf bytes.Buffer
	tree, err := LoadUser(logging.New(&buf), StreamTarget, stdin)
	require.NoError(t, err)
	assert.Equal(t, 4001, tree.Int("net_config", "kubeapi_vlan"))
	assert.Contains(t, buf.String(), "STDIN")
}

func TestLoadUserEmptyCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		path  string
		stdin string
	}{
		{"no path at all", "", ""},
		{"missing file", filepath.Join(t.TempDir(), "absent.yaml"), ""},
		{"empty stdin", StreamTarget, ""},
		{"document with only comments", StreamTarget, "# nothing here\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tree, err := LoadUser(logging.New(&bytes.Buffer{}), tt.path, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, Tree{}, tree)
		})
	}
}

func TestLoadUserMalformed(t *testing.T) {
	t.Parallel()
	stdin := strings.NewReader("aci_config: [unbalanced\n")

	_, err := LoadUser(logging.New(&bytes.Buffer{}), StreamTarget, stdin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromOverrides(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		password string
		expected Tree
	}{
		{
			name:     "both set",
			username: "admin",
			password: "secret",
			expected: Tree{"aci_config": Tree{"apic_login": Tree{"username": "admin", "password": "secret"}}},
		},
		{
			name:     "only username",
			username: "admin",
			expected: Tree{"aci_config": Tree{"apic_login": Tree{"username": "admin"}}},
		},
		{
			name:     "neither",
			expected: Tree{"aci_config": Tree{"apic_login": Tree{}}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FromOverrides(tt.username, tt.password))
		})
	}
}

func TestOverridesOutrankUserFile(t *testing.T) {
	t.Parallel()
	user := Tree{"aci_config": Tree{"apic_login": Tree{"username": "fromfile", "password": "fromfile"}}}

	merged := Merge(FromOverrides("admin", ""), user)
	assert.Equal(t, "admin", merged.String("aci_config", "apic_login", "username"))
	assert.Equal(t, "fromfile", merged.String("aci_config", "apic_login", "password"))
}
