package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlagDefaults(t *testing.T) {
	t.Parallel()

	cmd := Root()
	require.NoError(t, cmd.ParseFlags(nil))

	tests := []struct {
		flag string
		want string
	}{
		{"config", "-"},
		{"output", "-"},
		{"apic-file", ""},
		{"apic", "false"},
		{"delete", "false"},
		{"sample", "false"},
		{"username", ""},
		{"password", ""},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		require.NotNil(t, f, "flag %q", tt.flag)
		assert.Equal(t, tt.want, f.Value.String(), "flag %q", tt.flag)
	}
}

func TestRootFlagParsing(t *testing.T) {
	t.Parallel()

	cmd := Root()
	require.NoError(t, cmd.ParseFlags([]string{
		"-c", "input.yaml",
		"-o", "aci-containers.yaml",
		"-f", "aci-kube.apic",
		"-a",
		"-u", "admin",
		"-p", "secret",
	}))

	assert.Equal(t, "input.yaml", cmd.Flags().Lookup("config").Value.String())
	assert.Equal(t, "aci-containers.yaml", cmd.Flags().Lookup("output").Value.String())
	assert.Equal(t, "aci-kube.apic", cmd.Flags().Lookup("apic-file").Value.String())
	assert.Equal(t, "true", cmd.Flags().Lookup("apic").Value.String())
	assert.Equal(t, "admin", cmd.Flags().Lookup("username").Value.String())
	assert.Equal(t, "secret", cmd.Flags().Lookup("password").Value.String())
}

func TestRootSubcommands(t *testing.T) {
	t.Parallel()

	cmd := Root()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "version")
}
