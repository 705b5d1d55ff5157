// Package fabric provides the client for the fabric controller's REST API
// and the provisioning descriptor submitted through it.
package fabric

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/noiro/accprovision/internal/config"
)

// Client is the full fabric-controller surface used by the pipeline: the
// read-only lookups consulted by the adjust and advise stages, plus
// submission of the provisioning descriptor.
type Client interface {
	config.FabricReader

	Provision(ctx context.Context, d Descriptor) error
	Unprovision(ctx context.Context, d Descriptor) error
}

// Credentials selects the controller host and login taken from the merged
// configuration tree.
type Credentials struct {
	Hosts []string `mapstructure:"apic_hosts"`
	Login struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"apic_login"`
}

// NewFromTree constructs a controller client from the merged tree,
// using the first configured controller host.
func NewFromTree(t config.Tree, opts ...Option) (*APIC, error) {
	section, ok := t.Lookup("aci_config")
	if !ok {
		return nil, fmt.Errorf("no fabric configuration present")
	}

	var creds Credentials
	if err := mapstructure.Decode(section, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode fabric credentials: %w", err)
	}
	if len(creds.Hosts) == 0 {
		return nil, fmt.Errorf("no fabric controller host configured")
	}

	return New(creds.Hosts[0], creds.Login.Username, creds.Login.Password, opts...), nil
}
