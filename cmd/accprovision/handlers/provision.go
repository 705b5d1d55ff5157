// Package handlers implements the business logic for CLI commands.
//
// Handler functions are framework-agnostic: flag values arrive in an
// Options struct and all collaborators (logger, streams, fabric client
// factory) are threaded through an explicit Pipeline, so handlers can be
// tested without the CLI framework or a live fabric.
package handlers

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/noiro/accprovision/internal/config"
	"github.com/noiro/accprovision/internal/fabric"
	"github.com/noiro/accprovision/internal/generate"
	"github.com/noiro/accprovision/internal/logging"
)

// Options carries the flag values of one run.
type Options struct {
	ConfigPath string // user configuration, "-" for stdin
	OutputPath string // deployment manifest, "-" for stdout
	FabricPath string // provisioning descriptor, "" to skip, "-" for stdout
	Provision  bool   // apply the descriptor to the fabric
	Delete     bool   // remove the descriptor from the fabric; implies provisioning mode
	Sample     bool   // print the sample input file and exit
	Username   string // fabric admin username, outranks the input file
	Password   string // fabric admin password, outranks the input file
}

func (o Options) intent() config.Intent {
	switch {
	case o.Delete:
		return config.IntentRemove
	case o.Provision:
		return config.IntentApply
	}
	return config.IntentNone
}

// Pipeline bundles the collaborators shared by every stage of a run. The
// fabric client is constructed at most once per run and reused by the
// adjust, advise, and output stages.
type Pipeline struct {
	Log    zerolog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	// NewClient constructs the fabric-controller client from the merged
	// tree. Only called when the run has provisioning intent.
	NewClient func(t config.Tree) (fabric.Client, error)
}

// NewPipeline returns the production wiring: diagnostics to stderr,
// output to stdout, a real fabric client.
func NewPipeline() Pipeline {
	return Pipeline{
		Log:    logging.New(os.Stderr),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		NewClient: func(t config.Tree) (fabric.Client, error) {
			return fabric.NewFromTree(t)
		},
	}
}

// Provision runs the configuration pipeline end to end: merge the
// command-line overrides, the user file, and the defaults; derive the
// secondary fields; validate; run the advisory checks; then generate the
// provisioning descriptor and deployment manifest, applying or removing
// fabric state when requested.
//
// Validation is a hard gate: no output is generated on failure, and every
// missing field is logged before the run aborts. A fabric failure during
// the final apply/remove is returned but does not remove the output files
// already written.
func Provision(ctx context.Context, p Pipeline, opts Options) error {
	if opts.Sample {
		return generate.WriteSample(p.Stdout)
	}

	intent := opts.intent()

	merged := config.FromOverrides(opts.Username, opts.Password)
	user, err := config.LoadUser(p.Log, opts.ConfigPath, p.Stdin)
	if err != nil {
		return err
	}
	config.Merge(merged, user)
	config.Merge(merged, config.Default())

	var client fabric.Client
	if intent.Provisioning() {
		client, err = p.NewClient(merged)
		if err != nil {
			return err
		}
	}

	derived, err := config.Adjust(ctx, merged, intent, client)
	if err != nil {
		return err
	}
	config.Merge(merged, derived)
	// The resolved VLAN must win over the static default; the generic
	// merge keeps the primary side for fields the defaults also carry.
	merged.Set(derived.Int("net_config", "infra_vlan"), "net_config", "infra_vlan")

	if err := config.Validate(merged); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, name := range verr.Missing {
				p.Log.Error().Msgf("Required configuration not present or not correct: %q", name)
			}
		}
		return err
	}

	config.Advise(ctx, p.Log, merged, intent, client)

	desc := fabric.BuildDescriptor(merged)
	if err := generate.WriteDescriptor(p.Log, desc, opts.FabricPath, p.Stdout); err != nil {
		return err
	}
	if err := generate.WriteManifest(p.Log, merged, opts.OutputPath, p.Stdout); err != nil {
		return err
	}

	switch intent {
	case config.IntentApply:
		if err := client.Provision(ctx, desc); err != nil {
			p.Log.Warn().Msg("Fabric provisioning failed; the generated output files are still valid")
			return err
		}
	case config.IntentRemove:
		if err := client.Unprovision(ctx, desc); err != nil {
			p.Log.Warn().Msg("Fabric unprovisioning failed; the generated output files are still valid")
			return err
		}
	}
	return nil
}
