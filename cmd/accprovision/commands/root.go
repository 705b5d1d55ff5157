// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/noiro/accprovision/cmd/accprovision/handlers"
)

// Root returns the root command for the acc-provision CLI.
//
// acc-provision is a single-purpose tool: the root command runs the whole
// configuration pipeline, steered by flags. Errors are logged by the
// caller with severity prefixes, so cobra's own error printing is off.
func Root() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:           "acc-provision",
		Short:         "Provision an ACI Kubernetes installation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), handlers.NewPipeline(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "-", "Input file with your fabric configuration")
	flags.StringVarP(&opts.OutputPath, "output", "o", "-", "Output file for your Kubernetes deployment")
	flags.StringVarP(&opts.FabricPath, "apic-file", "f", "", "Output file for the fabric controller configuration")
	flags.BoolVarP(&opts.Provision, "apic", "a", false, "Create/validate the required fabric resources")
	flags.BoolVarP(&opts.Delete, "delete", "d", false, "Delete the fabric resources that would have been created")
	flags.BoolVarP(&opts.Sample, "sample", "s", false, "Print a sample input file with fabric configuration")
	flags.StringVarP(&opts.Username, "username", "u", "", "Fabric admin username to use for API access")
	flags.StringVarP(&opts.Password, "password", "p", "", "Fabric admin password to use for API access")

	cmd.AddCommand(Version())

	return cmd
}
