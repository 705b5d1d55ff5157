package config

import (
	"context"

	"github.com/rs/zerolog"
)

// Advise runs best-effort consistency checks against the live fabric:
// the configured attachment-entity-profile, VRF, and L3-out must already
// exist before a provisioning run can work. Every finding is a warning,
// never an error — these checks help an operator catch misconfiguration
// early, they must not block the local output-generation path. A failing
// query is itself downgraded to a single warning.
//
// Advise does nothing when the run has no provisioning intent.
func Advise(ctx context.Context, log zerolog.Logger, t Tree, intent Intent, fab FabricReader) {
	if !intent.Provisioning() {
		return
	}

	aepName := t.String("aci_config", "aep")
	vrfTenant := t.String("aci_config", "vrf", "tenant")
	vrfName := t.String("aci_config", "vrf", "name")
	l3outName := t.String("aci_config", "l3out", "name")

	aep, err := fab.AttachmentProfile(ctx, aepName)
	if err != nil {
		log.Warn().Msgf("Error in validating existence of AEP: %v", err)
		return
	}
	if aep == nil {
		log.Warn().Msgf("AEP not defined in the fabric: %s", aepName)
	}

	vrf, err := fab.VRF(ctx, vrfTenant, vrfName)
	if err != nil {
		log.Warn().Msgf("Error in validating existence of VRF: %v", err)
		return
	}
	if vrf == nil {
		log.Warn().Msgf("VRF not defined in the fabric: %s/%s", vrfTenant, vrfName)
	}

	l3out, err := fab.L3Out(ctx, vrfTenant, l3outName)
	if err != nil {
		log.Warn().Msgf("Error in validating existence of L3out: %v", err)
		return
	}
	if l3out == nil {
		log.Warn().Msgf("L3out not defined in the fabric: %s/%s", vrfTenant, l3outName)
	}
}
