package core

import "fmt"

// AgentType identifies a member of the swarm. The set is closed and fixed at
// configuration time; handoff validation matches against it exhaustively.
type AgentType string

const (
	// AgentCoordinator is the routing sentinel: no specialist is active and
	// the coordinator's own routing model decides where a turn goes.
	AgentCoordinator AgentType = "coordinator"

	// Healthcare / PBM specialist set.
	AgentPricing        AgentType = "pricing"
	AgentAuthentication AgentType = "authentication"
	AgentPharmacy       AgentType = "pharmacy"
	AgentBenefits       AgentType = "benefits"
	AgentClinical       AgentType = "clinical"

	// IT operations specialist set.
	AgentInvestigator AgentType = "investigator"
	AgentRemediation  AgentType = "remediation"
	AgentAnalysis     AgentType = "analysis"
)

// allAgentTypes is the closed universe used by ParseAgentType.
var allAgentTypes = map[AgentType]struct{}{
	AgentCoordinator:    {},
	AgentPricing:        {},
	AgentAuthentication: {},
	AgentPharmacy:       {},
	AgentBenefits:       {},
	AgentClinical:       {},
	AgentInvestigator:   {},
	AgentRemediation:    {},
	AgentAnalysis:       {},
}

// ParseAgentType converts a wire-level string (e.g. a request_handoff
// argument) into an AgentType, rejecting anything outside the closed set.
func ParseAgentType(s string) (AgentType, error) {
	at := AgentType(s)
	if _, ok := allAgentTypes[at]; !ok {
		return "", fmt.Errorf("unknown agent type %q", s)
	}
	return at, nil
}

// String returns the wire representation.
func (a AgentType) String() string { return string(a) }

// AddressingMode controls which handoff targets a specialist may name.
type AddressingMode string

const (
	// AddressingDirect lets every specialist name any other registered
	// specialist directly ("swarm" addressing).
	AddressingDirect AddressingMode = "direct"

	// AddressingCoordinator restricts specialists to signalling the
	// coordinator, which re-routes with its own model.
	AddressingCoordinator AddressingMode = "coordinator"
)

// HandoffTargets computes the target set offered to agent self under the
// given addressing mode. The returned slice preserves the order of
// registered.
func HandoffTargets(mode AddressingMode, self AgentType, registered []AgentType) []AgentType {
	if mode == AddressingCoordinator {
		return []AgentType{AgentCoordinator}
	}
	targets := make([]AgentType, 0, len(registered))
	for _, at := range registered {
		if at == self || at == AgentCoordinator {
			continue
		}
		targets = append(targets, at)
	}
	return targets
}
