// Package specialist assembles the concrete agents: their system prompts,
// their tools bound to the backing services, and the transfer targets
// allowed by the deployment's addressing mode. Two deployments are
// provided: a healthcare pharmacy-benefits desk and an IT operations
// incident response team.
package specialist

import (
	"fmt"

	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/logging"
	"github.com/pgazmuri/agentswarm/metrics"
	"github.com/pgazmuri/agentswarm/model"
)

// Config carries the dependencies every specialist constructor needs.
type Config struct {
	Client            model.CompletionClient
	Mode              core.AddressingMode
	MaxToolIterations int
	Logger            logging.Logger
	Metrics           *metrics.Metrics
}

// apply sets the ambient dependencies shared by every specialist. Zero
// values keep the agent defaults.
func (c Config) apply(o *agent.Options) {
	if c.Logger != nil {
		o.Logger = c.Logger
	}
	o.Metrics = c.Metrics
	if c.MaxToolIterations > 0 {
		o.MaxToolIterations = c.MaxToolIterations
	}
}

// HealthcareAgents is the healthcare deployment's roster.
var HealthcareAgents = []core.AgentType{
	core.AgentPricing,
	core.AgentAuthentication,
	core.AgentPharmacy,
	core.AgentBenefits,
	core.AgentClinical,
}

// ITOpsAgents is the IT operations deployment's roster.
var ITOpsAgents = []core.AgentType{
	core.AgentInvestigator,
	core.AgentRemediation,
	core.AgentAnalysis,
}

// Routing descriptions shown to the coordinator's routing model.
const (
	PricingDescription        = "Drug cost calculations, insurance benefits, pricing estimates"
	AuthenticationDescription = "Member verification, login, security checks"
	PharmacyDescription       = "Prescription status, refills, transfers, pickup notifications"
	BenefitsDescription       = "Plan details, coverage rules, prior authorizations"
	ClinicalDescription       = "Drug interactions, alternatives, clinical criteria"
	InvestigatorDescription   = "Log searches, flow logs, change tickets, deployment history"
	RemediationDescription    = "Restarts, patches, rollbacks and fix verification"
	AnalysisDescription       = "Root cause analysis and incident summaries"
)

// targets resolves the transfer targets for one agent under the configured
// addressing mode and roster.
func (c Config) targets(self core.AgentType, roster []core.AgentType) []core.AgentType {
	return core.HandoffTargets(c.Mode, self, roster)
}

// Argument extraction helpers. Tool arguments arrive as decoded JSON, so
// numbers are float64 and everything is optional until validated.

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func argFloat(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}

func argStrings(args map[string]any, key string) []string {
	raw, _ := args[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func numberParam(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func stringParam(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
