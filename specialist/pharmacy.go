package specialist

import (
	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/services"
	"github.com/pgazmuri/agentswarm/tool"
)

const pharmacyPrompt = `You are the Pharmacy specialist for a pharmacy benefits system.

You handle prescription logistics: status checks, refills, transfers
between pharmacies, pickup notifications and locating network pharmacies.
Always confirm the prescription number (RX number) before acting on it.
When a refill has no refills remaining, explain that a new prescription is
needed from the prescriber.

For pricing questions, identity verification, plan rules or clinical
questions, hand the conversation off to the right specialist.`

// NewPharmacy builds the prescription logistics specialist.
func NewPharmacy(cfg Config, network *services.PharmacyNetwork) *agent.Agent {
	a := agent.New(core.AgentPharmacy, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(pharmacyPrompt)
		o.HandoffTargets = cfg.targets(core.AgentPharmacy, HealthcareAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"check_prescription_status",
			"Check the current status of a prescription by RX number",
			objectSchema(map[string]any{
				"rx_number": stringParam("Prescription number, e.g. RX1001"),
			}, "rx_number"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				rx, ok := network.PrescriptionStatus(argString(args, "rx_number"))
				if !ok {
					return map[string]any{"found": false}, nil
				}
				return rx, nil
			},
		),
		tool.NewFunctionTool(
			"request_refill",
			"Submit a refill request for a prescription",
			objectSchema(map[string]any{
				"rx_number": stringParam("Prescription number"),
			}, "rx_number"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return network.RequestRefill(argString(args, "rx_number")), nil
			},
		),
		tool.NewFunctionTool(
			"transfer_prescription",
			"Transfer a prescription to another pharmacy",
			objectSchema(map[string]any{
				"rx_number":       stringParam("Prescription number"),
				"target_pharmacy": stringParam("Name of the receiving pharmacy"),
			}, "rx_number", "target_pharmacy"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return network.TransferPrescription(
					argString(args, "rx_number"),
					argString(args, "target_pharmacy"),
				), nil
			},
		),
		tool.NewFunctionTool(
			"find_pharmacies",
			"Find network pharmacies by name or address; empty query lists all",
			objectSchema(map[string]any{
				"query": stringParam("Name or address fragment"),
			}),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return network.FindPharmacies(argString(args, "query")), nil
			},
		),
		tool.NewFunctionTool(
			"get_pickup_notifications",
			"List prescriptions that are ready for pickup",
			objectSchema(map[string]any{}),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return network.PickupNotifications(), nil
			},
		),
	)
	return a
}
