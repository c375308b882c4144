package specialist

import (
	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/services"
	"github.com/pgazmuri/agentswarm/tool"
)

const clinicalPrompt = `You are the Clinical specialist for a pharmacy benefits system.

You answer medication safety questions: drug interactions, therapeutic
alternatives, dosing guidance, allergy conflicts and clinical coverage
criteria. Always check interactions when a member mentions taking multiple
medications together. Be precise, cite severities, and recommend the member
talk to their prescriber for medical decisions.

You provide drug information, not medical advice. For prices hand off to
pricing; for plan rules hand off to benefits.`

// NewClinical builds the medication safety specialist.
func NewClinical(cfg Config, clinical *services.Clinical) *agent.Agent {
	a := agent.New(core.AgentClinical, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(clinicalPrompt)
		o.HandoffTargets = cfg.targets(core.AgentClinical, HealthcareAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"check_drug_interactions",
			"Check for interactions between two or more drugs",
			objectSchema(map[string]any{
				"drugs": map[string]any{
					"type":        "array",
					"description": "Names of the drugs to check together",
					"items":       map[string]any{"type": "string"},
				},
			}, "drugs"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				interactions := clinical.CheckInteractions(argStrings(args, "drugs"))
				return map[string]any{
					"interactions": interactions,
					"found":        len(interactions),
				}, nil
			},
		),
		tool.NewFunctionTool(
			"find_therapeutic_alternatives",
			"Find therapeutic alternatives for a drug",
			objectSchema(map[string]any{
				"drug_name": stringParam("Drug to find alternatives for"),
			}, "drug_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				alternatives, ok := clinical.TherapeuticAlternatives(argString(args, "drug_name"))
				return map[string]any{
					"drug_name":    argString(args, "drug_name"),
					"found":        ok,
					"alternatives": alternatives,
				}, nil
			},
		),
		tool.NewFunctionTool(
			"get_dosing_guidance",
			"Get standard dosing guidance for a drug",
			objectSchema(map[string]any{
				"drug_name": stringParam("Drug to get dosing for"),
			}, "drug_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				guidance, ok := clinical.DosingGuidance(argString(args, "drug_name"))
				if !ok {
					return map[string]any{"found": false}, nil
				}
				return map[string]any{"found": true, "guidance": guidance}, nil
			},
		),
		tool.NewFunctionTool(
			"check_allergies",
			"Check a drug against the member's recorded allergies",
			objectSchema(map[string]any{
				"drug_name": stringParam("Drug to check"),
				"allergies": map[string]any{
					"type":        "array",
					"description": "The member's recorded allergies",
					"items":       map[string]any{"type": "string"},
				},
			}, "drug_name", "allergies"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return clinical.CheckAllergies(argString(args, "drug_name"), argStrings(args, "allergies")), nil
			},
		),
		tool.NewFunctionTool(
			"check_clinical_criteria",
			"Check the clinical coverage criteria for a drug",
			objectSchema(map[string]any{
				"drug_name": stringParam("Drug to check criteria for"),
			}, "drug_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return map[string]any{
					"drug_name": argString(args, "drug_name"),
					"criteria":  clinical.ClinicalCriteria(argString(args, "drug_name")),
				}, nil
			},
		),
		tool.NewFunctionTool(
			"safety_alert_check",
			"Run a combined safety screen: interactions plus allergy conflicts",
			objectSchema(map[string]any{
				"drugs": map[string]any{
					"type":        "array",
					"description": "All drugs the member takes, including the new one",
					"items":       map[string]any{"type": "string"},
				},
				"allergies": map[string]any{
					"type":        "array",
					"description": "The member's recorded allergies",
					"items":       map[string]any{"type": "string"},
				},
			}, "drugs"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				drugs := argStrings(args, "drugs")
				allergies := argStrings(args, "allergies")
				interactions := clinical.CheckInteractions(drugs)
				var allergyAlerts []any
				for _, drug := range drugs {
					result := clinical.CheckAllergies(drug, allergies)
					if safe, _ := result["safe"].(bool); !safe {
						allergyAlerts = append(allergyAlerts, result)
					}
				}
				return map[string]any{
					"interactions":   interactions,
					"allergy_alerts": allergyAlerts,
					"clear":          len(interactions) == 0 && len(allergyAlerts) == 0,
				}, nil
			},
		),
	)
	return a
}
