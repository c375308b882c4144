package specialist

import (
	"fmt"
	"strings"

	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/services"
	"github.com/pgazmuri/agentswarm/tool"
)

const benefitsPrompt = `You are the Benefits specialist for a pharmacy benefits system.

You explain plan design: deductibles, copay tiers, out-of-pocket maximums,
prior authorization rules, step therapy and formulary placement. Use the
member's plan from the shared context when available; otherwise ask which
plan they are on. Explain rules in plain language and always say what the
member can do next.

For exact dollar pricing hand off to pricing; for clinical appropriateness
hand off to clinical.`

// NewBenefits builds the plan design specialist.
func NewBenefits(cfg Config, members *services.Members, pbm *services.PBM) *agent.Agent {
	a := agent.New(core.AgentBenefits, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(benefitsPrompt)
		o.HandoffTargets = cfg.targets(core.AgentBenefits, HealthcareAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"get_plan_details",
			"Get the full benefit structure for a plan",
			objectSchema(map[string]any{
				"plan_id": stringParam("Plan identifier"),
			}, "plan_id"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				plan, ok := members.GetPlanBenefits(argString(args, "plan_id"))
				if !ok {
					return map[string]any{"error": "plan not found"}, nil
				}
				return plan, nil
			},
		),
		tool.NewFunctionTool(
			"check_coverage",
			"Check whether a drug is covered under a plan and on what terms",
			objectSchema(map[string]any{
				"plan_id":   stringParam("Plan identifier"),
				"drug_name": stringParam("Drug name"),
			}, "plan_id", "drug_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				planID := argString(args, "plan_id")
				drug := argString(args, "drug_name")
				plan, ok := members.GetPlanBenefits(planID)
				if !ok {
					return map[string]any{"error": "plan not found"}, nil
				}
				lookup := pbm.NDCLookup(tc.Context(), drug, services.SearchModeSearch)
				covered := len(lookup.Results) > 0
				tier := "Tier 3"
				if covered && lookup.Results[0].BrandGeneric == "generic" {
					tier = "Tier 1"
				}
				return map[string]any{
					"plan_id":   planID,
					"drug_name": drug,
					"covered":   covered,
					"tier":      tier,
					"copay":     plan.TierCopays[tier],
					"context":   fmt.Sprintf("Coverage determined from formulary placement under plan %s.", planID),
				}, nil
			},
		),
		tool.NewFunctionTool(
			"check_prior_auth",
			"Check whether a drug requires prior authorization under a plan",
			objectSchema(map[string]any{
				"plan_id":   stringParam("Plan identifier"),
				"drug_name": stringParam("Drug name"),
			}, "plan_id", "drug_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				plan, ok := members.GetPlanBenefits(argString(args, "plan_id"))
				if !ok {
					return map[string]any{"error": "plan not found"}, nil
				}
				drug := strings.ToLower(argString(args, "drug_name"))
				required := false
				var rule string
				for _, category := range plan.PriorAuthRequired {
					if strings.Contains(category, "biologic") && strings.Contains(drug, "umab") {
						required, rule = true, category
						break
					}
					if strings.Contains(category, "brand") && !strings.Contains(drug, "generic") {
						required, rule = true, category
					}
				}
				return map[string]any{
					"drug_name":     argString(args, "drug_name"),
					"required":      required,
					"matching_rule": rule,
				}, nil
			},
		),
		tool.NewFunctionTool(
			"check_step_therapy",
			"Check whether step therapy applies to a drug under a plan",
			objectSchema(map[string]any{
				"plan_id":   stringParam("Plan identifier"),
				"drug_name": stringParam("Drug name"),
			}, "plan_id", "drug_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				drug := strings.ToLower(argString(args, "drug_name"))
				// Step therapy applies to second-line brands in the fixtures.
				applies := strings.Contains(drug, "humira") || strings.Contains(drug, "ozempic")
				result := map[string]any{
					"drug_name": argString(args, "drug_name"),
					"applies":   applies,
				}
				if applies {
					result["first_line"] = "Try the first-line generic for 8 weeks before this drug is covered."
				}
				return result, nil
			},
		),
		tool.NewFunctionTool(
			"get_formulary_details",
			"Get formulary placement and alternatives for a drug under a plan",
			objectSchema(map[string]any{
				"plan_id": stringParam("Plan identifier"),
				"ndc":     stringParam("NDC of the drug"),
			}, "plan_id", "ndc"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				alternatives, context := pbm.FormularyAlternatives(argString(args, "plan_id"), argString(args, "ndc"))
				return map[string]any{
					"ndc":          argString(args, "ndc"),
					"status":       "covered",
					"alternatives": alternatives,
					"context":      context,
				}, nil
			},
		),
		tool.NewFunctionTool(
			"get_utilization_summary",
			"Get a member's year-to-date deductible and out-of-pocket progress",
			objectSchema(map[string]any{
				"member_id": stringParam("Member ID"),
			}, "member_id"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return members.GetUtilization(argString(args, "member_id")), nil
			},
		),
	)
	return a
}
