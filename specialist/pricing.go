package specialist

import (
	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/services"
	"github.com/pgazmuri/agentswarm/tool"
)

const pricingPrompt = `You are the Pricing specialist for a pharmacy benefits system.

You help members understand what their medications will cost. Always:
1. Resolve the drug to an NDC with ndc_lookup before pricing it.
2. Use get_drug_cost for the full benefit-aware price breakdown.
3. Use the math tools (add, subtract, multiply, divide, calculate_percentage,
   apply_minimum, apply_maximum) for every dollar calculation. Never do
   arithmetic yourself.
4. Check check_coupons for brand drugs and mention savings when available.
5. Explain the breakdown in plain language: what the member pays, what the
   plan pays, and why.

If the user needs identity verification, prescription logistics, plan rules
or clinical questions, hand the conversation off to the right specialist.`

// NewPricing builds the drug pricing specialist.
func NewPricing(cfg Config, pbm *services.PBM, members *services.Members, calc *services.Calculator) *agent.Agent {
	a := agent.New(core.AgentPricing, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(pricingPrompt)
		o.HandoffTargets = cfg.targets(core.AgentPricing, HealthcareAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"ndc_lookup",
			"Look up drug codes (NDCs) matching a drug name or code",
			objectSchema(map[string]any{
				"query": stringParam("Drug name, partial name or NDC"),
				"mode": map[string]any{
					"type":        "string",
					"description": "exact for exact matches, search for fuzzy matching",
					"enum":        []any{"exact", "search"},
				},
			}, "query"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				mode := services.SearchMode(argString(args, "mode"))
				if mode == "" {
					mode = services.SearchModeSearch
				}
				return pbm.NDCLookup(tc.Context(), argString(args, "query"), mode), nil
			},
		),
		tool.NewFunctionTool(
			"get_drug_cost",
			"Get the full benefit-aware price breakdown for a drug by NDC",
			objectSchema(map[string]any{
				"ndc":       stringParam("11-digit NDC of the drug"),
				"member_id": stringParam("Member ID the price applies to"),
			}, "ndc", "member_id"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return pbm.CalculateRxPrice(tc.Context(), argString(args, "ndc"), argString(args, "member_id")), nil
			},
		),
		tool.NewFunctionTool(
			"check_formulary",
			"Find formulary alternatives for a drug under a plan",
			objectSchema(map[string]any{
				"plan_id": stringParam("Plan identifier"),
				"ndc":     stringParam("NDC to find alternatives for"),
			}, "plan_id", "ndc"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				alternatives, context := pbm.FormularyAlternatives(argString(args, "plan_id"), argString(args, "ndc"))
				return map[string]any{"alternatives": alternatives, "context": context}, nil
			},
		),
		tool.NewFunctionTool(
			"check_eligibility",
			"Check whether a member is eligible for benefits",
			objectSchema(map[string]any{
				"member_id": stringParam("Member ID"),
			}, "member_id"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return members.CheckEligibility(argString(args, "member_id")), nil
			},
		),
		tool.NewFunctionTool(
			"get_plan_benefits",
			"Get a plan's cost sharing structure (deductible, copays, out-of-pocket max)",
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
			"get_member_utilization",
			"Get a member's year-to-date deductible and out-of-pocket progress",
			objectSchema(map[string]any{
				"member_id": stringParam("Member ID"),
			}, "member_id"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return members.GetUtilization(argString(args, "member_id")), nil
			},
		),
		tool.NewFunctionTool(
			"check_coupons",
			"Check manufacturer coupons and discounts for a drug",
			objectSchema(map[string]any{
				"ndc": stringParam("NDC of the drug"),
			}, "ndc"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				price := pbm.CalculateRxPrice(tc.Context(), argString(args, "ndc"), "COUPON-CHECK")
				if !price.CouponEligible {
					return map[string]any{"eligible": false}, nil
				}
				return map[string]any{
					"eligible": true,
					"coupons": []map[string]any{{
						"type":     "manufacturer",
						"discount": 10.00,
						"terms":    "Up to $10 off per fill for commercially insured members",
					}},
				}, nil
			},
		),
	)
	registerMathTools(a, calc)
	return a
}

// registerMathTools exposes the pricing calculator so dollar math is exact.
func registerMathTools(a *agent.Agent, calc *services.Calculator) {
	twoNumbers := func(aDesc, bDesc string) map[string]any {
		return objectSchema(map[string]any{
			"a": numberParam(aDesc),
			"b": numberParam(bDesc),
		}, "a", "b")
	}
	binary := func(name, description string, fn func(x, y float64) (any, error)) *tool.FunctionTool {
		return tool.NewFunctionTool(name, description,
			twoNumbers("First operand", "Second operand"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				x, err := argFloat(args, "a")
				if err != nil {
					return nil, err
				}
				y, err := argFloat(args, "b")
				if err != nil {
					return nil, err
				}
				return fn(x, y)
			},
		)
	}

	a.RegisterTools(
		binary("add", "Add two numbers", func(x, y float64) (any, error) { return calc.Add(x, y), nil }),
		binary("subtract", "Subtract the second number from the first", func(x, y float64) (any, error) { return calc.Subtract(x, y), nil }),
		binary("multiply", "Multiply two numbers", func(x, y float64) (any, error) { return calc.Multiply(x, y), nil }),
		binary("divide", "Divide the first number by the second", func(x, y float64) (any, error) { return calc.Divide(x, y) }),
		tool.NewFunctionTool(
			"calculate_percentage",
			"Calculate a percentage of an amount (20% of 100 = 20)",
			objectSchema(map[string]any{
				"amount":     numberParam("Base amount"),
				"percentage": numberParam("Percentage to apply"),
			}, "amount", "percentage"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				amount, err := argFloat(args, "amount")
				if err != nil {
					return nil, err
				}
				pct, err := argFloat(args, "percentage")
				if err != nil {
					return nil, err
				}
				return calc.Percentage(amount, pct), nil
			},
		),
		tool.NewFunctionTool(
			"apply_minimum",
			"Return the larger of a value and a minimum",
			objectSchema(map[string]any{
				"value":   numberParam("Value to floor"),
				"minimum": numberParam("Minimum to apply"),
			}, "value", "minimum"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				value, err := argFloat(args, "value")
				if err != nil {
					return nil, err
				}
				minimum, err := argFloat(args, "minimum")
				if err != nil {
					return nil, err
				}
				return calc.ApplyMinimum(value, minimum), nil
			},
		),
		tool.NewFunctionTool(
			"apply_maximum",
			"Return the smaller of a value and a maximum (a cap)",
			objectSchema(map[string]any{
				"value":   numberParam("Value to cap"),
				"maximum": numberParam("Maximum to apply"),
			}, "value", "maximum"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				value, err := argFloat(args, "value")
				if err != nil {
					return nil, err
				}
				maximum, err := argFloat(args, "maximum")
				if err != nil {
					return nil, err
				}
				return calc.ApplyMaximum(value, maximum), nil
			},
		),
	)
}
