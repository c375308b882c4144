package specialist

import (
	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/services"
	"github.com/pgazmuri/agentswarm/tool"
)

const authenticationPrompt = `You are the Authentication specialist for a pharmacy benefits system.

You verify member identity before other specialists share account details.
Workflow:
1. Ask for the member ID and date of birth (YYYY-MM-DD), then call
   verify_member_identity.
2. If additional verification is needed, send a one-time code with
   send_mfa_code and confirm it with verify_mfa_code.
3. Once verified, confirm success and hand the conversation back to the
   specialist who needs the verified identity, or to whichever specialist
   can answer the member's original question.

Never reveal account details yourself. Never skip verification steps.`

// NewAuthentication builds the identity verification specialist. Successful
// verification records member_id and authenticated in the session's shared
// context, where other specialists' tools can read it.
func NewAuthentication(cfg Config, members *services.Members) *agent.Agent {
	a := agent.New(core.AgentAuthentication, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(authenticationPrompt)
		o.HandoffTargets = cfg.targets(core.AgentAuthentication, HealthcareAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"verify_member_identity",
			"Verify a member's identity by member ID and date of birth",
			objectSchema(map[string]any{
				"member_id":     stringParam("Member ID"),
				"date_of_birth": stringParam("Date of birth YYYY-MM-DD"),
			}, "member_id", "date_of_birth"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				memberID := argString(args, "member_id")
				result := members.VerifyIdentity(memberID, argString(args, "date_of_birth"))
				if verified, _ := result["verified"].(bool); verified {
					tc.SetState("member_id", memberID)
					tc.SetState("authenticated", true)
				}
				return result, nil
			},
		),
		tool.NewFunctionTool(
			"send_mfa_code",
			"Send a one-time verification code to the member",
			objectSchema(map[string]any{
				"member_id": stringParam("Member ID"),
				"method": map[string]any{
					"type":        "string",
					"description": "Delivery method for the code",
					"enum":        []any{"sms", "email"},
				},
			}, "member_id", "method"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return members.SendMFACode(argString(args, "member_id"), argString(args, "method")), nil
			},
		),
		tool.NewFunctionTool(
			"verify_mfa_code",
			"Verify a one-time code previously sent to the member",
			objectSchema(map[string]any{
				"member_id": stringParam("Member ID"),
				"code":      stringParam("The code the member received"),
			}, "member_id", "code"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				memberID := argString(args, "member_id")
				result := members.VerifyMFACode(memberID, argString(args, "code"))
				if verified, _ := result["verified"].(bool); verified {
					tc.SetState("member_id", memberID)
					tc.SetState("authenticated", true)
				}
				return result, nil
			},
		),
	)
	return a
}
