package specialist

import (
	"fmt"

	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/services"
	"github.com/pgazmuri/agentswarm/tool"
)

const investigatorPromptFormat = `You are the Investigator specialist for an IT operations team.

You gather evidence about infrastructure incidents. You query Splunk, review
network flow logs, check ServiceNow change tickets and list recent pipeline
deployments. You do NOT change anything; once you have established a probable
root cause, hand off to the analysis agent to synthesize findings or directly
to remediation with a concrete recommended action.

%s

%s

Work methodically. Run one search at a time, read the results, and let the
evidence drive the next query.`

// NewInvestigator builds the read-only incident investigation agent.
func NewInvestigator(cfg Config, ops *services.ITOps, env services.ITEnvironment) *agent.Agent {
	prompt := fmt.Sprintf(investigatorPromptFormat, env.SplunkContext(), env.InvestigationPatterns())

	a := agent.New(core.AgentInvestigator, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(prompt)
		o.HandoffTargets = cfg.targets(core.AgentInvestigator, ITOpsAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"splunk_search",
			"Run a Splunk search query over infrastructure logs",
			objectSchema(map[string]any{
				"query":      stringParam("Splunk search query, e.g. index=wineventlog host=SQL-PROD-01"),
				"time_frame": stringParam("Relative time window, e.g. -1h or -24h"),
			}, "query"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.SplunkSearch(argString(args, "query"), argString(args, "time_frame")), nil
			},
		),
		tool.NewFunctionTool(
			"check_flow_logs",
			"Check network flow logs for a virtual machine",
			objectSchema(map[string]any{
				"vm_name":    stringParam("Server name, e.g. SQL-PROD-01"),
				"time_frame": stringParam("Relative time window, e.g. -1h"),
			}, "vm_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.CheckFlowLogs(argString(args, "vm_name"), argString(args, "time_frame")), nil
			},
		),
		tool.NewFunctionTool(
			"check_snow_tickets",
			"Check ServiceNow change tickets touching a server",
			objectSchema(map[string]any{
				"vm_name":    stringParam("Server name the change may affect"),
				"time_frame": stringParam("Relative time window, e.g. -24h"),
			}, "vm_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.CheckSnowTickets(argString(args, "vm_name"), argString(args, "time_frame")), nil
			},
		),
		tool.NewFunctionTool(
			"get_deployments",
			"List recent pipeline deployments affecting a server",
			objectSchema(map[string]any{
				"vm_name":    stringParam("Server name the deployment may affect"),
				"time_frame": stringParam("Relative time window, e.g. -24h"),
			}, "vm_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.GetDeployments(argString(args, "vm_name"), argString(args, "time_frame")), nil
			},
		),
	)
	return a
}

const remediationPrompt = `You are the Remediation specialist for an IT operations team.

You execute corrective actions on infrastructure: restarting servers and
services, applying patches, rolling back deployments. Only act on a specific
recommendation; if the root cause is unclear, hand off to the investigator
instead of guessing. After every corrective action run verify_fix to confirm
the incident is actually resolved, and report the verification result. If a
fix does not verify, say so plainly and hand back to the investigator.`

// NewRemediation builds the corrective action agent.
func NewRemediation(cfg Config, ops *services.ITOps) *agent.Agent {
	a := agent.New(core.AgentRemediation, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(remediationPrompt)
		o.HandoffTargets = cfg.targets(core.AgentRemediation, ITOpsAgents)
		cfg.apply(o)
	})

	a.RegisterTools(
		tool.NewFunctionTool(
			"restart_server",
			"Restart a server (full reboot)",
			objectSchema(map[string]any{
				"vm_name": stringParam("Server to restart"),
			}, "vm_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.RestartServer(argString(args, "vm_name")), nil
			},
		),
		tool.NewFunctionTool(
			"restart_service",
			"Restart a single service on a server",
			objectSchema(map[string]any{
				"vm_name": stringParam("Server hosting the service"),
				"service": stringParam("Service name, e.g. MSSQLSERVER"),
			}, "vm_name", "service"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.RestartService(argString(args, "vm_name"), argString(args, "service")), nil
			},
		),
		tool.NewFunctionTool(
			"apply_patch",
			"Apply a patch to a server",
			objectSchema(map[string]any{
				"vm_name": stringParam("Server to patch"),
				"patch":   stringParam("Patch identifier"),
			}, "vm_name", "patch"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.ApplyPatch(argString(args, "vm_name"), argString(args, "patch")), nil
			},
		),
		tool.NewFunctionTool(
			"rollback_deployment",
			"Roll back the most recent run of a deployment pipeline",
			objectSchema(map[string]any{
				"pipeline": stringParam("Pipeline name to roll back"),
			}, "pipeline"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.RollbackDeployment(argString(args, "pipeline")), nil
			},
		),
		tool.NewFunctionTool(
			"verify_fix",
			"Verify whether a server has recovered after a corrective action",
			objectSchema(map[string]any{
				"vm_name": stringParam("Server to verify"),
			}, "vm_name"),
			func(tc *core.ToolContext, args map[string]any) (any, error) {
				return ops.VerifyFix(argString(args, "vm_name")), nil
			},
		),
	)
	return a
}

const analysisPrompt = `You are the Analysis specialist for an IT operations team.

You synthesize investigation findings into clear incident summaries: a
timeline of events, the probable root cause, the business impact and a
recommended remediation. You have no tools; work only from the conversation
history the investigator gathered. If the evidence is insufficient for a
confident root cause, say what is missing and hand back to the investigator.
When a concrete corrective action is warranted, hand off to remediation with
the recommendation in the context summary.`

// NewAnalysis builds the synthesis agent. It carries no tools; it reasons
// over the history carried through handoffs.
func NewAnalysis(cfg Config) *agent.Agent {
	return agent.New(core.AgentAnalysis, cfg.Client, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(analysisPrompt)
		o.HandoffTargets = cfg.targets(core.AgentAnalysis, ITOpsAgents)
		cfg.apply(o)
	})
}
