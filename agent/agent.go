package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/logging"
	"github.com/pgazmuri/agentswarm/metrics"
	"github.com/pgazmuri/agentswarm/model"
	"github.com/pgazmuri/agentswarm/tool"
)

// Fixed user-facing messages. These must stay stable: callers and tests
// rely on exact wording, and they never leak internal error details.
const (
	// FailsafeMessage is emitted when the tool call loop exhausts its
	// iteration bound without producing a final answer.
	FailsafeMessage = "I'm sorry, I wasn't able to complete your request after several attempts. Please try again or rephrase."

	// ErrorMessage is emitted when any internal failure interrupts a turn.
	ErrorMessage = "I'm sorry, I encountered an error processing your request. Please try again."
)

// Options configures an Agent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	Instruction       Instruction
	Tools             []tool.Tool
	HandoffTargets    []core.AgentType
	MaxToolIterations int
	Logger            logging.Logger
	Metrics           *metrics.Metrics
}

// Agent is a domain specialist driven by a completion client. Each turn runs
// a bounded tool call loop: the model may request tool executions whose
// results are fed back, until it produces a final text answer or requests a
// transfer to another specialist.
//
// An Agent keeps a local transcript between turns but adopts the
// coordinator's authoritative transcript whenever one is supplied, so
// specialists always see the full conversation including turns handled by
// other agents.
type Agent struct {
	agentType     core.AgentType
	client        model.CompletionClient
	instruction   Instruction
	tools         map[string]tool.Tool
	toolOrder     []string
	handoff       *tool.HandoffTool
	sink          core.HandoffSink
	maxIterations int
	logger        logging.Logger
	metrics       *metrics.Metrics

	history []core.Entry
}

// New creates an agent of the given type backed by client.
//
// Defaults: a generic assistant instruction, no tools, no transfer targets
// and the standard tool loop bound.
func New(agentType core.AgentType, client model.CompletionClient, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Instruction:       NewInstructionFromText(fmt.Sprintf("You are the %s agent, a helpful assistant.", agentType)),
		MaxToolIterations: core.DefaultMaxToolIterations,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Agent{
		agentType:     agentType,
		client:        client,
		instruction:   opts.Instruction,
		tools:         make(map[string]tool.Tool),
		maxIterations: opts.MaxToolIterations,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}
	for _, t := range opts.Tools {
		a.RegisterTool(t)
	}
	if len(opts.HandoffTargets) > 0 {
		a.handoff = tool.NewHandoffTool(opts.HandoffTargets)
	}
	return a
}

// Type returns the agent's identity.
func (a *Agent) Type() core.AgentType { return a.agentType }

// RegisterTool adds a tool to the agent's capability set. Registration order
// determines the order tools are presented to the model.
func (a *Agent) RegisterTool(t tool.Tool) {
	if _, exists := a.tools[t.Name()]; !exists {
		a.toolOrder = append(a.toolOrder, t.Name())
	}
	a.tools[t.Name()] = t
}

// RegisterTools adds multiple tools to the agent's capability set.
func (a *Agent) RegisterTools(tools ...tool.Tool) {
	for _, t := range tools {
		a.RegisterTool(t)
	}
}

// HasTool checks if a tool is registered with the agent.
func (a *Agent) HasTool(name string) bool {
	_, exists := a.tools[name]
	return exists
}

// ListTools returns the names of all registered tools in registration order.
func (a *Agent) ListTools() []string {
	return append([]string(nil), a.toolOrder...)
}

// SetHandoffSink wires the agent to the coordinator that will receive its
// transfer requests. Called once at registration.
func (a *Agent) SetHandoffSink(sink core.HandoffSink) { a.sink = sink }

// History returns a copy of the agent's local transcript.
func (a *Agent) History() []core.Entry {
	return append([]core.Entry(nil), a.history...)
}

// ResetHistory discards the agent's local transcript.
func (a *Agent) ResetHistory() { a.history = nil }

// Process handles one user turn and streams the reply as text fragments.
// The channel closes when the turn is complete. A turn that ends in a
// transfer request closes the channel without emitting anything; the
// coordinator dispatches the next agent.
//
// Process is not safe for concurrent calls on the same agent; the
// coordinator serializes turns per session.
func (a *Agent) Process(ctx context.Context, message string, tc *core.TurnContext) <-chan string {
	out := make(chan string, 32)
	go func() {
		defer close(out)
		a.runTurn(ctx, message, tc, out)
	}()
	return out
}

func (a *Agent) runTurn(ctx context.Context, message string, tc *core.TurnContext, out chan<- string) {
	a.logger.Debug("agent.turn.start", "agent", string(a.agentType), "from_handoff", tc.FromHandoff())

	// Adopt the coordinator's transcript so this agent sees turns handled
	// by other specialists.
	if tc != nil && len(tc.History) > 0 {
		a.history = append([]core.Entry(nil), tc.History...)
	}

	// The user turn goes into the transcript first. It may already be the
	// tail of a carried transcript when the turn arrived via handoff.
	userTurn := core.NewUserTurn(message)
	if n := len(a.history); n == 0 || !a.history[n-1].EqualTo(userTurn) {
		a.history = append(a.history, userTurn)
	}

	instructions, err := a.instruction.Resolve(tc)
	if err != nil {
		a.logger.Error("agent.instruction.error", "agent", string(a.agentType), "error", err.Error())
		emit(ctx, out, ErrorMessage)
		return
	}
	if note := tc.PrimingNote(); note != "" {
		instructions += "\n\n" + note
	}

	limiter := core.NewCallLimiter(a.maxIterations)
	for limiter.Increment() == nil {
		resp, err := a.complete(ctx, instructions)
		if err != nil {
			a.logger.Error("agent.completion.error", "agent", string(a.agentType), "error", err.Error())
			emit(ctx, out, ErrorMessage)
			return
		}

		if len(resp.ToolCalls) == 0 {
			if resp.Content != "" {
				a.history = append(a.history, core.NewAssistantTurn(a.agentType, resp.Content))
				streamWords(ctx, out, resp.Content)
			}
			a.logger.Debug("agent.turn.complete", "agent", string(a.agentType), "iterations", limiter.Count())
			return
		}

		a.history = append(a.history, core.NewAssistantToolCall(a.agentType, resp.Content, resp.ToolCalls))

		for _, call := range resp.ToolCalls {
			if call.Name == tool.HandoffToolName {
				if a.executeHandoff(tc, call, message) {
					return
				}
				continue
			}
			a.executeTool(ctx, tc, call)
		}
	}

	a.logger.Warn("agent.loop.failsafe", "agent", string(a.agentType), "iterations", limiter.Count())
	a.metrics.RecordLoopFailsafe(string(a.agentType))
	emit(ctx, out, FailsafeMessage)
}

// complete performs one non-streaming completion call with the agent's tools.
func (a *Agent) complete(ctx context.Context, instructions string) (model.Response, error) {
	req := model.Request{
		Instructions: instructions,
		Entries:      append([]core.Entry(nil), a.history...),
		Tools:        a.toolDefinitions(),
		ToolChoice:   model.ToolChoiceAuto,
	}

	start := time.Now()
	respCh, errCh := a.client.Generate(ctx, req)

	var final model.Response
	for r := range respCh {
		if !r.Partial {
			final = r
		}
	}
	a.metrics.ObserveCompletion(string(a.agentType), time.Since(start))
	if err := <-errCh; err != nil {
		return model.Response{}, err
	}
	return final, nil
}

// executeHandoff intercepts a transfer request. Valid requests are submitted
// to the coordinator and end the turn silently (returns true). Invalid
// requests produce an error tool result and let the loop continue.
func (a *Agent) executeHandoff(tc *core.TurnContext, call core.ToolCall, message string) bool {
	args, err := a.handoffArgs(call.Arguments)
	if err != nil {
		a.logger.Warn("agent.handoff.invalid", "agent", string(a.agentType), "error", err.Error())
		a.metrics.RecordToolCall(string(a.agentType), tool.HandoffToolName, "error")
		a.appendErrorResult(call, err)
		return false
	}
	if a.sink == nil {
		a.logger.Warn("agent.handoff.no_sink", "agent", string(a.agentType))
		a.appendErrorResult(call, fmt.Errorf("transfers are not available"))
		return false
	}

	ack, _ := json.Marshal(map[string]any{"handoff_requested": true, "reason": args.Reason})
	a.history = append(a.history, core.NewToolResult(call.ID, call.Name, string(ack)))

	target := core.AgentType(args.AgentType)
	var authoritative []core.Entry
	if tc != nil {
		authoritative = tc.History
	}
	req := core.NewHandoffRequest(
		a.agentType, target,
		args.Reason, args.ContextSummary, message,
		authoritative, a.history,
	)
	a.logger.Info("agent.handoff.requested",
		"from", string(a.agentType),
		"to", args.AgentType,
		"reason", args.Reason,
	)
	a.metrics.RecordToolCall(string(a.agentType), tool.HandoffToolName, "handoff")
	a.sink.SubmitHandoff(req)
	return true
}

func (a *Agent) handoffArgs(raw string) (tool.HandoffArgs, error) {
	if a.handoff == nil {
		return tool.HandoffArgs{}, fmt.Errorf("agent has no transfer targets")
	}
	return a.handoff.ParseArguments(raw)
}

// executeTool runs one regular tool call and appends its result, or an error
// payload, to the transcript. The model sees the payload on the next
// iteration and can recover or explain.
func (a *Agent) executeTool(ctx context.Context, tc *core.TurnContext, call core.ToolCall) {
	t, exists := a.tools[call.Name]
	if !exists {
		a.logger.Warn("agent.tool.unknown", "agent", string(a.agentType), "tool", call.Name)
		a.metrics.RecordToolCall(string(a.agentType), call.Name, "error")
		a.appendErrorResult(call, fmt.Errorf("no handler for function %s", call.Name))
		return
	}

	args := make(map[string]any)
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			a.metrics.RecordToolCall(string(a.agentType), call.Name, "error")
			a.appendErrorResult(call, fmt.Errorf("invalid arguments: %v", err))
			return
		}
	}

	var sess *core.Session
	if tc != nil {
		sess = tc.Session
	}
	toolCtx := core.NewToolContext(ctx, a.agentType, call.ID, sess, a.logger)

	result, err := t.Call(toolCtx, args)
	if err != nil {
		a.metrics.RecordToolCall(string(a.agentType), call.Name, "error")
		a.appendErrorResult(call, err)
		return
	}
	a.metrics.RecordToolCall(string(a.agentType), call.Name, "success")

	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", result))
	}
	a.history = append(a.history, core.NewToolResult(call.ID, call.Name, string(payload)))
}

func (a *Agent) appendErrorResult(call core.ToolCall, err error) {
	payload, _ := json.Marshal(map[string]any{"error": err.Error()})
	a.history = append(a.history, core.NewToolResult(call.ID, call.Name, string(payload)))
}

func (a *Agent) toolDefinitions() []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(a.toolOrder)+1)
	for _, name := range a.toolOrder {
		t := a.tools[name]
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	if a.handoff != nil {
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        a.handoff.Name(),
				Description: a.handoff.Description(),
				Parameters:  a.handoff.Parameters(),
			},
		})
	}
	return defs
}

// streamWords emits content word by word, preserving a trailing space after
// each fragment so the consumer can concatenate them directly.
func streamWords(ctx context.Context, out chan<- string, content string) {
	for _, word := range strings.Fields(content) {
		select {
		case <-ctx.Done():
			return
		case out <- word + " ":
		}
	}
}

func emit(ctx context.Context, out chan<- string, msg string) {
	select {
	case <-ctx.Done():
	case out <- msg:
	}
}
