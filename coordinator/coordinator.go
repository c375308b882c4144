package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/logging"
	"github.com/pgazmuri/agentswarm/metrics"
	"github.com/pgazmuri/agentswarm/model"
	"github.com/pgazmuri/agentswarm/tool"
)

// DefaultMaxHandoffs bounds a handoff chain within a single user turn.
const DefaultMaxHandoffs = 3

// Fixed user-facing messages. Exact wording is part of the contract.
const (
	// NotUnderstoodMessage is emitted when the routing model fails to
	// produce a transfer despite being forced to use tools.
	NotUnderstoodMessage = "I'm sorry, I couldn't understand your request. Could you please rephrase it?"

	// RoutingErrorMessage is emitted when the routing completion fails.
	RoutingErrorMessage = "I'm sorry, I'm having trouble processing your request right now. Please try again."

	// ChainOverflowMessage is appended after a turn whose handoff chain hit
	// the limit.
	ChainOverflowMessage = "\n\nI've transferred your request through multiple specialists. Please let me know if you need further assistance."
)

// UnavailableMessage renders the reply for a transfer to an unregistered agent.
func UnavailableMessage(target core.AgentType) string {
	return fmt.Sprintf("I'm sorry, the %s agent is not available right now.", target)
}

// Options configures a Coordinator instance.
type Options struct {
	MaxHandoffs        int
	RoutingInstruction string
	Logger             logging.Logger
	Metrics            *metrics.Metrics
	Session            *core.Session
}

// Coordinator routes user messages to registered specialist agents and
// executes the handoff protocol between them.
//
// State machine per turn: with no active specialist the routing model is
// forced (tool_choice "required") to pick one; once a specialist is active
// it stays active across turns until it transfers away or the conversation
// is reset. Transfers submitted by agents are parked on the session and
// consumed by a bounded chain loop after the submitting agent's stream ends.
type Coordinator struct {
	client       model.CompletionClient
	agents       map[core.AgentType]*agent.Agent
	descriptions map[core.AgentType]string
	order        []core.AgentType
	session      *core.Session
	maxHandoffs  int
	routing      string
	logger       logging.Logger
	metrics      *metrics.Metrics

	mu sync.Mutex
}

// New creates a coordinator that uses client for routing decisions.
func New(client model.CompletionClient, optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		MaxHandoffs: DefaultMaxHandoffs,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	sess := opts.Session
	if sess == nil {
		sess = core.NewSession("")
	}
	return &Coordinator{
		client:       client,
		agents:       make(map[core.AgentType]*agent.Agent),
		descriptions: make(map[core.AgentType]string),
		session:      sess,
		maxHandoffs:  opts.MaxHandoffs,
		routing:      opts.RoutingInstruction,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
	}
}

// Register adds a specialist agent with a one-line description used in the
// routing prompt, and wires the agent's transfer requests back to this
// coordinator.
func (c *Coordinator) Register(a *agent.Agent, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	at := a.Type()
	if _, exists := c.agents[at]; !exists {
		c.order = append(c.order, at)
	}
	c.agents[at] = a
	c.descriptions[at] = description
	a.SetHandoffSink(c)
	c.logger.Info("coordinator.agent.registered", "agent", string(at))
}

// RegisteredAgents returns the registered agent types in registration order.
func (c *Coordinator) RegisteredAgents() []core.AgentType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.AgentType(nil), c.order...)
}

// CurrentAgent returns the agent that will receive the next message.
func (c *Coordinator) CurrentAgent() core.AgentType {
	return c.session.CurrentAgent()
}

// Session exposes the coordinator's session.
func (c *Coordinator) Session() *core.Session {
	return c.session
}

// SubmitHandoff implements core.HandoffSink. The request is parked on the
// session; it takes effect after the submitting agent's stream completes.
func (c *Coordinator) SubmitHandoff(req core.HandoffRequest) {
	c.logger.Info("coordinator.handoff.submitted",
		"from", string(req.FromAgent),
		"to", string(req.ToAgent),
		"reason", req.Reason,
	)
	c.session.SetPendingHandoff(req)
}

// ProcessMessage handles one user turn and streams the reply as text
// fragments. The channel closes when the turn, including any handoff chain
// it triggers, is complete.
func (c *Coordinator) ProcessMessage(ctx context.Context, message string) <-chan string {
	out := make(chan string, 32)
	go func() {
		defer close(out)
		c.processTurn(ctx, message, out)
	}()
	return out
}

func (c *Coordinator) processTurn(ctx context.Context, message string, out chan<- string) {
	c.metrics.RecordTurn()

	// A pending transfer never survives into a new turn.
	c.session.ClearPendingHandoff()

	c.session.Append(core.NewUserTurn(message))

	current := c.session.CurrentAgent()
	c.logger.Debug("coordinator.turn.start", "current_agent", string(current))

	if current != core.AgentCoordinator {
		if a, ok := c.lookup(current); ok {
			tc := &core.TurnContext{
				History: c.session.History(),
				Session: c.session,
			}
			c.dispatch(ctx, a, message, tc, out)
			c.processHandoffChain(ctx, out)
			return
		}
		// Sticky agent vanished; fall back to routing.
		c.session.SetCurrentAgent(core.AgentCoordinator)
	}

	c.route(ctx, message, out)
}

// route asks the routing model to pick a specialist. The model is forced to
// call the transfer tool; a direct textual answer is never accepted.
func (c *Coordinator) route(ctx context.Context, message string, out chan<- string) {
	c.logger.Debug("coordinator.route.start")

	registered := c.RegisteredAgents()
	handoffTool := tool.NewHandoffTool(registered)

	contextJSON, _ := json.Marshal(c.session.ContextSnapshot())
	prompt := fmt.Sprintf(
		"User request: %s\n\nCurrent context: %s\n\nConversation history:\n%s",
		message, contextJSON, c.historySummary(),
	)

	req := model.Request{
		Instructions: c.routingInstructions(registered),
		Entries:      []core.Entry{core.NewUserTurn(prompt)},
		Tools: []model.ToolDefinition{{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        handoffTool.Name(),
				Description: handoffTool.Description(),
				Parameters:  handoffTool.Parameters(),
			},
		}},
		ToolChoice: model.ToolChoiceRequired,
	}

	respCh, errCh := c.client.Generate(ctx, req)
	var final model.Response
	for r := range respCh {
		if !r.Partial {
			final = r
		}
	}
	if err := <-errCh; err != nil {
		c.logger.Error("coordinator.route.error", "error", err.Error())
		emit(ctx, out, RoutingErrorMessage)
		return
	}

	for _, call := range final.ToolCalls {
		if call.Name != tool.HandoffToolName {
			continue
		}
		args, err := handoffTool.ParseArguments(call.Arguments)
		if err != nil {
			c.logger.Warn("coordinator.route.invalid_args", "error", err.Error())
			continue
		}
		target := core.AgentType(args.AgentType)
		c.logger.Info("coordinator.route.selected",
			"agent", args.AgentType,
			"reason", args.Reason,
		)

		a, ok := c.lookup(target)
		if !ok {
			emit(ctx, out, UnavailableMessage(target))
			return
		}

		c.session.SetCurrentAgent(target)
		c.metrics.RecordHandoff(string(core.AgentCoordinator), string(target))

		tc := &core.TurnContext{
			History:       c.session.History(),
			Summary:       args.ContextSummary,
			Reason:        args.Reason,
			PreviousAgent: core.AgentCoordinator,
			Session:       c.session,
		}
		c.dispatch(ctx, a, message, tc, out)
		c.processHandoffChain(ctx, out)
		return
	}

	emit(ctx, out, NotUnderstoodMessage)
}

// processHandoffChain consumes parked transfers until none remain or the
// chain limit is hit. Each hop is consumed exactly once before dispatching
// so a failing hop cannot replay.
func (c *Coordinator) processHandoffChain(ctx context.Context, out chan<- string) {
	count := 0
	for count < c.maxHandoffs {
		req, ok := c.session.TakePendingHandoff()
		if !ok {
			return
		}
		count++

		c.logger.Info("coordinator.chain.hop",
			"hop", count,
			"from", string(req.FromAgent),
			"to", string(req.ToAgent),
			"reason", req.Reason,
		)

		a, registered := c.lookup(req.ToAgent)
		if !registered {
			emit(ctx, out, "\n\n"+UnavailableMessage(req.ToAgent))
			return
		}

		c.session.SetCurrentAgent(req.ToAgent)
		c.metrics.RecordHandoff(string(req.FromAgent), string(req.ToAgent))

		tc := &core.TurnContext{
			History:       req.CarriedHistory,
			Summary:       req.ContextSummary,
			Reason:        req.Reason,
			PreviousAgent: req.FromAgent,
			Session:       c.session,
		}
		c.dispatch(ctx, a, req.UserMessage, tc, out)
	}

	c.logger.Warn("coordinator.chain.limit", "max_handoffs", c.maxHandoffs)
	c.metrics.RecordChainOverflow()
	c.session.ClearPendingHandoff()
	emit(ctx, out, ChainOverflowMessage)
}

// dispatch streams one agent turn to the caller and records the full reply
// in the session transcript.
func (c *Coordinator) dispatch(ctx context.Context, a *agent.Agent, message string, tc *core.TurnContext, out chan<- string) {
	var sb strings.Builder
	for frag := range a.Process(ctx, message, tc) {
		sb.WriteString(frag)
		select {
		case <-ctx.Done():
			return
		case out <- frag:
		}
	}
	if full := strings.TrimSpace(sb.String()); full != "" {
		c.session.Append(core.NewAssistantTurn(a.Type(), full))
	}
}

// routingInstructions builds the forced-routing system prompt from the
// registered agents unless an explicit instruction was configured.
func (c *Coordinator) routingInstructions(registered []core.AgentType) string {
	if c.routing != "" {
		return c.routing
	}
	var sb strings.Builder
	sb.WriteString("You are a smart coordinator for a system with multiple specialized agents.\n\n")
	sb.WriteString("Your ONLY job is to understand user intent and immediately hand off to the appropriate specialist.\n")
	sb.WriteString("DO NOT respond to the user directly. ALWAYS use the request_handoff function immediately.\n\n")
	sb.WriteString("AVAILABLE AGENTS:\n")
	c.mu.Lock()
	for _, at := range registered {
		desc := c.descriptions[at]
		fmt.Fprintf(&sb, "- %s: %s\n", strings.ToUpper(string(at)), desc)
	}
	c.mu.Unlock()
	sb.WriteString("\nIMPORTANT: Never respond to the user directly. Always use the request_handoff function immediately to transfer to the appropriate agent. The specialist will handle the actual response.")
	return sb.String()
}

// historySummary renders the transcript as plain lines for the routing model.
func (c *Coordinator) historySummary() string {
	history := c.session.History()
	if len(history) == 0 {
		return "No previous conversation history."
	}
	var lines []string
	for _, e := range history {
		switch v := e.(type) {
		case core.UserTurn:
			lines = append(lines, "User: "+v.Content)
		case core.AssistantTurn:
			lines = append(lines, fmt.Sprintf("%s: %s", v.Agent, v.Content))
		}
	}
	return strings.Join(lines, "\n")
}

func (c *Coordinator) lookup(at core.AgentType) (*agent.Agent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.agents[at]
	return a, ok
}

// Reset clears the conversation state but keeps agents registered.
func (c *Coordinator) Reset() {
	c.session.Reset()
	c.mu.Lock()
	for _, a := range c.agents {
		a.ResetHistory()
	}
	c.mu.Unlock()
	c.logger.Info("coordinator.reset")
}

// SwitchToCoordinator manually returns routing control to the coordinator
// without clearing the transcript.
func (c *Coordinator) SwitchToCoordinator() {
	c.session.SetCurrentAgent(core.AgentCoordinator)
	c.logger.Info("coordinator.switched")
}

// Summary describes the conversation state for inspection.
type Summary struct {
	CurrentAgent    core.AgentType `json:"current_agent"`
	HistoryLength   int            `json:"history_length"`
	AvailableAgents []string       `json:"available_agents"`
	RecentHistory   []core.Entry   `json:"recent_history"`
	Context         map[string]any `json:"context"`
}

// Summarize returns a snapshot of the conversation state.
func (c *Coordinator) Summarize() Summary {
	history := c.session.History()
	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	agents := make([]string, 0)
	for _, at := range c.RegisteredAgents() {
		agents = append(agents, string(at))
	}
	return Summary{
		CurrentAgent:    c.session.CurrentAgent(),
		HistoryLength:   len(history),
		AvailableAgents: agents,
		RecentHistory:   recent,
		Context:         c.session.ContextSnapshot(),
	}
}

func emit(ctx context.Context, out chan<- string, msg string) {
	select {
	case <-ctx.Done():
	case out <- msg:
	}
}
