// Package agentswarm provides a high-level façade over the coordinator,
// agents and model clients for building multi-agent conversational systems.
// Most applications interact with this package by:
//  1. Creating a Swarm via New() with a completion client
//  2. Registering specialist agents with routing descriptions
//  3. Sending user messages (Chat for streaming, ChatSync for a full reply)
//
// The façade delegates orchestration to coordinator.Coordinator while keeping
// setup concise. Defaults are safe for local development and testing;
// production deployments typically supply a structured logger and a metrics
// registry.
package agentswarm

import (
	"context"
	"strings"

	"github.com/pgazmuri/agentswarm/agent"
	"github.com/pgazmuri/agentswarm/coordinator"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/logging"
	"github.com/pgazmuri/agentswarm/metrics"
	"github.com/pgazmuri/agentswarm/model"
)

// Options configures the Swarm instance.
type Options struct {
	// MaxHandoffs bounds the number of agent-to-agent handoffs executed
	// within a single user turn. Zero uses the coordinator default.
	MaxHandoffs int

	// RoutingInstruction overrides the generated routing prompt.
	RoutingInstruction string

	// Session holds the shared conversation state. Defaults to a fresh
	// in-memory session.
	Session *core.Session

	// Logger receives structured events. Defaults to a no-op logger.
	Logger logging.Logger

	// Metrics records turn, handoff and tool counters. Nil disables
	// recording.
	Metrics *metrics.Metrics
}

// Swarm is the high-level façade aggregating the coordinator and its agents.
type Swarm struct {
	coord *coordinator.Coordinator
}

// New creates a Swarm routing through the given completion client.
func New(client model.CompletionClient, optFns ...func(o *Options)) *Swarm {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	coord := coordinator.New(client, func(o *coordinator.Options) {
		if opts.MaxHandoffs > 0 {
			o.MaxHandoffs = opts.MaxHandoffs
		}
		if opts.Logger != nil {
			o.Logger = opts.Logger
		}
		o.RoutingInstruction = opts.RoutingInstruction
		o.Metrics = opts.Metrics
		o.Session = opts.Session
	})
	return &Swarm{coord: coord}
}

// Register adds a specialist agent with the description the router uses to
// pick it.
func (s *Swarm) Register(a *agent.Agent, description string) {
	s.coord.Register(a, description)
}

// Coordinator exposes the underlying coordinator for advanced use.
func (s *Swarm) Coordinator() *coordinator.Coordinator { return s.coord }

// Chat handles one user turn and streams the reply as text fragments. The
// channel closes when the turn, including any handoff chain, completes.
func (s *Swarm) Chat(ctx context.Context, message string) <-chan string {
	return s.coord.ProcessMessage(ctx, message)
}

// ChatSync is a synchronous helper that drains the fragment stream and
// returns the assembled reply.
func (s *Swarm) ChatSync(ctx context.Context, message string) string {
	var b strings.Builder
	for fragment := range s.coord.ProcessMessage(ctx, message) {
		b.WriteString(fragment)
	}
	return strings.TrimSpace(b.String())
}

// Reset clears the shared conversation state and every agent's history.
func (s *Swarm) Reset() { s.coord.Reset() }

// Summarize reports the current routing state and recent history.
func (s *Swarm) Summarize() coordinator.Summary { return s.coord.Summarize() }
