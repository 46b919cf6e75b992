// Package workflow runs ordered multi-agent pipelines on top of the
// capability registry. Each step's output becomes the next step's
// input, and every dispatch is resolved through the registry so that
// only registered agents receive work.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ucplabs/ucp/agent"
	"github.com/ucplabs/ucp/logging"
	"github.com/ucplabs/ucp/registry"
)

// StepResult records one participant's turn in a run.
type StepResult struct {
	AgentID    string        `json:"agent_id"`
	AgentName  string        `json:"agent_name"`
	Capability string        `json:"capability"`
	Input      string        `json:"input"`
	Output     string        `json:"output"`
	Duration   time.Duration `json:"duration"`
}

// Result is the outcome of a completed run.
type Result struct {
	RunID  string       `json:"run_id"`
	Output string       `json:"output"`
	Steps  []StepResult `json:"steps"`
}

// Sequential chains agents in order. Before each dispatch the runner
// resolves the participant's first advertised capability through the
// registry; an agent that is not registered (or registered under a
// different ID) is refused rather than silently invoked.
type Sequential struct {
	registry     registry.Registry
	participants []agent.Agent
	logger       *logging.Logger
}

// Config configures a sequential workflow.
type Config struct {
	// Registry resolves capability names to agent IDs. Required.
	Registry registry.Registry

	// Participants run in slice order. At least one is required.
	Participants []agent.Agent

	// Logger for per-step progress. Defaults to an info-level logger.
	Logger *logging.Logger
}

// NewSequential builds a sequential workflow over registered agents.
func NewSequential(cfg Config) (*Sequential, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("workflow: registry is required")
	}
	if len(cfg.Participants) == 0 {
		return nil, fmt.Errorf("workflow: at least one participant is required")
	}
	for _, p := range cfg.Participants {
		if len(p.Capabilities()) == 0 {
			return nil, fmt.Errorf("workflow: agent %s declares no capabilities", p.ID())
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.New().WithComponent("workflow")
	}

	return &Sequential{
		registry:     cfg.Registry,
		participants: cfg.Participants,
		logger:       logger,
	}, nil
}

// Run executes the pipeline, feeding input through every participant.
// The returned Result carries a fresh run ID and one StepResult per
// participant, in execution order.
func (s *Sequential) Run(ctx context.Context, input string) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}

	s.logger.Info("workflow started", map[string]interface{}{
		"run_id":       result.RunID,
		"participants": len(s.participants),
	})

	current := input
	for i, p := range s.participants {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("workflow: run %s canceled: %w", result.RunID, err)
		}

		capName := p.Capabilities()[0].Name
		resolved, err := s.registry.FindAgentForCapability(capName)
		if err != nil {
			return nil, fmt.Errorf("workflow: resolve %q for step %d: %w", capName, i+1, err)
		}
		if resolved != p.ID() {
			return nil, fmt.Errorf("workflow: capability %q resolves to agent %s, not participant %s",
				capName, resolved, p.ID())
		}

		s.logger.Info("dispatching step", map[string]interface{}{
			"run_id":     result.RunID,
			"step":       fmt.Sprintf("%d/%d", i+1, len(s.participants)),
			"agent":      p.ID(),
			"capability": capName,
		})

		start := time.Now()
		output, err := p.Run(ctx, current)
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("workflow: agent %s failed at step %d: %w", p.ID(), i+1, err)
		}

		result.Steps = append(result.Steps, StepResult{
			AgentID:    p.ID(),
			AgentName:  p.Name(),
			Capability: capName,
			Input:      current,
			Output:     output,
			Duration:   elapsed,
		})
		current = output
	}

	result.Output = current
	s.logger.Info("workflow completed", map[string]interface{}{"run_id": result.RunID})
	return result, nil
}

// Transcript renders the run as a readable step-by-step log.
func (r *Result) Transcript() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%d steps)\n", r.RunID, len(r.Steps))
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "\n[%d] %s (%s) via %q in %s\n", i+1,
			step.AgentName, step.AgentID, step.Capability, step.Duration.Round(time.Millisecond))
		fmt.Fprintf(&b, "%s\n", step.Output)
	}
	return b.String()
}
