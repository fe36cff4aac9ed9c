package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	nodex "github.com/tanpawarit/insurance-callcenter-agent/agent/nodes"
	promptx "github.com/tanpawarit/insurance-callcenter-agent/agent/prompt"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

// Reply is the outcome of one caller turn.
type Reply struct {
	Text        string                 `json:"reply"`
	Intent      contractx.Intent       `json:"intent"`
	ToolResults []contractx.ToolResult `json:"tool_results,omitempty"`
}

type Orchestrator struct {
	sessions nodex.Sessions
	agent    contractx.Agent
	prompts  promptx.PromptSet

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(sessions nodex.Sessions, agent contractx.Agent) (*Orchestrator, error) {
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if agent == nil {
		return nil, errors.New("agent is required")
	}

	o := &Orchestrator{
		sessions: sessions,
		agent:    agent,
		prompts:  promptx.LoadPromptSet(),
		now:      time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (Reply, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Text:        out.Reply,
		Intent:      out.Intent,
		ToolResults: out.ToolResults,
	}, nil
}
