package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	toolx "github.com/tanpawarit/insurance-callcenter-agent/agent/tool"
)

// RunAgent runs one model turn against the conversation's tools and records
// the transcript once the turn succeeds.
func RunAgent(ctx context.Context, in *GraphState, agent contractx.Agent) (*GraphState, error) {
	if in == nil || in.Conversation == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	conv := in.Conversation
	end := conv.BeginTurn()
	defer end()

	resp, err := agent.Run(ctx, contractx.AgentRequest{
		SessionID:   in.SessionID,
		UserMessage: in.ModelInput,
		Intent:      in.Intent,
		History:     conv.History(),
		Now:         in.Now,
	}, toolx.NewExecutor(conv.Tools))
	if err != nil {
		return nil, err
	}

	conv.AppendTurn(resp.Transcript)
	in.Response = resp

	log.Debug().
		Str("session_id", in.SessionID).
		Str("intent", string(in.Intent)).
		Int("tool_calls", len(resp.ToolResults)).
		Msg("agent turn completed")
	return in, nil
}
