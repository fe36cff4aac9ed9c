package contract

import (
	"time"

	"github.com/cloudwego/eino/schema"
)

type Intent string

const (
	IntentGeneral     Intent = "general"
	IntentLookup      Intent = "policy.lookup"
	IntentClaimStatus Intent = "claim.status"
	IntentNewClaim    Intent = "claim.new"
)

type AgentRequest struct {
	SessionID   string            `json:"session_id"`
	UserMessage string            `json:"user_message"`
	Intent      Intent            `json:"intent"`
	History     []*schema.Message `json:"history,omitempty"`
	Now         time.Time         `json:"now"`
}

type AgentResponse struct {
	Message string `json:"message"`
	// Transcript holds the messages produced during the turn, starting with
	// the user message, ready to be appended to the conversation history.
	Transcript  []*schema.Message `json:"transcript,omitempty"`
	ToolResults []ToolResult      `json:"tool_results,omitempty"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
