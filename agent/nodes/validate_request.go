package orchestratornode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	sessionx "github.com/tanpawarit/insurance-callcenter-agent/agent/session"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply       string
	Intent      contractx.Intent
	ToolResults []contractx.ToolResult
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Conversation *sessionx.Conversation
	Intent       contractx.Intent
	ModelInput   string

	Response contractx.AgentResponse
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
