package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	sessionx "github.com/tanpawarit/insurance-callcenter-agent/agent/session"
)

type Sessions interface {
	Get(id string) (*sessionx.Conversation, error)
}

func LoadSession(in *GraphState, sessions Sessions) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	conv, err := sessions.Get(in.SessionID)
	if err != nil {
		return nil, err
	}
	in.Conversation = conv
	return in, nil
}
