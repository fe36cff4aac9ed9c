package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Response.Message)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: agent returned empty message", contractx.ErrValidation)
	}
	return GraphOutput{
		Reply:       reply,
		Intent:      in.Intent,
		ToolResults: in.Response.ToolResults,
	}, nil
}
