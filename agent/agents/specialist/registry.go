package specialist

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	llmx "github.com/tanpawarit/insurance-callcenter-agent/agent/llm"
	promptx "github.com/tanpawarit/insurance-callcenter-agent/agent/prompt"
	toolx "github.com/tanpawarit/insurance-callcenter-agent/agent/tool"
)

// New builds the call center agent backed by the configured OpenRouter model.
func New(ctx context.Context, cfg llmx.Config) (contractx.Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	modelCfg := cfg.OpenRouter()
	chatModel, err := modelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create call center model: %v", contractx.ErrModelInvoke, err)
	}

	return newCallCenterAgent(ctx, chatModel, toolx.Catalog(), prompts.Instructions, cfg.MaxToolRounds)
}
