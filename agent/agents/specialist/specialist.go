package specialist

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	toolx "github.com/tanpawarit/insurance-callcenter-agent/agent/tool"
)

const defaultMaxToolRounds = 5

// callCenterAgent answers one caller turn, letting the model call tools until
// it produces a spoken reply.
type callCenterAgent struct {
	runner       compose.Runnable[[]*schema.Message, *schema.Message]
	systemPrompt string
	allowedTools map[string]struct{}
	maxRounds    int
}

var _ contractx.Agent = (*callCenterAgent)(nil)

func newCallCenterAgent(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	tools []*schema.ToolInfo,
	systemPrompt string,
	maxRounds int,
) (*callCenterAgent, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: call center instructions", contractx.ErrPromptMissing)
	}
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind call center tools: %v", contractx.ErrModelInvoke, err)
	}
	runner, err := compileToolCallingGraph(ctx, toolModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool calling graph: %v", contractx.ErrModelInvoke, err)
	}

	allowedTools := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowedTools[t.Name] = struct{}{}
	}

	return &callCenterAgent{
		runner:       runner,
		systemPrompt: systemPrompt,
		allowedTools: allowedTools,
		maxRounds:    maxRounds,
	}, nil
}

func (a *callCenterAgent) Run(ctx context.Context, req contractx.AgentRequest, exec contractx.ToolExecutor) (contractx.AgentResponse, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return contractx.AgentResponse{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}
	if exec == nil {
		exec = toolx.DefaultExecutor()
	}

	userMsg := schema.UserMessage(req.UserMessage)
	messages := make([]*schema.Message, 0, len(req.History)+2)
	messages = append(messages, schema.SystemMessage(a.systemPrompt))
	messages = append(messages, req.History...)
	messages = append(messages, userMsg)

	transcript := []*schema.Message{userMsg}
	var results []contractx.ToolResult

	for round := 0; round < a.maxRounds; round++ {
		msg, err := a.runner.Invoke(ctx, messages)
		if err != nil {
			return contractx.AgentResponse{}, fmt.Errorf("%w: call center invoke: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return contractx.AgentResponse{}, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}

		toolRequests, err := toToolRequests(msg.ToolCalls)
		if err != nil {
			return contractx.AgentResponse{}, err
		}

		if len(toolRequests) == 0 {
			content := strings.TrimSpace(msg.Content)
			if content == "" {
				return contractx.AgentResponse{}, fmt.Errorf("%w: model reply is empty", contractx.ErrSchemaViolation)
			}
			reply := schema.AssistantMessage(content, nil)
			return contractx.AgentResponse{
				Message:     content,
				Transcript:  append(transcript, reply),
				ToolResults: results,
			}, nil
		}

		messages = append(messages, msg)
		transcript = append(transcript, msg)

		for i, tr := range toolRequests {
			res, err := a.execute(ctx, exec, tr)
			if err != nil {
				return contractx.AgentResponse{}, err
			}
			results = append(results, res)

			toolMsg := schema.ToolMessage(toolx.ResultText(res), msg.ToolCalls[i].ID)
			messages = append(messages, toolMsg)
			transcript = append(transcript, toolMsg)
		}
	}

	return contractx.AgentResponse{}, fmt.Errorf("%w: no reply after %d tool rounds", contractx.ErrSchemaViolation, a.maxRounds)
}

func (a *callCenterAgent) execute(ctx context.Context, exec contractx.ToolExecutor, tr contractx.ToolRequest) (contractx.ToolResult, error) {
	if _, ok := a.allowedTools[tr.Tool]; !ok {
		log.Warn().Str("tool", tr.Tool).Msg("model requested an unknown tool")
		return contractx.ToolResult{
			Tool:  tr.Tool,
			Error: fmt.Sprintf("tool=%s is not available", tr.Tool),
		}, nil
	}

	res, err := exec(ctx, tr.Tool, tr.Args)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("tool=%s: %w", tr.Tool, err)
	}
	if res.Tool == "" {
		res.Tool = tr.Tool
	}
	return res, nil
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args, err := toolx.DecodeArgs(call.Function.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
