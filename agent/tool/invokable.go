package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
)

type boundTool struct {
	def  Definition
	exec contractx.ToolExecutor
}

var _ einotool.InvokableTool = (*boundTool)(nil)

// InvokableTools exposes every tool bound to session as an eino tool taking
// JSON arguments.
func InvokableTools(session *Session) []einotool.InvokableTool {
	exec := NewExecutor(session)
	defs := registry()
	out := make([]einotool.InvokableTool, 0, len(toolOrder))
	for _, name := range toolOrder {
		out = append(out, &boundTool{def: defs[name], exec: exec})
	}
	return out
}

func (t *boundTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return t.def.Info, nil
}

func (t *boundTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...einotool.Option) (string, error) {
	args, err := DecodeArgs(argumentsInJSON)
	if err != nil {
		return "", fmt.Errorf("%w: tool=%s: %v", contractx.ErrValidation, t.def.Info.Name, err)
	}

	res, err := t.exec(ctx, t.def.Info.Name, args)
	if err != nil {
		return "", err
	}
	return ResultText(res), nil
}

// DecodeArgs parses a JSON object of tool arguments. Blank input means no
// arguments.
func DecodeArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return args, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	return args, nil
}

// ResultText renders a tool result as the text handed back to the model.
func ResultText(res contractx.ToolResult) string {
	if res.Error != "" {
		return "Error: " + res.Error
	}
	if s, ok := res.Result.(string); ok {
		return s
	}
	return fmt.Sprint(res.Result)
}
