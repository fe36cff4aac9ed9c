package specialist

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// compileToolCallingGraph wires a single model step: the conversation so far
// in, the next assistant message (content or tool calls) out.
func compileToolCallingGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[[]*schema.Message, *schema.Message], error) {
	graph := compose.NewGraph[[]*schema.Message, *schema.Message]()
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add tool calling model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "model"); err != nil {
		return nil, fmt.Errorf("add tool calling edge start->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add tool calling edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("callcenter.tool_calling_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile tool calling graph: %w", err)
	}
	return runner, nil
}
