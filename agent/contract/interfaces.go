package contract

import "context"

// ToolExecutor runs one named tool with decoded arguments. Soft failures are
// reported in ToolResult.Error; the returned error is reserved for failures
// the caller cannot recover from (store outages, constraint violations).
type ToolExecutor func(ctx context.Context, tool string, args map[string]any) (ToolResult, error)

type Agent interface {
	Run(ctx context.Context, req AgentRequest, exec ToolExecutor) (AgentResponse, error)
}
