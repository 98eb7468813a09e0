package scheduling_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/slotwise/internal/google"
	"github.com/teemow/slotwise/internal/schedule"
	"github.com/teemow/slotwise/internal/server"
)

// RegisterSchedulingTools registers all scheduling tools with the MCP server.
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerFindMeetingSlotsTool(s, sc)
	registerWeeklyBriefTool(s, sc)
	registerQueryFreeBusyTool(s, sc)
	return nil
}

// getEngine retrieves the scheduling engine for the account. A missing
// token surfaces as the auth guidance message, which handlers return as a
// tool error so the agent can relay it to the user.
func getEngine(account string, sc *server.ServerContext) (*schedule.Engine, error) {
	engine := sc.EngineForAccount(account)
	if engine == nil {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}
	return engine, nil
}
