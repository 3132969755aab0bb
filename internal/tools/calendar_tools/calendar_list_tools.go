package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/tools/common"
)

// RegisterCalendarListTools registers the calendar listing tool with the
// MCP server
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := mcp.NewTool("list_calendars",
		mcp.WithDescription("List all available calendars"),
		mcp.WithBoolean("format_json",
			mcp.Description("Output in JSON format (default: false, outputs markdown)"),
		),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandler("list_calendars", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	st, err := sc.Store()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open calendar store: %v", err)), nil
	}

	calendars := st.GetCalendars()

	if common.BoolArg(request.GetArguments(), "format_json") {
		return jsonResult(calendars)
	}
	return mcp.NewToolResultText(sc.Renderer().CalendarList(calendars)), nil
}
