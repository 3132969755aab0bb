package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/tools/common"
)

// RegisterEventTools registers the event and reminder query tools with the
// MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Get events tool
	getEventsTool := mcp.NewTool("get_events",
		mcp.WithDescription("Get calendar events for the specified date range"),
		mcp.WithString("from_date",
			mcp.Description("Start date in YYYY-MM-DD format (defaults to today)"),
		),
		mcp.WithString("to_date",
			mcp.Description("End date in YYYY-MM-DD format (defaults to from_date)"),
		),
		mcp.WithArray("calendars",
			mcp.Description("List of calendar names to include (defaults to all)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("all_day_only",
			mcp.Description("Only include all-day events"),
		),
		mcp.WithBoolean("busy_only",
			mcp.Description("Only include busy events"),
		),
		mcp.WithBoolean("format_json",
			mcp.Description("Output in JSON format (default: false, outputs markdown)"),
		),
	)

	s.AddTool(getEventsTool, common.InstrumentedToolHandlerWithStore("get_events", "events", "query", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvents(ctx, request, sc)
		}))

	// Get reminders tool
	getRemindersTool := mcp.NewTool("get_reminders",
		mcp.WithDescription("Get reminders for the specified date range"),
		mcp.WithString("from_date",
			mcp.Description("Start date in YYYY-MM-DD format (defaults to today)"),
		),
		mcp.WithString("to_date",
			mcp.Description("End date in YYYY-MM-DD format (defaults to from_date)"),
		),
		mcp.WithArray("calendars",
			mcp.Description("List of calendar names to include (defaults to all)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed reminders"),
		),
		mcp.WithBoolean("format_json",
			mcp.Description("Output in JSON format (default: false, outputs markdown)"),
		),
	)

	s.AddTool(getRemindersTool, common.InstrumentedToolHandlerWithStore("get_reminders", "reminders", "query", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetReminders(ctx, request, sc)
		}))

	return nil
}

func handleGetEvents(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	opts, err := common.QueryOptionsFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st, err := sc.Store()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open calendar store: %v", err)), nil
	}

	envelope := st.GetEventsAndReminders(opts).EventsOnly()

	if common.BoolArg(args, "format_json") {
		// JSON output carries the bare events list.
		return jsonResult(envelope.Events)
	}
	return mcp.NewToolResultText(sc.Renderer().Agenda(envelope)), nil
}

func handleGetReminders(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	opts, err := common.QueryOptionsFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st, err := sc.Store()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open calendar store: %v", err)), nil
	}

	envelope := st.GetEventsAndReminders(opts).RemindersOnly()

	if common.BoolArg(args, "format_json") {
		// JSON output carries the bare reminders list.
		return jsonResult(envelope.Reminders)
	}
	return mcp.NewToolResultText(sc.Renderer().Agenda(envelope)), nil
}
