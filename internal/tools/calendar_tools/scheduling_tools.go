package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/store"
	"github.com/teemow/agenda/internal/tools/common"
)

// RegisterSchedulingTools registers the today-summary and search tools
// with the MCP server
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Today summary tool
	todaySummaryTool := mcp.NewTool("get_today_summary",
		mcp.WithDescription("Get a summary of today's events and reminders"),
		mcp.WithBoolean("format_json",
			mcp.Description("Output in JSON format (default: false, outputs markdown)"),
		),
	)

	s.AddTool(todaySummaryTool, common.InstrumentedToolHandler("get_today_summary", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleTodaySummary(ctx, request, sc)
		}))

	// Search tool
	searchTool := mcp.NewTool("search",
		mcp.WithDescription("Search events and reminders within a date range based on a search term"),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("The term to search for (case-insensitive) in titles, notes, and locations"),
		),
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
		mcp.WithBoolean("format_json",
			mcp.Description("Output in JSON format (default: false, outputs markdown)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandler("search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearch(ctx, request, sc)
		}))

	return nil
}

func handleTodaySummary(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	st, err := sc.Store()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open calendar store: %v", err)), nil
	}

	envelope := st.GetEventsAndReminders(store.QueryOptions{})

	if common.BoolArg(request.GetArguments(), "format_json") {
		return jsonResult(envelope)
	}
	return mcp.NewToolResultText(sc.Renderer().Agenda(envelope)), nil
}

// searchResult is the JSON shape of a search response: the filtered
// lists only, without the error fields.
type searchResult struct {
	Events    []store.Event    `json:"events"`
	Reminders []store.Reminder `json:"reminders"`
}

func handleSearch(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	term := common.StringArg(args, "search_term")

	opts, err := common.QueryOptionsFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st, err := sc.Store()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open calendar store: %v", err)), nil
	}

	envelope := st.GetEventsAndReminders(opts)

	filtered, err := store.Search(envelope, term)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if common.BoolArg(args, "format_json") {
		return jsonResult(searchResult{Events: filtered.Events, Reminders: filtered.Reminders})
	}
	return mcp.NewToolResultText(sc.Renderer().Agenda(filtered)), nil
}
