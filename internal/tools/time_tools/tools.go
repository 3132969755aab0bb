package time_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/timeutil"
	"github.com/teemow/agenda/internal/tools/common"
)

// RegisterTimeTools registers the timezone utility tools with the MCP server
func RegisterTimeTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Current time tool
	currentTimeTool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current date and time in a given timezone"),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone name (e.g., 'America/New_York'). Defaults to UTC."),
		),
	)

	s.AddTool(currentTimeTool, common.InstrumentedToolHandler("get_current_time", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCurrentTime(ctx, request)
		}))

	// Timezone conversion tool
	convertTool := mcp.NewTool("convert_timezone",
		mcp.WithDescription("Convert a datetime from one timezone to another"),
		mcp.WithString("datetime",
			mcp.Required(),
			mcp.Description("The datetime to convert (default format: 'YYYY-MM-DD HH:MM:SS')"),
		),
		mcp.WithString("from_timezone",
			mcp.Required(),
			mcp.Description("Source IANA timezone name"),
		),
		mcp.WithString("to_timezone",
			mcp.Required(),
			mcp.Description("Target IANA timezone name"),
		),
		mcp.WithString("format",
			mcp.Description("strftime format of the datetime argument (default: '%Y-%m-%d %H:%M:%S')"),
		),
	)

	s.AddTool(convertTool, common.InstrumentedToolHandler("convert_timezone", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleConvertTimezone(ctx, request)
		}))

	// Timezone catalog tool
	listTool := mcp.NewTool("list_timezones",
		mcp.WithDescription("List common IANA timezones grouped by region"),
	)

	s.AddTool(listTool, common.InstrumentedToolHandler("list_timezones", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTimezones(ctx, request)
		}))

	return nil
}

func handleCurrentTime(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timezone := common.StringArg(request.GetArguments(), "timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	current, err := timeutil.CurrentDateTime(timezone)
	if err != nil {
		return inputErrorResult(err)
	}
	return jsonResult(current)
}

func handleConvertTimezone(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	value := common.StringArg(args, "datetime")
	if value == "" {
		return mcp.NewToolResultError("datetime is required"), nil
	}
	fromZone := common.StringArg(args, "from_timezone")
	if fromZone == "" {
		return mcp.NewToolResultError("from_timezone is required"), nil
	}
	toZone := common.StringArg(args, "to_timezone")
	if toZone == "" {
		return mcp.NewToolResultError("to_timezone is required"), nil
	}
	format := common.StringArg(args, "format")

	conversion, err := timeutil.ConvertTimezone(value, fromZone, toZone, format)
	if err != nil {
		return inputErrorResult(err)
	}
	return jsonResult(conversion)
}

func handleListTimezones(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(timeutil.ListCommonTimezones())
}

// inputErrorResult encodes an invalid-input error as a JSON object with
// the error message and a valid_format hint, matching the result shape
// of the successful path.
func inputErrorResult(err error) (*mcp.CallToolResult, error) {
	var inputErr *timeutil.InputError
	if errors.As(err, &inputErr) {
		data, merr := json.Marshal(inputErr)
		if merr == nil {
			result := mcp.NewToolResultText(string(data))
			result.IsError = true
			return result, nil
		}
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
