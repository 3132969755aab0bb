package prompts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/store"
	"github.com/teemow/agenda/internal/timeutil"
)

// RegisterDailyAgendaPrompt registers the daily_agenda prompt with the
// MCP server
func RegisterDailyAgendaPrompt(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	prompt := mcp.NewPrompt("daily_agenda",
		mcp.WithPromptDescription("Create a prompt for showing the daily agenda"),
		mcp.WithArgument("date",
			mcp.ArgumentDescription("Date in YYYY-MM-DD format (defaults to today)"),
		),
	)

	s.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return handleDailyAgenda(ctx, request, sc)
	})

	return nil
}

func handleDailyAgenda(_ context.Context, request mcp.GetPromptRequest, sc *server.ServerContext) (*mcp.GetPromptResult, error) {
	st, err := sc.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar store: %w", err)
	}

	var opts store.QueryOptions
	dateStr := nowDate()
	if arg := request.Params.Arguments["date"]; arg != "" {
		date, err := timeutil.ParseDate(arg)
		if err != nil {
			return nil, err
		}
		opts.FromDate = date
		opts.ToDate = date
		dateStr = date.Format("2006-01-02")
	}

	envelope := st.GetEventsAndReminders(opts)
	text := dailyAgendaText(dateStr, envelope)

	return mcp.NewGetPromptResult(
		"Daily agenda for "+dateStr,
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func nowDate() string {
	return time.Now().Format("2006-01-02")
}

// dailyAgendaText renders the agenda prompt around the day's events and
// reminders.
func dailyAgendaText(dateStr string, envelope store.Envelope) string {
	var events strings.Builder
	for _, ev := range envelope.Events {
		timeStr := "All day"
		if ev.StartTime != nil {
			timeStr = *ev.StartTime
			if ev.EndTime != nil {
				timeStr += " - " + *ev.EndTime
			}
		}
		fmt.Fprintf(&events, "- %s (%s)\n", ev.Title, timeStr)
	}

	var reminders strings.Builder
	for _, r := range envelope.Reminders {
		due := "No due date"
		if r.DueDate != nil {
			due = *r.DueDate
		}
		status := "Incomplete"
		if r.Completed {
			status = "Completed"
		}
		fmt.Fprintf(&reminders, "- %s (%s, %s)\n", r.Title, due, status)
	}

	eventsStr := events.String()
	if eventsStr == "" {
		eventsStr = "No events scheduled for today."
	}
	remindersStr := reminders.String()
	if remindersStr == "" {
		remindersStr = "No reminders due today."
	}

	return fmt.Sprintf(`
Please help me understand my schedule for %s.

Events:
%s

Reminders:
%s

What should I focus on today? Any conflicts or tight schedules to be aware of?
`, dateStr, eventsStr, remindersStr)
}
