package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/agenda/internal/config"
	"github.com/teemow/agenda/internal/logging"
	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/store"
	"github.com/teemow/agenda/internal/timeutil"
)

// queryFlags holds the flags shared by the commands that read the store.
type queryFlags struct {
	from             string
	to               string
	calendars        []string
	jsonOut          bool
	includeCompleted bool
	allDayOnly       bool
	busyOnly         bool
}

func (qf *queryFlags) addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&qf.from, "from", "", "Start date in YYYY-MM-DD format (default: today)")
	cmd.Flags().StringVar(&qf.to, "to", "", "End date in YYYY-MM-DD format (default: same as --from)")
	cmd.Flags().StringSliceVarP(&qf.calendars, "calendars", "c", nil, "Restrict to calendars with these titles (repeatable)")
}

func (qf *queryFlags) addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&qf.jsonOut, "json", false, "Output JSON instead of markdown")
}

// options validates the date flags and builds the query. Malformed dates
// fail the command before any store work happens.
func (qf *queryFlags) options() (store.QueryOptions, error) {
	opts := store.QueryOptions{
		Calendars:        qf.calendars,
		IncludeCompleted: qf.includeCompleted,
		AllDayOnly:       qf.allDayOnly,
		BusyOnly:         qf.busyOnly,
	}

	if qf.from != "" {
		t, err := timeutil.ParseDate(qf.from)
		if err != nil {
			return store.QueryOptions{}, fmt.Errorf("invalid --from: %v", err)
		}
		opts.FromDate = t
	}
	if qf.to != "" {
		t, err := timeutil.ParseDate(qf.to)
		if err != nil {
			return store.QueryOptions{}, fmt.Errorf("invalid --to: %v", err)
		}
		opts.ToDate = t
	}

	return opts, nil
}

// newServerContext loads the configuration and builds the shared server
// context used by both the CLI commands and the MCP server.
func newServerContext(ctx context.Context) (*server.ServerContext, error) {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, err
	}
	log := logging.Setup(cfg.LogLevel)
	return server.NewServerContext(ctx, cfg, log)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
