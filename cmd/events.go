package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/agenda/internal/store"
)

func newEventsCmd() *cobra.Command {
	qf := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List calendar events",
		Long: `List calendar events for a date range as markdown or JSON.

Without flags the range is today. Authorization and backend failures are
reported inside the result rather than failing the command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := qf.options()
			if err != nil {
				return err
			}

			sc, err := newServerContext(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = sc.Shutdown() }()

			st, err := sc.Store()
			if err != nil {
				return fmt.Errorf("failed to open calendar store: %w", err)
			}

			envelope := st.GetEventsAndReminders(opts).EventsOnly()
			if qf.jsonOut {
				return printJSON(cmd, store.EventsResult{
					Events:      envelope.Events,
					EventsError: envelope.EventsError,
				})
			}
			cmd.Println(sc.Renderer().Agenda(envelope))
			return nil
		},
	}

	qf.addRangeFlags(cmd)
	cmd.Flags().BoolVar(&qf.allDayOnly, "all-day-only", false, "Only include all-day events")
	cmd.Flags().BoolVar(&qf.busyOnly, "busy-only", false, "Only include events that block time")
	qf.addJSONFlag(cmd)

	return cmd
}
