package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAllCmd() *cobra.Command {
	qf := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "all",
		Short: "List events and reminders together",
		Long:  `List calendar events and reminders for a date range in one combined view.`,
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

			envelope := st.GetEventsAndReminders(opts)
			if qf.jsonOut {
				return printJSON(cmd, envelope)
			}
			cmd.Println(sc.Renderer().Agenda(envelope))
			return nil
		},
	}

	qf.addRangeFlags(cmd)
	cmd.Flags().BoolVar(&qf.includeCompleted, "include-completed", false, "Include completed reminders")
	cmd.Flags().BoolVar(&qf.allDayOnly, "all-day-only", false, "Only include all-day events")
	cmd.Flags().BoolVar(&qf.busyOnly, "busy-only", false, "Only include events that block time")
	qf.addJSONFlag(cmd)

	return cmd
}
