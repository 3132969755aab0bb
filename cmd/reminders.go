package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/agenda/internal/store"
)

func newRemindersCmd() *cobra.Command {
	qf := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List reminders",
		Long: `List reminders due in a date range as markdown or JSON.

Completed reminders are hidden unless --include-completed is set.`,
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

			envelope := st.GetEventsAndReminders(opts).RemindersOnly()
			if qf.jsonOut {
				return printJSON(cmd, store.RemindersResult{
					Reminders:      envelope.Reminders,
					RemindersError: envelope.RemindersError,
				})
			}
			cmd.Println(sc.Renderer().Agenda(envelope))
			return nil
		},
	}

	qf.addRangeFlags(cmd)
	cmd.Flags().BoolVar(&qf.includeCompleted, "include-completed", false, "Include completed reminders")
	qf.addJSONFlag(cmd)

	return cmd
}
