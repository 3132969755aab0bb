package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/agenda/internal/store"
)

func newTodayCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's agenda",
		Long:  `Show today's calendar events and incomplete reminders in one combined view.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := newServerContext(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = sc.Shutdown() }()

			st, err := sc.Store()
			if err != nil {
				return fmt.Errorf("failed to open calendar store: %w", err)
			}

			envelope := st.GetEventsAndReminders(store.QueryOptions{})
			if jsonOut {
				return printJSON(cmd, envelope)
			}
			cmd.Println(sc.Renderer().Agenda(envelope))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON instead of markdown")

	return cmd
}
