package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/agenda/internal/store"
)

func newSearchCmd() *cobra.Command {
	qf := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search events and reminders",
		Long: `Search events and reminders in a date range for a term.

Events match on title, notes and location; reminders match on title and
notes. Matching is case-insensitive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")

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
			result, err := store.Search(envelope, term)
			if err != nil {
				return err
			}

			if qf.jsonOut {
				return printJSON(cmd, struct {
					Events    []store.Event    `json:"events"`
					Reminders []store.Reminder `json:"reminders"`
				}{Events: result.Events, Reminders: result.Reminders})
			}
			cmd.Println(sc.Renderer().Agenda(result))
			return nil
		},
	}

	qf.addRangeFlags(cmd)
	cmd.Flags().BoolVar(&qf.includeCompleted, "include-completed", false, "Include completed reminders")
	qf.addJSONFlag(cmd)

	return cmd
}
