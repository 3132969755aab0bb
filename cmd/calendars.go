package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCalendarsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List event and reminder calendars",
		Long:  `List every calendar of both domains with its title, color and type.`,
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

			calendars := st.GetCalendars()
			if jsonOut {
				return printJSON(cmd, calendars)
			}
			cmd.Println(sc.Renderer().CalendarList(calendars))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON instead of markdown")

	return cmd
}
