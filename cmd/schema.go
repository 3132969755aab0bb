package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/agenda/internal/store"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of query results",
		Long: `Print the JSON schema describing the combined events-and-reminders
result shape. The same schema is served by the MCP server as the
schema://result resource.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(store.JSONSchema())
			return nil
		},
	}
}
