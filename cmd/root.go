package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the agenda application
var rootCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Shows calendar events and reminders from CalDAV or Google",
	Long: `agenda retrieves events and reminders from a calendar store (CalDAV or
Google Calendar/Tasks) and renders them as markdown or JSON.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// configPath overrides the default config file location for all commands.
var configPath string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "agenda version %s\n" .Version}}`)

	// If no subcommand is provided, show today's agenda by default. When
	// the binary is installed as agenda-mcp (the usual MCP client setup),
	// start the server instead.
	if len(os.Args) == 1 {
		if strings.HasPrefix(filepath.Base(os.Args[0]), "agenda-mcp") {
			os.Args = append(os.Args, "mcp")
		} else {
			os.Args = append(os.Args, "today")
		}
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/agenda/config.yaml)")

	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newRemindersCmd())
	rootCmd.AddCommand(newAllCmd())
	rootCmd.AddCommand(newCalendarsCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
