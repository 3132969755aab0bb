package main

import (
	"github.com/joho/godotenv"

	"github.com/teemow/agenda/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	// Load .env if present; environment overrides stay optional
	_ = godotenv.Load()

	// Set the version from build-time variable
	cmd.SetVersion(version)

	// Execute the root command
	cmd.Execute()
}
