package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/launchforge/launchforge/cmd/cli/commands"
)

func main() {
	// .env is optional for the CLI; flags and env vars take precedence
	_ = godotenv.Load()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
