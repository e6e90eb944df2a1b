package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goby-auth",
	Short: "Goby password reset pages",
	Long: `goby-auth serves the forgot-password and reset-password pages.

Available commands:
  serve      Start the HTTP server (default)
  routes     Print the registered routes
  version    Print the version number

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
