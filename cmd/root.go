package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the slotwise application
var rootCmd = &cobra.Command{
	Use:   "slotwise",
	Short: "Find meeting slots and weekly scheduling briefs across calendars",
	Long: `slotwise searches your calendars for bookable meeting slots that fit the
working hours of every participant timezone, and summarizes a calendar
week as an analytic brief with conflict detection.

It can run as:
  - A standalone CLI tool (slots, brief)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "slotwise version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSlotsCmd())
	rootCmd.AddCommand(newBriefCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
