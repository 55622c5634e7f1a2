package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailsense application
var rootCmd = &cobra.Command{
	Use:   "mailsense",
	Short: "AI-assisted mail triage: ranking, drafting, and unsubscribing",
	Long: `mailsense ranks unread Gmail messages by urgency, composes and revises
drafts from free-text prompts, and unsubscribes from mailing lists.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
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
	rootCmd.SetVersionTemplate(`{{printf "mailsense version %s\n" .Version}}`)

	// If no subcommand is provided, run the rank command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "rank")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mailsense version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
