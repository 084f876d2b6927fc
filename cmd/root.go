package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "screener <csv>",
		Short: "Screen hackathon applicants for public GitHub activity",
		Long: `A CLI tool that reads an applicant export (CSV), resolves each
applicant's GitHub identity, and reports whether the profile shows recent
open-source activity. The report is written to stdout as JSON by default.`,
		Args: csvArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd, args, opts)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// `screener <csv>` and `screener screen <csv>` work identically
	addScreenFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdScreen(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())
	rootCmd.AddCommand(NewCmdRateLimit())

	return rootCmd
}
