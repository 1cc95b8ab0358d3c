package main

import (
	"github.com/spf13/cobra"

	"github.com/noxpardalis/gitch/internal/logging"
)

// createRootCommand builds the gitch CLI: global logging flags plus the
// check and extract subcommands.
func createRootCommand() *cobra.Command {
	var (
		verbosity int
		quiet     bool
		logFile   string
	)

	rootCmd := &cobra.Command{
		Use:           "gitch",
		Short:         "Check git commit messages against a compliance rule set",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Setup(logging.Options{
				Verbosity: verbosity,
				Quiet:     quiet,
				FilePath:  logFile,
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"only log errors")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also append JSON logs to this file")

	rootCmd.AddCommand(
		createCheckCommand(),
		createExtractCommand(),
	)

	return rootCmd
}
