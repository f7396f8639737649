package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var flags gameFlags

	cmd := &cobra.Command{
		Use:          "blanks",
		Short:        "Blanks: fill in the redacted characters of a solved problem",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return playGame(cmd, flags, debug, false, "pretty", 0)
		},
	}

	flags.register(cmd)
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .blanks/logs/blanks.log")

	cmd.AddCommand(
		playCmd(&debug),
		initCmd(),
		problemsCmd(),
		historyCmd(),
		versionCmd(),
	)
	return cmd
}
