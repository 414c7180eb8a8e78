package cmd

import "github.com/spf13/cobra"

// annotationSkipWiring marks commands that must run without a valid configuration.
const annotationSkipWiring = "astropost/skip-wiring"

func Execute() error {
	return newRootCmd().Execute()
}

type rootFlags struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "astropost",
		Short:         "Generate and publish the daily horoscope posts",
		Long:          "astropost generates one post per zodiac sign (text, caption and composed image), publishes them as a carousel or one by one, and can run the cycle daily at a fixed time.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipWiring(cmd) {
				return nil
			}

			wired, err := wireApp(cmd.Context(), wireOptions{
				ConfigFile: flags.configFile,
				LogLevel:   flags.logLevel,
				LogOutput:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			*a = *wired
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file (default: ./config.toml or ~/.astropost/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log.level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(a),
		newLogoutCmd(a),
		newStatusCmd(a),
		newGenerateCmd(a),
		newPublishCmd(a),
		newAutomateCmd(a),
		newHistoryCmd(a),
	)

	return rootCmd
}

func skipWiring(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationSkipWiring] == "true" {
		return true
	}
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}
