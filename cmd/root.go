package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bitrise-client/bitrise-client/cmd/build"
	"github.com/bitrise-client/bitrise-client/cmd/validator"
	"github.com/bitrise-client/bitrise-client/settings"
)

var rootOptions *settings.Config

// Execute adds all child commands to rootCmd and
// sets flags appropriately. This function is called
// by main.main(). It only needs to happen once to
// the rootCmd.
func Execute() error {
	command := MakeCommands()
	return command.Execute()
}

// MakeCommands creates the top level commands
func MakeCommands() *cobra.Command {
	rootOptions = &settings.Config{
		Host: settings.DefaultHost,
	}
	loadErr := rootOptions.Load()

	rootCmd := &cobra.Command{
		Use:   "bitrise-client",
		Short: "Start and abort Bitrise builds from the command line.",
		Long: `Start and abort Bitrise builds for the Git branch you are working on.

Credentials are read from ~/.bitrise-client/cli.yml, the BITRISE_CLIENT_TOKEN and
BITRISE_CLIENT_APP_SLUG environment variables, or the --token and --app-slug flags.
Run "bitrise-client configure" to store them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// cobra prints to stderr unless told otherwise
	rootCmd.SetOut(os.Stdout)

	validateCredentials := validator.Credentials(rootOptions)
	preRunE := func(cmd *cobra.Command, args []string) error {
		if loadErr != nil {
			return loadErr
		}
		return validateCredentials(cmd, args)
	}

	rootCmd.AddCommand(build.NewBuildCommand(rootOptions, preRunE))
	rootCmd.AddCommand(newConfigureCommand(rootOptions, interactiveUI{}))
	rootCmd.AddCommand(newVersionCommand(rootOptions))

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&rootOptions.Debug, "debug", false, "Enable debug logging.")
	flags.StringVar(&rootOptions.Token, "token", rootOptions.Token, "your Bitrise personal access token")
	flags.StringVar(&rootOptions.AppSlug, "app-slug", rootOptions.AppSlug, "slug of the Bitrise app to build")
	flags.StringVar(&rootOptions.Host, "host", rootOptions.Host, "URL of the Bitrise API")

	hidden := []string{"debug", "host"}
	for _, f := range hidden {
		if err := flags.MarkHidden(f); err != nil {
			panic(err)
		}
	}

	return rootCmd
}
