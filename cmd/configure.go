package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bitrise-client/bitrise-client/errs"
	"github.com/bitrise-client/bitrise-client/prompt"
	"github.com/bitrise-client/bitrise-client/settings"
	"github.com/bitrise-client/bitrise-client/slug"
)

// The `userInterface` is created here to allow us to pass a mock user
// interface for testing, since the interactive prompts need a terminal.
type userInterface interface {
	readSecretStringFromUser(message string) (string, error)
	readStringFromUser(message string, defaultValue string) (string, error)
	askUserToConfirm(message string) bool
}

type interactiveUI struct{}

func (interactiveUI) readSecretStringFromUser(message string) (string, error) {
	return prompt.ReadSecretStringFromUser(message)
}

func (interactiveUI) readStringFromUser(message string, defaultValue string) (string, error) {
	return prompt.ReadStringFromUser(message, defaultValue)
}

func (interactiveUI) askUserToConfirm(message string) bool {
	return prompt.AskUserToConfirm(message)
}

type configureOptions struct {
	cfg     *settings.Config
	tty     userInterface
	token   string
	appSlug string
}

func newConfigureCommand(config *settings.Config, ui userInterface) *cobra.Command {
	opts := configureOptions{
		cfg: config,
		tty: ui,
	}

	configureCommand := &cobra.Command{
		Use:   "configure",
		Short: "Configure the tool with your Bitrise credentials",
		Long: `Configure the tool with your Bitrise credentials.

Values passed with --api-token and --default-app-slug are saved without prompting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return configure(cmd, opts)
		},
		Args: cobra.NoArgs,
	}

	configureCommand.Flags().StringVar(&opts.token, "api-token", "", "Bitrise personal access token to save")
	configureCommand.Flags().StringVar(&opts.appSlug, "default-app-slug", "", "App slug to save")

	return configureCommand
}

func shouldAskForToken(token string, ui userInterface) bool {
	if token == "" {
		return true
	}

	return ui.askUserToConfirm("A Bitrise token is already set. Do you want to change it")
}

func configure(cmd *cobra.Command, opts configureOptions) error {
	token := opts.token
	if token == "" && shouldAskForToken(opts.cfg.Token, opts.tty) {
		var err error
		token, err = opts.tty.readSecretStringFromUser("Bitrise API Token")
		if err != nil {
			return errors.Wrap(err, "Error reading token")
		}
	}
	if token != "" {
		opts.cfg.Token = token
		cmd.Println("API token has been set.")
	}

	appSlug := opts.appSlug
	if appSlug == "" {
		var err error
		appSlug, err = opts.tty.readStringFromUser("Default app slug", opts.cfg.AppSlug)
		if err != nil {
			return errors.Wrap(err, "Error reading app slug")
		}
	}
	app, err := slug.ParseApp(appSlug)
	if err != nil {
		return errs.Configuration(err)
	}
	opts.cfg.AppSlug = string(app)
	cmd.Println("Default app slug has been set.")

	if err := opts.cfg.WriteToDisk(); err != nil {
		return errors.Wrap(err, "Failed to save config file")
	}

	cmd.Printf("Configuration has been saved to %s.\n", opts.cfg.FileUsed)
	return nil
}
