package validator

import (
	"github.com/spf13/cobra"

	"github.com/bitrise-client/bitrise-client/settings"
)

type Validator func(cmd *cobra.Command, args []string) error

// Credentials fails the command early when the token or app slug is missing.
func Credentials(config *settings.Config) Validator {
	return func(_ *cobra.Command, _ []string) error {
		return config.Validate()
	}
}
