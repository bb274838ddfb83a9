package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bitrise-client/bitrise-client/logger"
	"github.com/bitrise-client/bitrise-client/settings"
	"github.com/bitrise-client/bitrise-client/version"
)

type versionOptions struct {
	cfg *settings.Config
	log *logger.Logger
}

func newVersionCommand(config *settings.Config) *cobra.Command {
	opts := versionOptions{
		cfg: config,
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		PreRun: func(cmd *cobra.Command, _ []string) {
			opts.log = logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.cfg.Debug)
		},
		Run: func(_ *cobra.Command, _ []string) {
			opts.log.Infoln(version.String())
			opts.log.Debug("user agent: %s", version.UserAgent())
		},
		Args: cobra.NoArgs,
	}
}
