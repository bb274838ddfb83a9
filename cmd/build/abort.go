package build

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	buildapi "github.com/bitrise-client/bitrise-client/api/build"
	"github.com/bitrise-client/bitrise-client/cmd/validator"
	"github.com/bitrise-client/bitrise-client/errs"
)

func newAbortCommand(ops *buildOpts, preRunE validator.Validator) *cobra.Command {
	var options buildapi.AbortBuildOptions

	cmd := &cobra.Command{
		Use:   "abort [<build-slug>] [--reason <text>] [--with-success] [--skip-notifications]",
		Short: "Abort a build that has not finished yet.",
		Long: `Abort a build that has not finished yet.

When no build slug is given you will be asked to pick one of the app's
unfinished builds.

Examples:
  bitrise-client build abort
  bitrise-client build abort 0f9a6c3e2b1d4a57 --reason "superseded"`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			var buildSlug string
			if len(args) == 1 {
				buildSlug = args[0]
			} else {
				var builds []buildapi.Build
				err := ops.withSpinner("Fetching unfinished builds...", func() (err error) {
					builds, err = ops.buildClient.ListUnfinishedBuilds()
					return err
				})
				if err != nil {
					return pkgerrors.Wrap(err, "Failed to fetch unfinished builds")
				}
				if len(builds) == 0 {
					cmd.Println("No unfinished builds found.")
					return nil
				}

				labels := make([]string, 0, len(builds))
				slugs := make(map[string]string, len(builds))
				for _, b := range builds {
					labels = append(labels, b.Label())
					slugs[b.Label()] = b.Slug
				}

				choice, err := ops.reader.SelectFromList("Select a build to abort", labels)
				if errors.Is(err, errs.ErrCancelled) {
					cmd.Println("No build selected.")
					return nil
				}
				if err != nil {
					return err
				}
				buildSlug = slugs[choice]
			}

			err := ops.withSpinner("Aborting build...", func() error {
				return ops.buildClient.AbortBuild(buildSlug, options)
			})
			if err != nil {
				return pkgerrors.Wrapf(err, "Failed to abort build %s", buildSlug)
			}

			cmd.Printf("Build %s aborted.\n", buildSlug)
			return nil
		},
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().StringVar(&options.Reason, "reason", "", "Reason shown on the aborted build")
	cmd.Flags().BoolVar(&options.WithSuccess, "with-success", false, "Mark the aborted build as successful")
	cmd.Flags().BoolVar(&options.SkipNotifications, "skip-notifications", false, "Do not send build notifications")

	return cmd
}
