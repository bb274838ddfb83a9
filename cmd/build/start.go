package build

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	buildapi "github.com/bitrise-client/bitrise-client/api/build"
	"github.com/bitrise-client/bitrise-client/cmd/validator"
	"github.com/bitrise-client/bitrise-client/errs"
)

func newStartCommand(ops *buildOpts, preRunE validator.Validator) *cobra.Command {
	var workflowID string
	var branch string
	var dir string

	cmd := &cobra.Command{
		Use:   "start [--workflow <workflow-id>] [--branch <branch>] [--dir <path>]",
		Short: "Start a build of the current Git branch.",
		Long: `Start a build of the current Git branch.

The branch is read from the working copy in --dir unless --branch is given.
When --workflow is omitted you will be asked to pick one of the app's workflows.

Examples:
  # Pick a workflow interactively:
  bitrise-client build start

  # Non-interactive:
  bitrise-client build start --workflow primary --branch feature/login`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			if branch == "" {
				current, ok := ops.branches.CurrentBranch(dir)
				if !ok {
					return fmt.Errorf("Unable to determine current Git branch in %q", dir)
				}
				branch = current
			}

			if workflowID == "" {
				var workflows []string
				err := ops.withSpinner("Fetching workflows...", func() (err error) {
					workflows, err = ops.buildClient.ListWorkflows()
					return err
				})
				if err != nil {
					return pkgerrors.Wrap(err, "Failed to fetch workflows")
				}
				if len(workflows) == 0 {
					return errors.New("No workflows found for this app")
				}

				workflowID, err = ops.reader.SelectFromList("Select a workflow", workflows)
				if errors.Is(err, errs.ErrCancelled) {
					cmd.Println("No workflow selected.")
					return nil
				}
				if err != nil {
					return err
				}
			}

			var triggered *buildapi.TriggeredBuild
			err := ops.withSpinner("Starting build...", func() (err error) {
				triggered, err = ops.buildClient.StartBuild(buildapi.StartBuildOptions{
					Branch:     branch,
					WorkflowID: workflowID,
				})
				return err
			})
			if err != nil {
				return pkgerrors.Wrap(err, "Failed to start build")
			}

			cmd.Printf("Build started successfully! (workflow %s, branch %s)\n", workflowID, branch)
			if triggered.BuildNumber != 0 {
				cmd.Printf("Build Number: %d\n", triggered.BuildNumber)
			}
			if triggered.BuildURL != "" {
				cmd.Printf("Build URL: %s\n", triggered.BuildURL)
			}
			return nil
		},
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVar(&workflowID, "workflow", "", "Workflow to run; prompts when omitted")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to build; defaults to the branch checked out in --dir")
	cmd.Flags().StringVar(&dir, "dir", ".", "Working copy used to find the current branch")

	return cmd
}
