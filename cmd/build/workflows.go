package build

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bitrise-client/bitrise-client/cmd/validator"
)

func newWorkflowsCommand(ops *buildOpts, preRunE validator.Validator) *cobra.Command {
	var jsonFormat bool

	cmd := &cobra.Command{
		Use:   "workflows",
		Short: "List the workflows of the app.",
		Long: `List the workflows of the app.

Examples:
  bitrise-client build workflows
  bitrise-client build workflows --json`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			var workflows []string
			err := ops.withSpinner("Fetching workflows...", func() (err error) {
				workflows, err = ops.buildClient.ListWorkflows()
				return err
			})
			if err != nil {
				return pkgerrors.Wrap(err, "Failed to fetch workflows")
			}

			if jsonFormat {
				payload, err := json.Marshal(workflows)
				if err != nil {
					return err
				}
				cmd.Println(string(payload))
				return nil
			}

			if len(workflows) == 0 {
				cmd.Println("No workflows found for this app.")
				return nil
			}

			for _, w := range workflows {
				cmd.Println(w)
			}

			return nil
		},
		Args: cobra.NoArgs,
	}

	cmd.Flags().BoolVar(&jsonFormat, "json", false, "Return output back in JSON format")

	return cmd
}
