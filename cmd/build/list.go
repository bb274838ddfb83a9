package build

import (
	"encoding/json"
	"strconv"

	"github.com/olekukonko/tablewriter"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	buildapi "github.com/bitrise-client/bitrise-client/api/build"
	"github.com/bitrise-client/bitrise-client/cmd/validator"
)

func newListCommand(ops *buildOpts, preRunE validator.Validator) *cobra.Command {
	var jsonFormat bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builds that have not finished yet.",
		Long: `List builds that have not finished yet, queued or running.

Examples:
  bitrise-client build list`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			var builds []buildapi.Build
			err := ops.withSpinner("Fetching unfinished builds...", func() (err error) {
				builds, err = ops.buildClient.ListUnfinishedBuilds()
				return err
			})
			if err != nil {
				return pkgerrors.Wrap(err, "Failed to fetch unfinished builds")
			}

			if jsonFormat {
				payload, err := json.Marshal(builds)
				if err != nil {
					return err
				}
				cmd.Println(string(payload))
				return nil
			}

			if len(builds) == 0 {
				cmd.Println("No unfinished builds found.")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Number", "Workflow", "Branch", "Status", "Slug"})
			for _, b := range builds {
				number := ""
				if b.BuildNumber != 0 {
					number = strconv.Itoa(b.BuildNumber)
				}
				table.Append([]string{number, b.TriggeredWorkflow, b.Branch, b.StatusText, b.Slug})
			}
			table.Render()

			return nil
		},
		Args: cobra.NoArgs,
	}

	cmd.Flags().BoolVar(&jsonFormat, "json", false, "Return output back in JSON format")

	return cmd
}
