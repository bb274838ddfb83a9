package build

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	buildapi "github.com/bitrise-client/bitrise-client/api/build"
	"github.com/bitrise-client/bitrise-client/cmd/validator"
	"github.com/bitrise-client/bitrise-client/git"
	"github.com/bitrise-client/bitrise-client/prompt"
	"github.com/bitrise-client/bitrise-client/settings"
)

// UserInputReader presents a single-choice picker
type UserInputReader interface {
	SelectFromList(msg string, choices []string) (string, error)
}

// BranchResolver reports the branch checked out in a directory
type BranchResolver interface {
	CurrentBranch(dir string) (string, bool)
}

type buildOpts struct {
	buildClient buildapi.BuildClient
	reader      UserInputReader
	branches    BranchResolver
	// spinnerOut is nil when no spinner should be drawn.
	spinnerOut io.Writer
}

// BuildOption configures a command created by NewBuildCommand
type BuildOption interface {
	apply(*buildOpts)
}

type promptReader struct{}

func (p promptReader) SelectFromList(msg string, choices []string) (string, error) {
	return prompt.SelectFromList(msg, choices)
}

// NewBuildCommand generates a cobra command for starting and aborting builds
func NewBuildCommand(config *settings.Config, preRunE validator.Validator, opts ...BuildOption) *cobra.Command {
	pos := buildOpts{
		reader:   &promptReader{},
		branches: git.NewBranchResolver(),
	}
	for _, o := range opts {
		o.apply(&pos)
	}
	command := &cobra.Command{
		Use:   "build",
		Short: "Start and abort builds",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if pos.buildClient != nil {
				return nil
			}
			client, err := buildapi.NewBuildRestClient(*config)
			if err != nil {
				return err
			}
			pos.buildClient = client
			pos.spinnerOut = cmd.ErrOrStderr()
			return nil
		},
	}

	command.AddCommand(newStartCommand(&pos, preRunE))
	command.AddCommand(newAbortCommand(&pos, preRunE))
	command.AddCommand(newWorkflowsCommand(&pos, preRunE))
	command.AddCommand(newListCommand(&pos, preRunE))

	return command
}

type customReaderBuildOption struct {
	r UserInputReader
}

func (c customReaderBuildOption) apply(opts *buildOpts) {
	opts.reader = c.r
}

// CustomReader returns a BuildOption that sets a given UserInputReader to a build command
func CustomReader(r UserInputReader) BuildOption {
	return customReaderBuildOption{r}
}

type customBranchResolverBuildOption struct {
	b BranchResolver
}

func (c customBranchResolverBuildOption) apply(opts *buildOpts) {
	opts.branches = c.b
}

// CustomBranchResolver returns a BuildOption that replaces the git branch lookup
func CustomBranchResolver(b BranchResolver) BuildOption {
	return customBranchResolverBuildOption{b}
}

type customClientBuildOption struct {
	c buildapi.BuildClient
}

func (c customClientBuildOption) apply(opts *buildOpts) {
	opts.buildClient = c.c
}

// CustomClient returns a BuildOption that sets the client used to reach the build service
func CustomClient(c buildapi.BuildClient) BuildOption {
	return customClientBuildOption{c}
}

// withSpinner runs fn while a spinner with the given suffix is shown.
func (o *buildOpts) withSpinner(suffix string, fn func() error) error {
	if o.spinnerOut == nil {
		return fn()
	}
	spr := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(o.spinnerOut))
	spr.Suffix = " " + suffix
	spr.Start()
	err := fn()
	spr.Stop()
	return err
}
