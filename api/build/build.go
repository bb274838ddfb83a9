package build

import (
	"encoding/json"
	"fmt"
)

// StatusNotFinished is the status class the build service uses for builds
// that are queued or still running.
const StatusNotFinished = 0

// HookType is sent as hook_info.type on every build started by this client.
const HookType = "bitrise"

// Build is one entry of the builds listing. The service may report either
// full build objects or bare slugs; a bare slug only fills Slug.
type Build struct {
	Slug              string `json:"slug"`
	BuildNumber       int    `json:"build_number"`
	Branch            string `json:"branch"`
	TriggeredWorkflow string `json:"triggered_workflow"`
	Status            int    `json:"status"`
	StatusText        string `json:"status_text"`
	TriggeredAt       string `json:"triggered_at"`
}

func (b *Build) UnmarshalJSON(data []byte) error {
	var slug string
	if err := json.Unmarshal(data, &slug); err == nil {
		*b = Build{Slug: slug}
		return nil
	}

	type plain Build
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("build entry is neither a slug nor an object: %w", err)
	}
	*b = Build(p)
	return nil
}

// Label is the text shown for a build in the interactive picker.
func (b Build) Label() string {
	if b.BuildNumber == 0 && b.Branch == "" && b.TriggeredWorkflow == "" {
		return b.Slug
	}
	return fmt.Sprintf("#%d %s (%s) %s", b.BuildNumber, b.TriggeredWorkflow, b.Branch, b.Slug)
}

type StartBuildOptions struct {
	Branch     string
	WorkflowID string
}

// TriggeredBuild holds whatever the service reported about a started build.
// Every field is optional.
type TriggeredBuild struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Slug              string `json:"build_slug"`
	BuildNumber       int    `json:"build_number"`
	BuildURL          string `json:"build_url"`
	TriggeredWorkflow string `json:"triggered_workflow"`
}

// AbortBuildOptions are optional; the zero value sends no request body.
type AbortBuildOptions struct {
	Reason            string
	WithSuccess       bool
	SkipNotifications bool
}

func (o AbortBuildOptions) isZero() bool {
	return o == AbortBuildOptions{}
}

// BuildClient is the interface to interact with the builds and workflows of
// one app.
type BuildClient interface {
	ListWorkflows() ([]string, error)
	ListUnfinishedBuilds() ([]Build, error)
	ListUnfinishedBuildSlugs() ([]string, error)
	StartBuild(options StartBuildOptions) (*TriggeredBuild, error)
	AbortBuild(buildSlug string, options AbortBuildOptions) error
}
