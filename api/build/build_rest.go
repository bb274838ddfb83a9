package build

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bitrise-client/bitrise-client/api/rest"
	"github.com/bitrise-client/bitrise-client/errs"
	"github.com/bitrise-client/bitrise-client/settings"
	"github.com/bitrise-client/bitrise-client/slug"
)

type buildRestClient struct {
	config settings.Config
	client *rest.Client
}

var _ BuildClient = &buildRestClient{}

type buildParams struct {
	Branch     string `json:"branch"`
	WorkflowID string `json:"workflow_id"`
}

type hookInfo struct {
	Type string `json:"type"`
}

type startBuildRequest struct {
	BuildParams buildParams `json:"build_params"`
	HookInfo    hookInfo    `json:"hook_info"`
}

type abortBuildRequest struct {
	AbortReason       string `json:"abort_reason,omitempty"`
	AbortWithSuccess  bool   `json:"abort_with_success,omitempty"`
	SkipNotifications bool   `json:"skip_notifications,omitempty"`
}

type listWorkflowsResponse struct {
	Data []string `json:"data"`
}

type listBuildsResponse struct {
	Data []Build `json:"data"`
}

// NewBuildRestClient returns a new buildRestClient satisfying the BuildClient
// interface via the REST API. Credentials are checked on every call, so a
// client built from an incomplete config fails each operation without
// sending anything.
func NewBuildRestClient(config settings.Config) (*buildRestClient, error) {
	restClient, err := rest.NewFromConfig(&config)
	if err != nil {
		return nil, errs.Configuration(err)
	}
	client := &buildRestClient{
		config: config,
		client: restClient,
	}
	return client, nil
}

func (c *buildRestClient) ListWorkflows() ([]string, error) {
	var resp listWorkflowsResponse
	if err := c.do("list workflows", "GET", "build-workflows", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []string{}, nil
	}
	return resp.Data, nil
}

func (c *buildRestClient) ListUnfinishedBuilds() ([]Build, error) {
	query := url.Values{}
	query.Set("status", strconv.Itoa(StatusNotFinished))

	var resp listBuildsResponse
	if err := c.do("list unfinished builds", "GET", "builds", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Build{}, nil
	}
	return resp.Data, nil
}

func (c *buildRestClient) ListUnfinishedBuildSlugs() ([]string, error) {
	builds, err := c.ListUnfinishedBuilds()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(builds))
	for _, b := range builds {
		slugs = append(slugs, b.Slug)
	}
	return slugs, nil
}

func (c *buildRestClient) StartBuild(options StartBuildOptions) (*TriggeredBuild, error) {
	reqBody := startBuildRequest{
		BuildParams: buildParams{
			Branch:     options.Branch,
			WorkflowID: options.WorkflowID,
		},
		HookInfo: hookInfo{
			Type: HookType,
		},
	}

	var resp TriggeredBuild
	err := c.do("start build", "POST", "builds", nil, reqBody, &resp)
	// The build is already running once a 2xx came back; its details are optional.
	if errors.Is(err, rest.ErrUndecodableBody) {
		return &TriggeredBuild{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *buildRestClient) AbortBuild(buildSlug string, options AbortBuildOptions) error {
	if err := c.config.Validate(); err != nil {
		return err
	}
	b, err := slug.ParseBuild(buildSlug)
	if err != nil {
		return err
	}

	// A nil interface, not a typed nil pointer, keeps the request body empty.
	var payload interface{}
	if !options.isZero() {
		payload = abortBuildRequest{
			AbortReason:       options.Reason,
			AbortWithSuccess:  options.WithSuccess,
			SkipNotifications: options.SkipNotifications,
		}
	}

	path := fmt.Sprintf("builds/%s/abort", b)
	return c.do("abort build", "POST", path, nil, payload, nil)
}

// do is shared by every operation: it checks credentials, builds the
// app-scoped request and wraps any failure as an API error.
func (c *buildRestClient) do(op, method, path string, query url.Values, payload, resp interface{}) error {
	if err := c.config.Validate(); err != nil {
		return err
	}
	app, err := slug.ParseApp(c.config.AppSlug)
	if err != nil {
		return errs.Configuration(err)
	}

	u := &url.URL{
		Path:     fmt.Sprintf("apps/%s/%s", app, path),
		RawQuery: query.Encode(),
	}

	req, err := c.client.NewRequest(method, u, payload)
	if err != nil {
		return errs.API(op, 0, err)
	}

	statusCode, err := c.client.DoRequest(req, resp)
	if err != nil {
		return errs.API(op, statusCode, err)
	}
	return nil
}
