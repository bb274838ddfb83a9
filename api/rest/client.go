package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bitrise-client/bitrise-client/logger"
	"github.com/bitrise-client/bitrise-client/settings"
	"github.com/bitrise-client/bitrise-client/version"
)

type Client struct {
	baseURL  *url.URL
	apiToken string
	client   *http.Client
	log      *logger.Logger
}

// ErrUndecodableBody is matched by the error DoRequest returns when a
// successful response carries a body that is not the expected JSON.
var ErrUndecodableBody = errors.New("decoding response")

func New(host, endpoint, apiToken string, client *http.Client) (*Client, error) {
	// Ensure endpoint ends with a slash
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid host %q: %w", host, err)
	}
	return &Client{
		baseURL:  u.ResolveReference(&url.URL{Path: endpoint}),
		apiToken: apiToken,
		client:   client,
		log:      logger.Discard(),
	}, nil
}

func NewFromConfig(config *settings.Config) (*Client, error) {
	c, err := New(config.HostOrDefault(), config.RestEndpointOrDefault(), config.Token, config.Client())
	if err != nil {
		return nil, err
	}
	c.log = logger.NewLogger(config.Debug)
	return c, nil
}

// BaseURL returns the URL every request path is resolved against.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) NewRequest(method string, u *url.URL, payload interface{}) (req *http.Request, err error) {
	var r io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		r = buf
		err = json.NewEncoder(buf).Encode(payload)
		if err != nil {
			return nil, err
		}
	}

	req, err = http.NewRequest(method, c.baseURL.ResolveReference(u).String(), r)
	if err != nil {
		return nil, err
	}

	// The API expects the raw token, not a Bearer credential.
	req.Header.Set("Authorization", c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DoRequest sends req and decodes a JSON response body into resp when resp is
// non-nil. An empty success body is not an error. Responses with a status of
// 300 or above are returned as *HTTPError.
func (c *Client) DoRequest(req *http.Request, resp interface{}) (statusCode int, err error) {
	httpResp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("%s %s -> %v", req.Method, req.URL.Path, err)
		return 0, err
	}
	defer httpResp.Body.Close()

	c.log.Debug("%s %s -> %d", req.Method, req.URL.Path, httpResp.StatusCode)

	if httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 64<<10))
		return httpResp.StatusCode, newHTTPError(httpResp.StatusCode, body)
	}

	if resp != nil {
		err = json.NewDecoder(httpResp.Body).Decode(resp)
		if err != nil && !errors.Is(err, io.EOF) {
			return httpResp.StatusCode, fmt.Errorf("%w: %v", ErrUndecodableBody, err)
		}
	}
	return httpResp.StatusCode, nil
}

type HTTPError struct {
	Code    int
	Message string
}

func newHTTPError(code int, body []byte) *HTTPError {
	httpError := struct {
		Message      string `json:"message"`
		ErrorMessage string `json:"error_msg"`
	}{}
	e := &HTTPError{Code: code}
	if err := json.Unmarshal(body, &httpError); err == nil {
		e.Message = httpError.Message
		if e.Message == "" {
			e.Message = httpError.ErrorMessage
		}
	} else {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

func (e *HTTPError) Error() string {
	code := e.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}
	if e.Message != "" {
		return fmt.Sprintf("response %d (%s): %s", code, http.StatusText(code), e.Message)
	}
	return fmt.Sprintf("response %d (%s)", code, http.StatusText(code))
}
