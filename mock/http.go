package mock

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

type transport struct {
	f func(*http.Request) (*http.Response, error)
}

func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.f(r)
}

func NewHTTPClient(f func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &transport{f: f},
	}
}

func NewHTTPResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// Recorder is an http.Client transport that answers every request with the
// same response and remembers what it was asked.
type Recorder struct {
	mu       sync.Mutex
	requests []*http.Request

	StatusCode int
	Body       string
}

// Client returns an *http.Client backed by the recorder.
func (r *Recorder) Client() *http.Client {
	return NewHTTPClient(func(req *http.Request) (*http.Response, error) {
		r.mu.Lock()
		r.requests = append(r.requests, req)
		r.mu.Unlock()

		code := r.StatusCode
		if code == 0 {
			code = http.StatusOK
		}
		return NewHTTPResponse(code, r.Body), nil
	})
}

// Count returns how many requests reached the transport.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Requests returns the recorded requests in order.
func (r *Recorder) Requests() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}
