// Package clitest contains common utilities and helpers for testing the CLI
package clitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gexec"
	"github.com/onsi/gomega/ghttp"
	"github.com/onsi/gomega/types"
)

// On Unix, we want to assert that processed exited with 255
// On Windows, it should be -1.
func ShouldFail() types.GomegaMatcher {
	failureCode := 255
	if runtime.GOOS == "windows" {
		failureCode = -1
	}
	return gexec.Exit(failureCode)
}

// TempSettings contains useful settings for testing the CLI
type TempSettings struct {
	Home       string
	TestServer *ghttp.Server
	Config     *TmpFile
}

// Close should be called in an AfterEach and cleans up the temp directory and server process
func (settings *TempSettings) Close() error {
	settings.TestServer.Close()
	settings.Config.Close()
	return os.RemoveAll(settings.Home)
}

// AssertConfigRereadMatches re-opens the config file and checks it's contents against the given string
func (settings TempSettings) AssertConfigRereadMatches(contents string) {
	reread, err := os.ReadFile(settings.Config.Path)
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
	gomega.Expect(string(reread)).To(gomega.ContainSubstring(contents))
}

// WithTempSettings should be called in a BeforeEach and returns a new TempSettings with everything setup for you
func WithTempSettings() *TempSettings {
	var err error

	tempSettings := &TempSettings{}

	tempSettings.Home, err = os.MkdirTemp("", "bitrise-client-test-")
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	settingsPath := filepath.Join(tempSettings.Home, ".bitrise-client")

	gomega.Expect(os.Mkdir(settingsPath, 0700)).To(gomega.Succeed())

	tempSettings.Config = OpenTmpFile(settingsPath, "cli.yml")

	tempSettings.TestServer = ghttp.NewServer()

	return tempSettings
}

// Env returns the environment a CLI process needs to run against the test server.
func (settings *TempSettings) Env(token, appSlug string) []string {
	env := []string{
		fmt.Sprintf("HOME=%s", settings.Home),
		fmt.Sprintf("USERPROFILE=%s", settings.Home),
		fmt.Sprintf("BITRISE_CLIENT_HOST=%s", settings.TestServer.URL()),
	}
	if token != "" {
		env = append(env, fmt.Sprintf("BITRISE_CLIENT_TOKEN=%s", token))
	}
	if appSlug != "" {
		env = append(env, fmt.Sprintf("BITRISE_CLIENT_APP_SLUG=%s", appSlug))
	}
	return env
}

// MockRequestResponse is a helpful type for mocking HTTP handlers.
type MockRequestResponse struct {
	Method   string
	Path     string
	Request  string
	Status   int
	Response string
}

// AppendAppHandler stubs out a request against the app's API routes.
// When authToken is an empty string no token validation is performed.
// When Request is empty the request body is not checked.
func (settings *TempSettings) AppendAppHandler(authToken, appSlug string, handlers ...MockRequestResponse) {
	for _, handler := range handlers {
		handler := handler
		verifiers := []http.HandlerFunc{
			ghttp.VerifyRequest(handler.Method, fmt.Sprintf("/v0.1/apps/%s/%s", appSlug, handler.Path)),
		}
		if authToken != "" {
			verifiers = append(verifiers, ghttp.VerifyHeader(http.Header{
				"Authorization": []string{authToken},
			}))
		}
		if handler.Request != "" {
			verifiers = append(verifiers,
				ghttp.VerifyContentType("application/json"),
				func(w http.ResponseWriter, req *http.Request) {
					body, err := io.ReadAll(req.Body)
					gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
					gomega.Expect(req.Body.Close()).To(gomega.Succeed())
					gomega.Expect(body).Should(gomega.MatchJSON(handler.Request), "JSON Mismatch")
				},
			)
		}
		verifiers = append(verifiers, ghttp.RespondWith(handler.Status, handler.Response))

		settings.TestServer.AppendHandlers(ghttp.CombineHandlers(verifiers...))
	}
}

// AppendWorkflowsHandler stubs out the workflow listing of an app.
func (settings *TempSettings) AppendWorkflowsHandler(authToken, appSlug string, workflows ...string) {
	body, err := json.Marshal(map[string][]string{"data": workflows})
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	settings.AppendAppHandler(authToken, appSlug, MockRequestResponse{
		Method:   "GET",
		Path:     "build-workflows",
		Status:   http.StatusOK,
		Response: string(body),
	})
}

// TmpFile wraps a temporary file on disk for utility.
type TmpFile struct {
	RootDir string
	Path    string
	File    *os.File
}

func (tempFile *TmpFile) Close() error {
	return tempFile.File.Close()
}

// Write will write the given contents to the file on disk and close it.
func (f TmpFile) Write(contents []byte) {
	_, err := f.File.Write(contents)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(f.File.Close()).To(gomega.Succeed())
}

// OpenTmpFile will create a new temporary file in the provided directory with a name of the given path.
func OpenTmpFile(directory string, path string) *TmpFile {
	var (
		config = &TmpFile{}
		err    error
	)

	config.RootDir = directory
	config.Path = filepath.Join(directory, path)

	err = os.MkdirAll(filepath.Dir(config.Path), 0700)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	var file *os.File
	file, err = os.OpenFile(
		config.Path,
		os.O_RDWR|os.O_CREATE,
		0600,
	)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	config.File = file

	return config
}
