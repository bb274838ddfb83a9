package cmd

import (
	"bytes"
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/bitrise-client/bitrise-client/errs"
	"github.com/bitrise-client/bitrise-client/settings"
)

type testUI struct {
	token      string
	appSlug    string
	readErr    error
	confirm    bool
	confirmed  []string
	secretAsks int
}

func (ui *testUI) readSecretStringFromUser(message string) (string, error) {
	ui.secretAsks++
	return ui.token, ui.readErr
}

func (ui *testUI) readStringFromUser(message string, defaultValue string) (string, error) {
	if ui.appSlug == "" {
		return defaultValue, ui.readErr
	}
	return ui.appSlug, ui.readErr
}

func (ui *testUI) askUserToConfirm(message string) bool {
	ui.confirmed = append(ui.confirmed, message)
	return ui.confirm
}

var _ = Describe("Configure", func() {
	var (
		oldFS  *afero.Afero
		config *settings.Config
		ui     *testUI
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		oldFS = settings.FS
		settings.FS = &afero.Afero{Fs: afero.NewMemMapFs()}
		config = &settings.Config{Host: settings.DefaultHost}
		ui = &testUI{}
		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		settings.FS = oldFS
	})

	run := func(args ...string) error {
		command := newConfigureCommand(config, ui)
		command.SetOut(out)
		command.SetErr(out)
		command.SetArgs(args)
		return command.Execute()
	}

	readConfig := func() string {
		content, err := settings.FS.ReadFile(filepath.Join(settings.SettingsPath(), "cli.yml"))
		Expect(err).ShouldNot(HaveOccurred())
		return string(content)
	}

	It("saves prompted values", func() {
		ui.token = "secret"
		ui.appSlug = "app-1"

		Expect(run()).To(Succeed())

		Expect(config.Token).To(Equal("secret"))
		Expect(config.AppSlug).To(Equal("app-1"))
		Expect(ui.confirmed).To(BeEmpty())
		Expect(readConfig()).To(ContainSubstring("token: secret"))
		Expect(readConfig()).To(ContainSubstring("app_slug: app-1"))
		Expect(out.String()).To(ContainSubstring("API token has been set."))
		Expect(out.String()).To(ContainSubstring("Configuration has been saved to"))
	})

	It("saves flag values without prompting", func() {
		Expect(run("--api-token", "flag-token", "--default-app-slug", "flag-app")).To(Succeed())

		Expect(ui.secretAsks).To(Equal(0))
		Expect(readConfig()).To(ContainSubstring("token: flag-token"))
		Expect(readConfig()).To(ContainSubstring("app_slug: flag-app"))
	})

	It("keeps the existing token when the user declines to change it", func() {
		config.Token = "existing"
		config.AppSlug = "old-app"
		ui.confirm = false

		Expect(run()).To(Succeed())

		Expect(ui.confirmed).To(HaveLen(1))
		Expect(ui.secretAsks).To(Equal(0))
		Expect(config.Token).To(Equal("existing"))
		Expect(readConfig()).To(ContainSubstring("app_slug: old-app"))
	})

	It("replaces the existing token when the user confirms", func() {
		config.Token = "existing"
		ui.confirm = true
		ui.token = "replacement"
		ui.appSlug = "app-1"

		Expect(run()).To(Succeed())

		Expect(config.Token).To(Equal("replacement"))
	})

	It("rejects an invalid app slug without writing", func() {
		ui.token = "secret"
		ui.appSlug = "bad/slug"

		err := run()

		Expect(errors.Is(err, errs.ErrConfiguration)).To(BeTrue())
		exists, statErr := settings.FS.Exists(filepath.Join(settings.SettingsPath(), "cli.yml"))
		Expect(statErr).ShouldNot(HaveOccurred())
		Expect(exists).To(BeFalse())
	})

	It("reports prompt failures", func() {
		ui.readErr = errors.New("no tty")

		err := run()

		Expect(err).To(MatchError(ContainSubstring("Error reading token: no tty")))
	})
})
