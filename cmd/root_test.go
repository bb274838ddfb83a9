package cmd_test

import (
	"net/http"
	"os/exec"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"

	"github.com/bitrise-client/bitrise-client/clitest"
	"github.com/bitrise-client/bitrise-client/cmd"
)

var _ = Describe("Root", func() {
	var (
		command      *exec.Cmd
		tempSettings *clitest.TempSettings
	)

	BeforeEach(func() {
		tempSettings = clitest.WithTempSettings()
	})

	AfterEach(func() {
		Expect(tempSettings.Close()).To(Succeed())
	})

	Describe("subcommands", func() {
		It("can create commands", func() {
			commands := cmd.MakeCommands()
			Expect(len(commands.Commands())).To(Equal(3))
		})
	})

	Describe("version", func() {
		It("prints the version", func() {
			command = commandWithEnv(tempSettings.Env("", ""), "version")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Out).Should(gbytes.Say(`0\.0\.0-dev \(dirty-local-tree\)`))
			Eventually(session).Should(gexec.Exit(0))
		})
	})

	Describe("without credentials", func() {
		It("fails before contacting the API", func() {
			command = commandWithEnv(tempSettings.Env("", ""), "build", "workflows")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Err).Should(gbytes.Say("Please set token and app_slug"))
			Eventually(session).Should(clitest.ShouldFail())
			Expect(tempSettings.TestServer.ReceivedRequests()).To(BeEmpty())
		})
	})

	Describe("with credentials in the config file", func() {
		BeforeEach(func() {
			tempSettings.Config.Write([]byte("token: file-token\napp_slug: file-app\n"))
		})

		It("uses them for requests", func() {
			tempSettings.AppendWorkflowsHandler("file-token", "file-app", "primary", "deploy")
			command = commandWithEnv(tempSettings.Env("", ""), "build", "workflows")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("primary\ndeploy\n"))
		})

		It("lets flags override them", func() {
			tempSettings.AppendWorkflowsHandler("flag-token", "flag-app", "primary")
			command = commandWithEnv(tempSettings.Env("", ""),
				"build", "workflows",
				"--token", "flag-token",
				"--app-slug", "flag-app",
			)

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("primary"))
		})
	})

	Describe("build start", func() {
		It("starts a build of the given branch and workflow", func() {
			tempSettings.AppendAppHandler("env-token", "env-app", clitest.MockRequestResponse{
				Method:   "POST",
				Path:     "builds",
				Request:  `{"build_params":{"branch":"main","workflow_id":"primary"},"hook_info":{"type":"bitrise"}}`,
				Status:   http.StatusCreated,
				Response: `{"status":"ok","build_slug":"build-1","build_number":12,"build_url":"https://app.bitrise.io/build/build-1","triggered_workflow":"primary"}`,
			})
			command = commandWithEnv(tempSettings.Env("env-token", "env-app"),
				"build", "start", "--workflow", "primary", "--branch", "main",
			)

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say(`Build started successfully! \(workflow primary, branch main\)`))
			Expect(session.Out).To(gbytes.Say("Build Number: 12"))
		})

		It("reports API failures with the status code", func() {
			tempSettings.AppendAppHandler("env-token", "env-app", clitest.MockRequestResponse{
				Method:   "POST",
				Path:     "builds",
				Status:   http.StatusUnauthorized,
				Response: `{"message":"Unauthorized"}`,
			})
			command = commandWithEnv(tempSettings.Env("env-token", "env-app"),
				"build", "start", "--workflow", "primary", "--branch", "main",
			)

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(clitest.ShouldFail())
			Expect(session.Err).To(gbytes.Say("Failed to start build"))
			Expect(string(session.Err.Contents())).To(ContainSubstring("401"))
		})
	})

	Describe("build abort", func() {
		It("aborts the given build", func() {
			tempSettings.AppendAppHandler("env-token", "env-app", clitest.MockRequestResponse{
				Method:   "POST",
				Path:     "builds/build-1/abort",
				Status:   http.StatusOK,
				Response: `{"status":"ok"}`,
			})
			command = commandWithEnv(tempSettings.Env("env-token", "env-app"), "build", "abort", "build-1")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Build build-1 aborted."))
		})
	})
})
