package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeRunner struct {
	output []byte
	err    error

	dir  string
	name string
	args []string
}

func (f *fakeRunner) Output(dir, name string, args ...string) ([]byte, error) {
	f.dir, f.name, f.args = dir, name, args
	return f.output, f.err
}

func notOnPath(string) (string, error) {
	return "", exec.ErrNotFound
}

var _ = Describe("Dealing with git", func() {

	Context("running commands", func() {

		It("returns output in the happy path", func() {
			out, ok := commandOutput(execRunner{}, "", "echo", "hello")
			Expect(ok).To(BeTrue())
			Expect(out).To(Equal("hello"))
		})

		It("handles programs that exit with a failure", func() {
			_, ok := commandOutput(execRunner{}, "", "git", "this", "it", "not", "a", "command")
			Expect(ok).To(BeFalse())
		})

		It("handles invalid programs", func() {
			_, ok := commandOutput(execRunner{}, "", "this/is/not/a/command")
			Expect(ok).To(BeFalse())
		})

	})

	Context("resolving the branch through the runner", func() {

		It("runs git branch --show-current in the given directory", func() {
			runner := &fakeRunner{output: []byte("feature/x\n")}
			branch, ok := NewBranchResolverWithRunner(runner).CurrentBranch("/work/repo")

			Expect(ok).To(BeTrue())
			Expect(branch).To(Equal("feature/x"))
			Expect(runner.dir).To(Equal("/work/repo"))
			Expect(runner.name).To(Equal("git"))
			Expect(runner.args).To(Equal([]string{"branch", "--show-current"}))
		})

		It("reports no branch when the command fails", func() {
			runner := &fakeRunner{err: errors.New("exit status 128")}
			branch, ok := NewBranchResolverWithRunner(runner).CurrentBranch("/tmp")

			Expect(ok).To(BeFalse())
			Expect(branch).To(BeEmpty())
		})

		It("reports no branch rather than an empty name for a detached HEAD", func() {
			runner := &fakeRunner{output: []byte("\n")}
			_, ok := NewBranchResolverWithRunner(runner).CurrentBranch("/work/repo")

			Expect(ok).To(BeFalse())
		})

	})

	Context("working copies on disk", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "bitrise-client-git-")
			Expect(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			Expect(os.RemoveAll(dir)).To(Succeed())
		})

		initRepository := func(branch string) {
			if _, err := exec.LookPath("git"); err != nil {
				Skip("git is not installed")
			}
			Expect(exec.Command("git", "init", "-q", dir).Run()).To(Succeed())
			cmd := exec.Command("git", "symbolic-ref", "HEAD", "refs/heads/"+branch)
			cmd.Dir = dir
			Expect(cmd.Run()).To(Succeed())
		}

		It("returns the checked out branch", func() {
			initRepository("feature/x")

			branch, ok := NewBranchResolver().CurrentBranch(dir)
			Expect(ok).To(BeTrue())
			Expect(branch).To(Equal("feature/x"))
		})

		It("returns the branch from a subdirectory", func() {
			initRepository("main")
			sub := filepath.Join(dir, "src", "app")
			Expect(os.MkdirAll(sub, 0700)).To(Succeed())

			branch, ok := CurrentBranch(sub)
			Expect(ok).To(BeTrue())
			Expect(branch).To(Equal("main"))
		})

		It("reports no branch outside a working copy", func() {
			branch, ok := NewBranchResolver().CurrentBranch(dir)
			Expect(ok).To(BeFalse())
			Expect(branch).To(BeEmpty())
		})

		It("reports no branch for a missing directory", func() {
			_, ok := NewBranchResolver().CurrentBranch(filepath.Join(dir, "missing"))
			Expect(ok).To(BeFalse())
		})

		Describe("without git on the PATH", func() {
			var resolver *BranchResolver

			BeforeEach(func() {
				resolver = &BranchResolver{runner: execRunner{}, lookPath: notOnPath}
			})

			It("reads HEAD from the repository", func() {
				initRepository("release/1.2")

				branch, ok := resolver.CurrentBranch(dir)
				Expect(ok).To(BeTrue())
				Expect(branch).To(Equal("release/1.2"))
			})

			It("reports no branch for a detached HEAD", func() {
				initRepository("main")
				head := filepath.Join(dir, ".git", "HEAD")
				Expect(os.WriteFile(head, []byte("4b825dc642cb6eb9a060e54bf8d69288fbee4904\n"), 0600)).To(Succeed())

				_, ok := resolver.CurrentBranch(dir)
				Expect(ok).To(BeFalse())
			})

			It("reports no branch outside a working copy", func() {
				_, ok := resolver.CurrentBranch(dir)
				Expect(ok).To(BeFalse())
			})
		})
	})
})
