package git

import (
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Runner runs one program with fixed arguments in dir and returns its
// standard output. No shell is involved.
type Runner interface {
	Output(dir, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// BranchResolver finds the checked-out branch of a working copy.
type BranchResolver struct {
	runner   Runner
	lookPath func(file string) (string, error)
}

func NewBranchResolver() *BranchResolver {
	return &BranchResolver{
		runner:   execRunner{},
		lookPath: exec.LookPath,
	}
}

// NewBranchResolverWithRunner is used by tests to replace the subprocess
// boundary.
func NewBranchResolverWithRunner(runner Runner) *BranchResolver {
	return &BranchResolver{
		runner:   runner,
		lookPath: func(string) (string, error) { return "git", nil },
	}
}

var defaultResolver = NewBranchResolver()

// CurrentBranch returns the branch checked out in dir using the default
// resolver.
func CurrentBranch(dir string) (string, bool) {
	return defaultResolver.CurrentBranch(dir)
}

// CurrentBranch runs `git branch --show-current` in dir. It reports false when
// dir is not a working copy, the command fails, or HEAD is detached; a true
// result always carries a non-empty name.
//
// When git is not on the PATH, HEAD is read with go-git instead.
func (r *BranchResolver) CurrentBranch(dir string) (string, bool) {
	if _, err := r.lookPath("git"); err != nil {
		return branchFromRepository(dir)
	}

	return commandOutput(r.runner, dir, "git", "branch", "--show-current")
}

func commandOutput(runner Runner, dir, name string, args ...string) (string, bool) {
	output, err := runner.Output(dir, name, args...)
	if err != nil {
		return "", false
	}

	out := strings.TrimSpace(string(output))
	if out == "" {
		return "", false
	}
	return out, true
}

func branchFromRepository(dir string) (string, bool) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	// Unresolved, so that a branch without commits still reports its name.
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", false
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", false
	}

	name := head.Target().Short()
	if name == "" {
		return "", false
	}
	return name, true
}
