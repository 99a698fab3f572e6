package git

import (
	"fmt"
)

// CLI executes git commands against a single working copy.
// It implements the collaborator contract consumed by the prepare package.
type CLI struct {
	dir string
	env []string
}

// NewCLI returns a CLI bound to the working copy at dir.
func NewCLI(dir string) *CLI {
	return &CLI{dir: dir}
}

// Dir returns the working copy path this CLI operates on.
func (c *CLI) Dir() string {
	return c.dir
}

func (c *CLI) run(args ...string) (string, error) {
	return Run(args, &RunOptions{Dir: c.dir, Env: c.env})
}

// RemoteURL returns the configured fetch URL for the origin remote.
// It returns an empty string (and no error) when the key is not set.
func (c *CLI) RemoteURL() (string, error) {
	out, err := c.run("config", "--get", "remote.origin.url")
	if err != nil {
		// `git config --get` exits with code 1 when the key is absent.
		if isExitCode(err, 1) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read remote.origin.url: %w", err)
	}
	return out, nil
}

// IsDetached reports whether HEAD is detached.
func (c *CLI) IsDetached() (bool, error) {
	// rev-parse prints "HEAD" when not on a branch.
	branch, err := c.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return false, err
	}
	return branch == "HEAD", nil
}

// CheckoutDetach detaches HEAD at the current commit.
func (c *CLI) CheckoutDetach() error {
	_, err := c.run("checkout", "--detach")
	return err
}

// BranchList returns local branch names, or remote-tracking branch names
// (e.g. "origin/main") when remote is true. The symbolic origin/HEAD entry
// is excluded since it is not a real branch.
func (c *CLI) BranchList(remote bool) ([]string, error) {
	ns := "refs/heads"
	if remote {
		ns = "refs/remotes/origin"
	}

	out, err := c.run("for-each-ref", "--format=%(refname:short)", ns)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	var branches []string
	for _, line := range splitLines(out) {
		if remote && line == "origin/HEAD" {
			continue
		}
		branches = append(branches, line)
	}
	return branches, nil
}

// BranchDelete force-deletes a local branch, or a remote-tracking branch
// when remote is true.
func (c *CLI) BranchDelete(remote bool, branch string) error {
	args := []string{"branch", "--delete", "--force"}
	if remote {
		args = append(args, "--remotes")
	}
	args = append(args, branch)

	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("failed to delete branch %q: %w", branch, err)
	}
	return nil
}

// SubmoduleStatus verifies the submodule state is consistent.
// A non-nil error means the submodule metadata or checkouts are broken.
func (c *CLI) SubmoduleStatus() error {
	_, err := c.run("submodule", "status")
	return err
}

// Clean removes untracked files and directories, including ignored ones.
// Paths matching an exclude pattern are kept.
func (c *CLI) Clean(excludes []string) error {
	args := []string{"clean", "-ffdx"}
	for _, pattern := range excludes {
		args = append(args, "-e", pattern)
	}
	_, err := c.run(args...)
	return err
}

// Reset hard-resets tracked files to HEAD.
func (c *CLI) Reset() error {
	_, err := c.run("reset", "--hard", "HEAD")
	return err
}

// Head returns the current HEAD commit SHA.
func (c *CLI) Head() (string, error) {
	return c.run("rev-parse", "HEAD")
}
