package prepare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Git is the capability set Prepare needs from a working copy. It is
// implemented by git.CLI; tests substitute a fake.
type Git interface {
	// RemoteURL returns the configured fetch URL for the origin remote,
	// or empty string when none is configured.
	RemoteURL() (string, error)

	// IsDetached reports whether HEAD is detached.
	IsDetached() (bool, error)

	// CheckoutDetach detaches HEAD at the current commit.
	CheckoutDetach() error

	// BranchList returns local branches, or remote-tracking branches
	// (prefixed "origin/") when remote is true.
	BranchList(remote bool) ([]string, error)

	// BranchDelete force-deletes a local branch, or a remote-tracking
	// branch when remote is true.
	BranchDelete(remote bool, branch string) error

	// SubmoduleStatus returns an error when the submodule state is
	// inconsistent.
	SubmoduleStatus() error

	// Clean removes untracked files and directories, keeping paths that
	// match an exclude pattern.
	Clean(excludes []string) error

	// Reset hard-resets tracked files to HEAD.
	Reset() error
}

// Diagnostics receives progress output from Prepare. It never influences
// control flow.
type Diagnostics interface {
	// Emit logs a message with optional hclog-style key/value pairs.
	Emit(msg string, kv ...any)

	// Group opens a named diagnostic group and returns a closer. The
	// closer must be invoked on every exit path, typically via defer.
	Group(label string) func()
}

// nopDiagnostics discards all output.
type nopDiagnostics struct{}

func (nopDiagnostics) Emit(string, ...any) {}
func (nopDiagnostics) Group(string) func() { return func() {} }

// lockFiles are artifacts a crashed or canceled prior run may have left
// under .git. They are always safe to delete speculatively: a stale lock
// has no live holder, and a held lock will resurface as a failure in a
// later step.
var lockFiles = []string{"index.lock", "shallow.lock"}

// Options configures a reconciliation run.
type Options struct {
	// Path is the working copy to prepare.
	Path string

	// URL is the expected remote.origin.url. The directory is rejected
	// on any mismatch.
	URL string

	// Ref is the ref a later checkout step will use. Bare branch names
	// are qualified under refs/heads/. May be empty.
	Ref string

	// Clean removes untracked files and hard-resets tracked files when
	// set.
	Clean bool

	// CleanExcludes are glob patterns passed through to git clean.
	CleanExcludes []string

	// Diagnostics receives progress output. Defaults to a no-op sink.
	Diagnostics Diagnostics
}

// Report records the mutations a run performed. It is best-effort
// populated even when Prepare returns an error.
type Report struct {
	LocksRemoved          []string `json:"locks_removed"`
	LocalBranchesDeleted  []string `json:"local_branches_deleted"`
	RemoteBranchesDeleted []string `json:"remote_branches_deleted"`
	Cleaned               bool     `json:"cleaned"`
	Reset                 bool     `json:"reset"`
	Recreated             bool     `json:"recreated"`
}

type runner struct {
	git    Git
	opts   Options
	diag   Diagnostics
	report *Report
}

// Prepare reconciles the working copy at opts.Path so a subsequent
// checkout of an arbitrary ref can proceed safely. The git collaborator
// is required; the caller constructs it, so a missing collaborator is a
// programming error rather than a runtime error class.
//
// Identity failures (*NotGitDirError, *URLMismatchError) leave the
// directory untouched. Every later failure is wrapped in *UnusableError:
// the directory should be discarded and recreated, never retried in
// place.
func Prepare(g Git, opts Options) (*Report, error) {
	r := &runner{
		git:    g,
		opts:   opts,
		diag:   opts.Diagnostics,
		report: &Report{},
	}
	if r.diag == nil {
		r.diag = nopDiagnostics{}
	}

	if err := r.validateIdentity(); err != nil {
		return r.report, err
	}
	r.scavengeLocks()
	if err := r.detach(); err != nil {
		return r.report, err
	}
	if err := r.deleteLocalBranches(); err != nil {
		return r.report, err
	}
	if err := r.deleteConflictingRemoteBranches(); err != nil {
		return r.report, err
	}
	if err := r.checkSubmodules(); err != nil {
		return r.report, err
	}
	if err := r.cleanAndReset(); err != nil {
		return r.report, err
	}

	return r.report, nil
}

// validateIdentity confirms the path holds a repository whose remote
// matches the expected URL. Read-only: on mismatch the directory might
// belong to an unrelated repository and must not be mutated.
func (r *runner) validateIdentity() error {
	info, err := os.Stat(filepath.Join(r.opts.Path, ".git"))
	if err != nil || !info.IsDir() {
		return &NotGitDirError{Path: r.opts.Path}
	}

	url, err := r.git.RemoteURL()
	if err != nil || url != r.opts.URL {
		return &URLMismatchError{Want: r.opts.URL, Got: url}
	}
	return nil
}

// scavengeLocks deletes lock files left by a crashed prior run. Failures
// are diagnostics only: a lock still held by a live process must not
// block the rest of the cleanup, and any real problem surfaces through
// the later steps.
func (r *runner) scavengeLocks() {
	done := r.diag.Group("Removing stale lock files")
	defer done()

	for _, name := range lockFiles {
		path := filepath.Join(r.opts.Path, ".git", name)
		switch err := os.Remove(path); {
		case err == nil:
			r.report.LocksRemoved = append(r.report.LocksRemoved, name)
			r.diag.Emit("removed stale lock file", "path", path)
		case errors.Is(err, fs.ErrNotExist):
			// Nothing to scavenge.
		default:
			r.diag.Emit("unable to delete lock file", "path", path, "error", err)
		}
	}
}

// detach forces the repository out of any checked-out branch. Deleting
// the currently checked-out branch is disallowed, so every branch
// deletion below depends on this step.
func (r *runner) detach() error {
	done := r.diag.Group("Detaching HEAD")
	defer done()

	detached, err := r.git.IsDetached()
	if err != nil {
		return unusable(StepDetach, err)
	}
	if detached {
		return nil
	}
	return unusable(StepDetach, r.git.CheckoutDetach())
}

// deleteLocalBranches removes every local branch. They are cheaply
// re-creatable and must not conflict with anything fetched next, so
// deletion is forced with no "already merged" guard.
func (r *runner) deleteLocalBranches() error {
	done := r.diag.Group("Deleting local branches")
	defer done()

	branches, err := r.git.BranchList(false)
	if err != nil {
		return unusable(StepBranches, err)
	}
	for _, branch := range branches {
		if err := r.git.BranchDelete(false, branch); err != nil {
			return unusable(StepBranches, err)
		}
		r.report.LocalBranchesDeleted = append(r.report.LocalBranchesDeleted, branch)
		r.diag.Emit("deleted local branch", "branch", branch)
	}
	return nil
}

// deleteConflictingRemoteBranches removes previously fetched
// remote-tracking branches whose names occupy an ancestor or descendant
// ref path of the desired ref.
func (r *runner) deleteConflictingRemoteBranches() error {
	if r.opts.Ref == "" {
		return nil
	}

	done := r.diag.Group("Deleting conflicting remote-tracking branches")
	defer done()

	remoteBranches, err := r.git.BranchList(true)
	if err != nil {
		return unusable(StepBranches, err)
	}
	for _, branch := range conflictingRemoteBranches(r.opts.Ref, remoteBranches) {
		if err := r.git.BranchDelete(true, branch); err != nil {
			return unusable(StepBranches, err)
		}
		r.report.RemoteBranchesDeleted = append(r.report.RemoteBranchesDeleted, branch)
		r.diag.Emit("deleted remote-tracking branch", "branch", branch)
	}
	return nil
}

// checkSubmodules fails the run when the submodule state is broken.
// Submodule corruption is not patched in place: the directory is
// disposable cache and the caller recreates it.
func (r *runner) checkSubmodules() error {
	done := r.diag.Group("Checking submodule state")
	defer done()

	if err := r.git.SubmoduleStatus(); err != nil {
		return unusable(StepSubmodules, fmt.Errorf("submodules are in an inconsistent state: %w", err))
	}
	return nil
}

// cleanAndReset clears untracked files and resets tracked files to HEAD
// when cleaning was requested. Reset is only attempted after a
// successful clean.
func (r *runner) cleanAndReset() error {
	if !r.opts.Clean {
		return nil
	}

	done := r.diag.Group("Cleaning the working tree")
	defer done()

	if err := r.git.Clean(r.opts.CleanExcludes); err != nil {
		r.diag.Emit("git clean failed; common causes: path too long, permission errors, or files held open by another process",
			"path", r.opts.Path)
		return unusable(StepClean, err)
	}
	r.report.Cleaned = true

	if err := r.git.Reset(); err != nil {
		return unusable(StepReset, err)
	}
	r.report.Reset = true
	return nil
}
