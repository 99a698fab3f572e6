package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGitNotFound is returned when git is not installed or not in PATH.
var ErrGitNotFound = errors.New("git is not installed or not in PATH")

// GitError wraps errors from git command execution with full context.
type GitError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed (exit %d): %s", e.Command[0], e.ExitCode, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("git %s failed (exit %d)", e.Command[0], e.ExitCode)
}

// ErrVersionTooOld is returned when git version is below the minimum required.
type ErrVersionTooOld struct {
	Current  string
	Required string
}

func (e *ErrVersionTooOld) Error() string {
	return fmt.Sprintf("git version %s is below minimum required %s\n\n"+
		"Please upgrade git: https://git-scm.com/downloads", e.Current, e.Required)
}

// isExitCode returns true if err is a *GitError with the given exit code.
// Useful for commands like `git config --get`, which exits with code 1
// when the requested key is not set.
func isExitCode(err error, code int) bool {
	var gitErr *GitError
	return errors.As(err, &gitErr) && gitErr.ExitCode == code
}
