// Package git provides a safe wrapper around git command execution.
//
// This package delegates all git operations to the system git binary,
// leveraging the user's existing git configuration for authentication.
// It does not implement any platform-specific code (GitHub, GitLab, etc.)
// and does not store or manage credentials.
//
// Key features:
//   - Command execution with proper stderr capture for error diagnostics
//   - Git version detection and validation (minimum: 2.18)
//   - A CLI type bound to a working copy, exposing the repository
//     operations gitprep needs: remote URL lookup, detached-HEAD state,
//     branch enumeration and deletion, submodule status, clean and reset
//
// Example usage:
//
//	// Check if git is available
//	if !git.Available() {
//	    return git.ErrGitNotFound
//	}
//
//	// Check git version
//	if err := git.CheckMinVersion(); err != nil {
//	    return err
//	}
//
//	// Operate on a working copy
//	cli := git.NewCLI("/path/to/repo")
//	detached, err := cli.IsDetached()
package git
