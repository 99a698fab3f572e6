package cli

import (
	"github.com/spf13/cobra"
)

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "gitprep",
	Short: "Prepare a cached git checkout for reuse",
	Long: `gitprep reconciles an existing git working copy with a desired remote
and target ref, so a CI job can reuse a cached checkout instead of
cloning from scratch.

It validates the directory identity, removes stale lock files, detaches
HEAD, deletes local and conflicting remote-tracking branches, verifies
submodule health, and optionally cleans the working tree.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
