package main

import (
	"os"
	"runtime/debug"

	"github.com/halvard/gitprep/internal/cli"
)

// Overridden via ldflags on release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(buildVersion())
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildVersion fills in version details from the embedded build info,
// covering binaries installed with `go install` where no ldflags were
// set.
func buildVersion() (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none":
			commit = s.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return version, commit, date
}
