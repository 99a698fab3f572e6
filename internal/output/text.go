package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TextRenderer renders output in human-readable text format
type TextRenderer struct {
	ColorEnabled bool
}

// Render writes the preparation result in text format
func (r *TextRenderer) Render(w io.Writer, result *Result) error {
	// Configure color
	if !r.ColorEnabled {
		color.NoColor = true
	}

	// Header
	fmt.Fprintf(w, "gitprep: preparing %s for %s\n", result.Path, result.URL)
	if result.Ref != "" {
		fmt.Fprintf(w, "  target ref: %s\n", result.Ref)
	}
	fmt.Fprintln(w)

	// Mutations
	if result.Report != nil {
		r.renderReport(w, result)
	}

	// Separator
	fmt.Fprintln(w, strings.Repeat("-", 60))

	// Outcome
	r.renderOutcome(w, result)

	return nil
}

func (r *TextRenderer) renderReport(w io.Writer, result *Result) {
	rep := result.Report

	if len(rep.LocksRemoved) > 0 {
		fmt.Fprintf(w, "Removed stale locks: %s\n", strings.Join(rep.LocksRemoved, ", "))
	}
	if len(rep.LocalBranchesDeleted) > 0 {
		fmt.Fprintf(w, "Deleted local branches (%d):\n", len(rep.LocalBranchesDeleted))
		for _, b := range rep.LocalBranchesDeleted {
			fmt.Fprintf(w, "  %s\n", b)
		}
	}
	if len(rep.RemoteBranchesDeleted) > 0 {
		fmt.Fprintf(w, "Deleted conflicting remote-tracking branches (%d):\n", len(rep.RemoteBranchesDeleted))
		for _, b := range rep.RemoteBranchesDeleted {
			fmt.Fprintf(w, "  %s\n", b)
		}
	}
	if rep.Cleaned {
		fmt.Fprintln(w, "Cleaned untracked files")
	}
	if rep.Reset {
		fmt.Fprintln(w, "Reset tracked files to HEAD")
	}
	if rep.Recreated {
		fmt.Fprintln(w, "Emptied the directory for a fresh clone")
	}
	if result.Head != "" {
		fmt.Fprintf(w, "HEAD detached at %s\n", result.Head)
	}
}

func (r *TextRenderer) renderOutcome(w io.Writer, result *Result) {
	outcome := r.colorOutcome(result.Outcome)
	if result.Reason != "" {
		fmt.Fprintf(w, "Result: %s (%s)\n", outcome, result.Reason)
	} else {
		fmt.Fprintf(w, "Result: %s\n", outcome)
	}
}

func (r *TextRenderer) colorOutcome(o Outcome) string {
	str := string(o)
	if !r.ColorEnabled {
		return str
	}

	switch o {
	case OutcomeReady:
		return color.New(color.FgGreen).Sprint(str)
	case OutcomeRecreate:
		return color.New(color.FgYellow).Sprint(str)
	case OutcomeRejected:
		return color.New(color.FgRed, color.Bold).Sprint(str)
	default:
		return str
	}
}
