package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/halvard/gitprep/internal/prepare"
)

func sampleResult() *Result {
	return &Result{
		Path:    "/srv/ci/workdir",
		URL:     "https://example.com/org/repo",
		Ref:     "refs/heads/main",
		Head:    "0123456789abcdef0123456789abcdef01234567",
		Outcome: OutcomeReady,
		Report: &prepare.Report{
			LocksRemoved:          []string{"index.lock"},
			LocalBranchesDeleted:  []string{"main", "feature/a"},
			RemoteBranchesDeleted: []string{"origin/main/sub"},
			Cleaned:               true,
			Reset:                 true,
		},
	}
}

func TestNewRenderer(t *testing.T) {
	if _, ok := NewRenderer(FormatJSON, false).(*JSONRenderer); !ok {
		t.Error("NewRenderer(FormatJSON) should return *JSONRenderer")
	}
	if _, ok := NewRenderer(FormatText, false).(*TextRenderer); !ok {
		t.Error("NewRenderer(FormatText) should return *TextRenderer")
	}
	// Unknown formats fall back to text
	if _, ok := NewRenderer(Format("yaml"), false).(*TextRenderer); !ok {
		t.Error("NewRenderer with unknown format should return *TextRenderer")
	}
}

func TestTextRenderer_Ready(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{ColorEnabled: false}

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"preparing /srv/ci/workdir for https://example.com/org/repo",
		"target ref: refs/heads/main",
		"Removed stale locks: index.lock",
		"Deleted local branches (2):",
		"  feature/a",
		"Deleted conflicting remote-tracking branches (1):",
		"  origin/main/sub",
		"Cleaned untracked files",
		"Reset tracked files to HEAD",
		"HEAD detached at 0123456789abcdef0123456789abcdef01234567",
		"Result: READY",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("text output missing %q:\n%s", want, got)
		}
	}
}

func TestTextRenderer_RejectedWithReason(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{ColorEnabled: false}

	result := &Result{
		Path:    "/srv/ci/workdir",
		URL:     "https://example.com/org/repo",
		Outcome: OutcomeRejected,
		Reason:  "remote URL mismatch",
	}
	if err := r.Render(&buf, result); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	got := buf.String()

	if !strings.Contains(got, "Result: REJECTED (remote URL mismatch)") {
		t.Errorf("text output missing outcome with reason:\n%s", got)
	}
	if strings.Contains(got, "target ref:") {
		t.Errorf("text output should omit empty ref:\n%s", got)
	}
}

func TestTextRenderer_Recreated(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{ColorEnabled: false}

	result := &Result{
		Path:    "/srv/ci/workdir",
		URL:     "https://example.com/org/repo",
		Outcome: OutcomeRecreate,
		Reason:  "clean failed",
		Report:  &prepare.Report{Recreated: true},
	}
	if err := r.Render(&buf, result); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	got := buf.String()

	if !strings.Contains(got, "Emptied the directory for a fresh clone") {
		t.Errorf("text output missing recreate line:\n%s", got)
	}
	if !strings.Contains(got, "Result: RECREATE (clean failed)") {
		t.Errorf("text output missing outcome:\n%s", got)
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{}

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if decoded["version"] != "1.0" {
		t.Errorf("version = %v, want 1.0", decoded["version"])
	}
	if decoded["outcome"] != "READY" {
		t.Errorf("outcome = %v, want READY", decoded["outcome"])
	}
	if decoded["path"] != "/srv/ci/workdir" {
		t.Errorf("path = %v", decoded["path"])
	}

	report, ok := decoded["report"].(map[string]any)
	if !ok {
		t.Fatalf("report missing or wrong shape: %v", decoded["report"])
	}
	if report["cleaned"] != true {
		t.Errorf("report.cleaned = %v, want true", report["cleaned"])
	}
}

func TestJSONRenderer_OmitsEmptyReason(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{}

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(buf.String(), `"reason"`) {
		t.Errorf("JSON output should omit empty reason:\n%s", buf.String())
	}
}
