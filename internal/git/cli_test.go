package git

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// newTestRepo creates a repository with one commit and returns a CLI
// bound to it.
func newTestRepo(t *testing.T) (*CLI, string) {
	t.Helper()
	skipWithoutGit(t)

	dir := t.TempDir()
	initGitRepo(t, dir)
	commitFile(t, dir, "README.md", "hello\n")
	return NewCLI(dir), dir
}

func TestCLI_RemoteURL(t *testing.T) {
	cli, dir := newTestRepo(t)

	// No remote configured yet
	url, err := cli.RemoteURL()
	if err != nil {
		t.Fatalf("RemoteURL() returned error: %v", err)
	}
	if url != "" {
		t.Errorf("RemoteURL() = %q, want empty string without a remote", url)
	}

	gitIn(t, dir, "remote", "add", "origin", "https://example.com/org/repo")

	url, err = cli.RemoteURL()
	if err != nil {
		t.Fatalf("RemoteURL() returned error: %v", err)
	}
	if url != "https://example.com/org/repo" {
		t.Errorf("RemoteURL() = %q, want configured URL", url)
	}
}

func TestCLI_IsDetached(t *testing.T) {
	cli, _ := newTestRepo(t)

	detached, err := cli.IsDetached()
	if err != nil {
		t.Fatalf("IsDetached() returned error: %v", err)
	}
	if detached {
		t.Error("IsDetached() = true on a fresh repository, want false")
	}

	if err := cli.CheckoutDetach(); err != nil {
		t.Fatalf("CheckoutDetach() returned error: %v", err)
	}

	detached, err = cli.IsDetached()
	if err != nil {
		t.Fatalf("IsDetached() returned error after detach: %v", err)
	}
	if !detached {
		t.Error("IsDetached() = false after CheckoutDetach(), want true")
	}
}

func TestCLI_BranchList_Local(t *testing.T) {
	cli, dir := newTestRepo(t)

	gitIn(t, dir, "branch", "feature/a")
	gitIn(t, dir, "branch", "wip")

	branches, err := cli.BranchList(false)
	if err != nil {
		t.Fatalf("BranchList(false) returned error: %v", err)
	}

	if len(branches) != 3 {
		t.Fatalf("BranchList(false) = %v, want 3 branches", branches)
	}
	want := map[string]bool{"feature/a": true, "wip": true}
	found := 0
	for _, b := range branches {
		if want[b] {
			found++
		}
	}
	if found != 2 {
		t.Errorf("BranchList(false) = %v, should include feature/a and wip", branches)
	}
}

func TestCLI_BranchList_Remote(t *testing.T) {
	cli, dir := newTestRepo(t)

	// Fabricate remote-tracking refs without a network fetch
	gitIn(t, dir, "update-ref", "refs/remotes/origin/main", "HEAD")
	gitIn(t, dir, "update-ref", "refs/remotes/origin/feature/x", "HEAD")
	gitIn(t, dir, "symbolic-ref", "refs/remotes/origin/HEAD", "refs/remotes/origin/main")

	branches, err := cli.BranchList(true)
	if err != nil {
		t.Fatalf("BranchList(true) returned error: %v", err)
	}

	want := []string{"origin/feature/x", "origin/main"}
	if !reflect.DeepEqual(branches, want) {
		t.Errorf("BranchList(true) = %v, want %v (origin/HEAD excluded)", branches, want)
	}
}

func TestCLI_BranchDelete_Local(t *testing.T) {
	cli, dir := newTestRepo(t)

	gitIn(t, dir, "branch", "doomed")
	// Detach so even the current branch could be deleted
	if err := cli.CheckoutDetach(); err != nil {
		t.Fatalf("CheckoutDetach() returned error: %v", err)
	}

	if err := cli.BranchDelete(false, "doomed"); err != nil {
		t.Fatalf("BranchDelete(false, doomed) returned error: %v", err)
	}

	branches, err := cli.BranchList(false)
	if err != nil {
		t.Fatalf("BranchList(false) returned error: %v", err)
	}
	for _, b := range branches {
		if b == "doomed" {
			t.Error("branch 'doomed' still listed after deletion")
		}
	}
}

func TestCLI_BranchDelete_Remote(t *testing.T) {
	cli, dir := newTestRepo(t)

	gitIn(t, dir, "update-ref", "refs/remotes/origin/stale", "HEAD")

	if err := cli.BranchDelete(true, "origin/stale"); err != nil {
		t.Fatalf("BranchDelete(true, origin/stale) returned error: %v", err)
	}

	branches, err := cli.BranchList(true)
	if err != nil {
		t.Fatalf("BranchList(true) returned error: %v", err)
	}
	if len(branches) != 0 {
		t.Errorf("BranchList(true) = %v, want empty after deletion", branches)
	}
}

func TestCLI_BranchDelete_Missing(t *testing.T) {
	cli, _ := newTestRepo(t)

	if err := cli.BranchDelete(false, "never-existed"); err == nil {
		t.Error("BranchDelete of a missing branch should return error")
	}
}

func TestCLI_SubmoduleStatus_CleanRepo(t *testing.T) {
	cli, _ := newTestRepo(t)

	if err := cli.SubmoduleStatus(); err != nil {
		t.Errorf("SubmoduleStatus() returned error on a repo without submodules: %v", err)
	}
}

func TestCLI_Clean(t *testing.T) {
	cli, dir := newTestRepo(t)

	untracked := filepath.Join(dir, "scratch.txt")
	if err := os.WriteFile(untracked, []byte("junk"), 0644); err != nil {
		t.Fatalf("failed to write untracked file: %v", err)
	}

	if err := cli.Clean(nil); err != nil {
		t.Fatalf("Clean(nil) returned error: %v", err)
	}

	if _, err := os.Stat(untracked); !os.IsNotExist(err) {
		t.Error("untracked file survived Clean()")
	}
}

func TestCLI_Clean_Excludes(t *testing.T) {
	cli, dir := newTestRepo(t)

	kept := filepath.Join(dir, "keep.cache")
	doomed := filepath.Join(dir, "junk.txt")
	for _, path := range []string{kept, doomed} {
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	if err := cli.Clean([]string{"*.cache"}); err != nil {
		t.Fatalf("Clean with excludes returned error: %v", err)
	}

	if _, err := os.Stat(kept); err != nil {
		t.Error("excluded file was removed by Clean()")
	}
	if _, err := os.Stat(doomed); !os.IsNotExist(err) {
		t.Error("non-excluded file survived Clean()")
	}
}

func TestCLI_Reset(t *testing.T) {
	cli, dir := newTestRepo(t)

	tracked := filepath.Join(dir, "README.md")
	if err := os.WriteFile(tracked, []byte("modified\n"), 0644); err != nil {
		t.Fatalf("failed to modify tracked file: %v", err)
	}

	if err := cli.Reset(); err != nil {
		t.Fatalf("Reset() returned error: %v", err)
	}

	content, err := os.ReadFile(tracked)
	if err != nil {
		t.Fatalf("failed to read tracked file: %v", err)
	}
	if string(content) != "hello\n" {
		t.Errorf("tracked file content = %q after Reset(), want %q", content, "hello\n")
	}
}

func TestCLI_Head(t *testing.T) {
	cli, _ := newTestRepo(t)

	sha, err := cli.Head()
	if err != nil {
		t.Fatalf("Head() returned error: %v", err)
	}
	if len(sha) != 40 {
		t.Errorf("Head() = %q, want a 40-character SHA", sha)
	}
}

func TestCLI_Dir(t *testing.T) {
	dir := t.TempDir()
	if got := NewCLI(dir).Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
}
