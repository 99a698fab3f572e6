package prepare

import (
	"strings"
)

const (
	refPrefix   = "refs/"
	headsPrefix = "refs/heads/"
	// remotePrefix is the namespace remote-tracking branch names carry
	// in `git branch --remotes` style listings.
	remotePrefix = "origin/"
)

// QualifyRef qualifies a bare branch name under refs/heads/. Refs that
// already carry a refs/ namespace are returned unchanged.
func QualifyRef(ref string) string {
	if ref == "" || strings.HasPrefix(ref, refPrefix) {
		return ref
	}
	return headsPrefix + ref
}

// NamesConflict reports whether two branch names collide once both live
// under the same ref namespace. Branch namespaces are hierarchical
// directories of refs: "foo" and "foo/bar" cannot coexist as sibling
// refs, so one name conflicts with the other exactly when it occupies an
// ancestor or descendant path segment of it. The comparison is
// case-insensitive because ref storage may sit on a case-insensitive
// filesystem.
//
// Both arguments are plain branch names with any refs/heads/ or remote
// namespace prefix already stripped.
func NamesConflict(target, candidate string) bool {
	t := strings.ToUpper(target)
	c := strings.ToUpper(candidate)
	return strings.HasPrefix(t, c+"/") || strings.HasPrefix(c, t+"/")
}

// conflictingRemoteBranches returns the remote-tracking branches that
// must be deleted before ref can be fetched or checked out. Only heads
// refs are conflict-checked; tags and other namespaces never collide
// with remote-tracking branches.
func conflictingRemoteBranches(ref string, remoteBranches []string) []string {
	ref = QualifyRef(ref)
	if !strings.HasPrefix(ref, headsPrefix) {
		return nil
	}
	target := strings.TrimPrefix(ref, headsPrefix)

	var conflicts []string
	for _, branch := range remoteBranches {
		candidate := strings.TrimPrefix(branch, remotePrefix)
		if NamesConflict(target, candidate) {
			conflicts = append(conflicts, branch)
		}
	}
	return conflicts
}
