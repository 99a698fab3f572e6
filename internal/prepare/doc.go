// Package prepare reconciles an existing git working copy with a desired
// remote identity and target ref, so a CI job can reuse a cached checkout
// instead of cloning from scratch.
//
// Prepare runs a fixed sequence of validations and destructive cleanup
// steps: verify the directory identity, scavenge stale lock files, detach
// HEAD, delete local branches and conflicting remote-tracking branches,
// verify submodule health, and optionally clean and reset the working
// tree. Any fatal failure after the identity checks is reported as a
// single "recreate the directory" error; nothing is retried in place.
package prepare
