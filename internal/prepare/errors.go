package prepare

import (
	"fmt"
)

// Step identifies the cleanup step that caused a fatal failure.
type Step string

const (
	StepDetach     Step = "detach"
	StepBranches   Step = "branches"
	StepSubmodules Step = "submodules"
	StepClean      Step = "clean"
	StepReset      Step = "reset"
)

// NotGitDirError is returned when the path does not contain a .git
// directory. The directory is left untouched.
type NotGitDirError struct {
	Path string
}

func (e *NotGitDirError) Error() string {
	return fmt.Sprintf("'%s' is not a git repository: missing .git directory", e.Path)
}

// URLMismatchError is returned when the configured fetch URL of the
// working copy does not match the expected repository URL. The directory
// is left untouched since it may belong to an unrelated repository.
type URLMismatchError struct {
	Want string
	Got  string
}

func (e *URLMismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("existing directory has no remote.origin.url configured, expected '%s'", e.Want)
	}
	return fmt.Sprintf("existing directory points at '%s', expected '%s'", e.Got, e.Want)
}

// UnusableError wraps any fatal failure from the cleanup steps. It
// signals that the directory cannot be prepared in place and should be
// discarded and recreated by the caller.
type UnusableError struct {
	Step Step
	Err  error
}

func (e *UnusableError) Error() string {
	return fmt.Sprintf("unable to prepare the existing directory (%s failed): discard the directory and create it fresh: %v", e.Step, e.Err)
}

func (e *UnusableError) Unwrap() error {
	return e.Err
}

// unusable wraps err for the given step unless it is nil.
func unusable(step Step, err error) error {
	if err == nil {
		return nil
	}
	return &UnusableError{Step: step, Err: err}
}
