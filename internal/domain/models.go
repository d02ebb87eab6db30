package domain

import "time"

// Entry is one immediate child of a working directory
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// OutcomeKind tells how a project selection resolved
type OutcomeKind int

const (
	NoCandidates OutcomeKind = iota
	AutoSelected
	UserPicked
)

func (k OutcomeKind) String() string {
	switch k {
	case AutoSelected:
		return "auto-selected"
	case UserPicked:
		return "user-picked"
	default:
		return "no-candidates"
	}
}

// SelectionOutcome is the single result of a project selection workflow.
// Entry is nil for NoCandidates and for a UserPicked confirmation with
// nothing highlighted.
type SelectionOutcome struct {
	Kind  OutcomeKind
	Entry *Entry
}

// Operation names understood by the dispatcher
const (
	OpExtract = "extract"
	OpBuild   = "build"
	OpClean   = "clean"
)

// OperationResult is what a finished long-running operation reports back
type OperationResult struct {
	Name    string
	OK      bool
	Elapsed time.Duration
}
