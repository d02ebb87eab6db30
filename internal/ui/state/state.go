package state

import (
	"time"

	"abik/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Working directory
	WorkDir    string
	Projects   int // sub-directories of WorkDir, refreshed on change events
	Decompress bool
	Unsaved    bool // settings changed but not yet written to the config file

	// Operation state
	Running      string // name of the running operation
	RunningSince time.Time
	LastResult   *domain.OperationResult

	// Batch deletion
	Deleting  *DeleteCount
	LastClean *domain.DeletionCompletedEvent

	// Console
	ConsoleLines []string

	// UI state
	Status    domain.Advisory // status bar message
	StatusSeq int             // bumps on every new status
	ShowHelp  bool
	Dialog    *Dialog
	Progress  *Progress
}

// Progress is the modal progress indicator
type Progress struct {
	Title   string
	Message string
}

// DeleteCount is the position of the entry being removed within a run
type DeleteCount struct {
	Step  int
	Total int
}

// NewAppState creates a new application state
func NewAppState(workDir string, decompress bool) *AppState {
	return &AppState{
		WorkDir:    workDir,
		Decompress: decompress,
	}
}

// SetStatus shows a message and returns its sequence number
func (s *AppState) SetStatus(a domain.Advisory) int {
	s.Status = a
	s.StatusSeq++
	return s.StatusSeq
}

// ClearStatus clears the message if no newer one replaced it
func (s *AppState) ClearStatus(seq int) {
	if seq == s.StatusSeq {
		s.Status = domain.Advisory{}
	}
}

// SetConsole replaces the console lines
func (s *AppState) SetConsole(lines []string) {
	s.ConsoleLines = append(s.ConsoleLines[:0:0], lines...)
}

// AppendConsole adds lines to the console
func (s *AppState) AppendConsole(lines ...string) {
	s.ConsoleLines = append(s.ConsoleLines, lines...)
}
