package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/domain"
	"abik/internal/ui/state"
)

// ProjectCountMsg carries a fresh count of projects in the working directory
type ProjectCountMsg struct {
	Count int
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state        *state.AppState
	countProject func() int
}

// NewEventHandler creates a new event handler. countProjects runs off the
// UI loop and must be safe to call from any goroutine.
func NewEventHandler(appState *state.AppState, countProjects func() int) *EventHandler {
	return &EventHandler{
		state:        appState,
		countProject: countProjects,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event domain.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.OperationStartedEvent:
		h.state.Running = e.Name
		h.state.RunningSince = e.At

	case domain.OperationFinishedEvent:
		h.state.Running = ""
		res := e.Result
		h.state.LastResult = &res
		return h.Recount()

	case domain.WorkDirChangedEvent:
		return h.Recount()

	case domain.DeletionProgressEvent:
		h.state.Deleting = &state.DeleteCount{Step: e.Completed + 1, Total: e.Total}

	case domain.DeletionCompletedEvent:
		h.state.Deleting = nil
		h.state.LastClean = &e
		return h.Recount()

	case domain.ConfigSavedEvent:
		h.state.Unsaved = false

	case domain.ErrorEvent:
		h.state.SetStatus(domain.Advisory{Kind: domain.AdviseFailed, Message: fmt.Sprintf("Error: %s", e.Message)})
	}

	return nil
}

// Recount lists the working directory in the background
func (h *EventHandler) Recount() tea.Cmd {
	if h.countProject == nil {
		return nil
	}
	count := h.countProject
	return func() tea.Msg {
		return ProjectCountMsg{Count: count()}
	}
}
