package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/ui/input/types"
)

// ProgressMode swallows input while the progress dialog is up. It cannot
// be dismissed by the user.
type ProgressMode struct{}

func NewProgressMode() *ProgressMode {
	return &ProgressMode{}
}

func (m *ProgressMode) Name() string {
	return "progress"
}

func (m *ProgressMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ProgressMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ProgressMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q", "esc":
		return []types.Action{types.BusyAction{}}, true
	}
	return nil, true
}
