package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/ui/input/types"
)

// ChooseMode drives the single and multi choice dialogs
type ChooseMode struct {
	keys  types.KeyMap
	multi bool
}

func NewChooseOneMode(keys types.KeyMap) *ChooseMode {
	return &ChooseMode{keys: keys}
}

func NewChooseManyMode(keys types.KeyMap) *ChooseMode {
	return &ChooseMode{keys: keys, multi: true}
}

func (m *ChooseMode) Name() string {
	if m.multi {
		return "choose-many"
	}
	return "choose-one"
}

func (m *ChooseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ChooseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ChooseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.MoveCursorAction{Delta: -1}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.MoveCursorAction{Delta: 1}}, true
	case key.Matches(msg, m.keys.Confirm):
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
			types.ConfirmChoiceAction{},
		}, true
	case key.Matches(msg, m.keys.Cancel):
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
			types.DismissChoiceAction{},
		}, true
	}

	if m.multi {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return []types.Action{types.ToggleItemAction{}}, true
		case key.Matches(msg, m.keys.ToggleAll):
			return []types.Action{types.ToggleAllAction{}}, true
		}
	}

	// Dialogs are modal
	return nil, true
}
