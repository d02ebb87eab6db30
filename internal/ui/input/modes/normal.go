package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// While help is open only a few keys do anything
	if ctx.HelpVisible() {
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return []types.Action{types.QuitAction{Force: true}}, true
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			return []types.Action{types.ToggleHelpAction{}}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Extract):
		// The path prompt is refused up front, like a file picker would be
		if ctx.Busy() {
			return []types.Action{types.BusyAction{}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeExtractPath}}, true
	case key.Matches(msg, m.keys.Build):
		return []types.Action{types.BuildAction{}}, true
	case key.Matches(msg, m.keys.Clean):
		return []types.Action{types.CleanAction{}}, true
	case key.Matches(msg, m.keys.Decompress):
		return []types.Action{types.ToggleDecompressAction{}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.ScrollAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.ScrollAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.Top):
		return []types.Action{types.ScrollAction{Direction: "home"}}, true
	case key.Matches(msg, m.keys.Bottom):
		return []types.Action{types.ScrollAction{Direction: "end"}}, true
	}

	return nil, false
}
