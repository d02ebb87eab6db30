package types

// Console navigation
type ScrollAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a ScrollAction) Type() string { return "scroll" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Workflow actions
type BuildAction struct{}

func (a BuildAction) Type() string { return "build" }

type CleanAction struct{}

func (a CleanAction) Type() string { return "clean" }

type ToggleDecompressAction struct{}

func (a ToggleDecompressAction) Type() string { return "toggle_decompress" }

// BusyAction shows the busy advisory without starting anything
type BusyAction struct{}

func (a BusyAction) Type() string { return "busy" }

// Dialog actions
type MoveCursorAction struct {
	Delta int
}

func (a MoveCursorAction) Type() string { return "move_cursor" }

type ToggleItemAction struct{}

func (a ToggleItemAction) Type() string { return "toggle_item" }

type ToggleAllAction struct{}

func (a ToggleAllAction) Type() string { return "toggle_all" }

type ConfirmChoiceAction struct{}

func (a ConfirmChoiceAction) Type() string { return "confirm_choice" }

type DismissChoiceAction struct{}

func (a DismissChoiceAction) Type() string { return "dismiss_choice" }

// UI actions
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
