package state

import "abik/internal/selection"

// Dialog is an open choice dialog. A single-choice dialog starts with
// nothing highlighted; confirming it like that replies -1.
type Dialog struct {
	Title   string
	Options []string
	Cursor  int
	Multi   bool

	sel       *selection.Set
	replyOne  func(int)
	replyMany func(*selection.Set)
	closed    bool
}

func NewChooseOne(title string, options []string, reply func(int)) *Dialog {
	return &Dialog{Title: title, Options: options, Cursor: -1, replyOne: reply}
}

func NewChooseMany(title string, options []string, reply func(*selection.Set)) *Dialog {
	return &Dialog{
		Title:     title,
		Options:   options,
		Multi:     true,
		sel:       selection.New(len(options)),
		replyMany: reply,
	}
}

// Move shifts the cursor by delta, clamped to the options
func (d *Dialog) Move(delta int) {
	if len(d.Options) == 0 {
		return
	}
	if d.Cursor < 0 {
		if delta > 0 {
			d.Cursor = 0
		} else {
			d.Cursor = len(d.Options) - 1
		}
		return
	}
	d.Cursor = min(max(d.Cursor+delta, 0), len(d.Options)-1)
}

// Toggle flips the highlighted item of a multi-choice dialog
func (d *Dialog) Toggle() {
	if d.Multi && d.Cursor >= 0 {
		d.sel.Toggle(d.Cursor)
	}
}

// ToggleAll selects everything unless everything is selected already
func (d *Dialog) ToggleAll() {
	if d.Multi {
		d.sel.ToggleAll()
	}
}

// Checked reports the selection state per option
func (d *Dialog) Checked() []bool {
	checked := make([]bool, len(d.Options))
	if d.sel != nil {
		for _, i := range d.sel.Indices() {
			checked[i] = true
		}
	}
	return checked
}

// Confirm replies with the current choice. Replies happen at most once.
func (d *Dialog) Confirm() {
	if d.closed {
		return
	}
	d.closed = true
	if d.Multi {
		d.replyMany(d.sel)
		return
	}
	d.replyOne(d.Cursor)
}

// Dismiss closes the dialog. A multi-choice dialog replies nil, a
// single-choice dialog does not reply at all.
func (d *Dialog) Dismiss() {
	if d.closed {
		return
	}
	d.closed = true
	if d.Multi {
		d.replyMany(nil)
	}
}
