package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/loop"
)

// NewLoop returns the UI loop: funcs posted to it run inside Update, in
// post order. Close it after the program exited.
func NewLoop(p *tea.Program) *loop.Pump {
	return loop.NewPump(func(fn func()) {
		p.Send(runMsg{fn: fn})
	})
}
