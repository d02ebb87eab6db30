package app

import (
	"abik/internal/domain"
	"abik/internal/selection"
)

// Surface is the host UI the workflows report to. Every method is called
// on the interaction loop and must not block.
type Surface interface {
	// Advise shows a short transient message
	Advise(a domain.Advisory)
	// ChooseOne asks for a single pick. reply gets the index, or -1 when
	// confirmed with nothing highlighted. Dismissing never calls reply.
	ChooseOne(title string, options []string, reply func(int))
	// ChooseMany asks for a subset. reply gets nil when cancelled.
	ChooseMany(title string, options []string, reply func(*selection.Set))
	// ShowProgress opens or updates the modal progress indicator
	ShowProgress(title, message string)
	HideProgress()
}
