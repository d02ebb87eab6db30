package domain

// AdvisoryKind classifies the short transient messages shown to the user
type AdvisoryKind string

const (
	AdviseBusy            AdvisoryKind = "busy"
	AdviseNoProjects      AdvisoryKind = "no_projects"
	AdviseNothingToRemove AdvisoryKind = "nothing_to_remove"
	AdviseInvalidInput    AdvisoryKind = "invalid_input"
	AdviseFailed          AdvisoryKind = "failed"
	AdviseDone            AdvisoryKind = "done"
)

// Advisory is a short message for the advisory surface
type Advisory struct {
	Kind    AdvisoryKind
	Message string
}

// Messages shown for the fixed advisory kinds
const (
	MsgBusy            = "ABIK is running, please wait"
	MsgNoProjects      = "No projects found"
	MsgNothingToRemove = "Nothing to remove"
	MsgInvalidInput    = "Could not open input file"
)

// BusyAdvisory is shown whenever the run guard denies a request
func BusyAdvisory() Advisory {
	return Advisory{Kind: AdviseBusy, Message: MsgBusy}
}
