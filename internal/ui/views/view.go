package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"abik/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	WorkDir    string
	Projects   int
	Decompress bool
	Unsaved    bool
	LastClean  string
	Running    string // name of the running operation, empty when idle
	Spinner    string
	Console    string // rendered console viewport
	ScrollInfo string
	Status     domain.Advisory
	Prompt     string
	TextInput  string
	Dialog     *DialogState
	Progress   *ProgressState
	ShowHelp   bool
	HelpText   string // full help, shown as a popup
	HelpLine   string // short help at the bottom
}

// DialogState is a choice dialog ready for rendering
type DialogState struct {
	Title    string
	Options  []string
	Cursor   int // -1: nothing highlighted
	Multi    bool
	Checked  []bool
	HelpLine string
}

// ProgressState is the modal progress indicator
type ProgressState struct {
	Title   string
	Message string
	Spinner string
	Step    int // 0 when unknown
	Total   int
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

func (r *Renderer) Styles() *Styles {
	return r.styles
}

// ChromeHeight is the number of rows around the console box
func (r *Renderer) ChromeHeight(prompting bool) int {
	// title, work dir, console border (2), status, help
	h := 6
	if prompting {
		h++
	}
	return h
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderInfoLine(state))
	content.WriteString("\n")

	if state.Prompt != "" {
		content.WriteString(r.styles.Prompt.Render(state.Prompt))
		content.WriteString(state.TextInput)
		content.WriteString("\n")
	}

	boxWidth := state.Width - 4
	if boxWidth < 20 {
		boxWidth = 20
	}
	content.WriteString(r.styles.ConsoleBox.Width(boxWidth).Render(state.Console))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpLine))

	finalContent := r.styles.Main.Render(content.String())

	// Popups
	switch {
	case state.Progress != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderProgress(state.Progress), state.Height, state.Width, r.styles.DialogBox)
	case state.Dialog != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderDialog(state.Dialog), state.Height, state.Width, r.styles.DialogBox)
	case state.ShowHelp:
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpText, state.Height, state.Width, r.styles.InfoBox)
	}
	return finalContent
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("ABIK")

	right := ""
	if state.Running != "" {
		right = r.styles.StatusBusy.Render(fmt.Sprintf("%s %s running", state.Spinner, state.Running))
	}
	if state.ScrollInfo != "" {
		if right != "" {
			right += "  "
		}
		right += r.styles.Scroll.Render(state.ScrollInfo)
	}
	if right == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderInfoLine(state ViewState) string {
	decompress := "off"
	if state.Decompress {
		decompress = "on"
	}
	projects := "no projects"
	switch {
	case state.Projects == 1:
		projects = "1 project"
	case state.Projects > 1:
		projects = fmt.Sprintf("%d projects", state.Projects)
	}
	if state.Unsaved {
		decompress += " (unsaved)"
	}
	line := fmt.Sprintf("Working dir: %s (%s)  Decompress ramdisk: %s", state.WorkDir, projects, decompress)
	if state.LastClean != "" {
		line += "  Last clean: " + state.LastClean
	}
	return r.styles.Dim.Render(line)
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.Status.Message == "" {
		return ""
	}
	switch state.Status.Kind {
	case domain.AdviseFailed, domain.AdviseInvalidInput:
		return r.styles.StatusError.Render(state.Status.Message)
	case domain.AdviseBusy, domain.AdviseNoProjects, domain.AdviseNothingToRemove:
		return r.styles.StatusWarning.Render(state.Status.Message)
	case domain.AdviseDone:
		return r.styles.StatusSuccess.Render(state.Status.Message)
	default:
		return r.styles.Status.Render(state.Status.Message)
	}
}

// RenderConsoleLine colors a console line by its level prefix
func (r *Renderer) RenderConsoleLine(line string) string {
	if strings.HasPrefix(line, "[ERROR]") {
		return r.styles.ConsoleError.Render(line)
	}
	return r.styles.ConsoleInfo.Render(line)
}

func (r *Renderer) renderDialog(d *DialogState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(d.Title))
	b.WriteString("\n\n")

	for i, opt := range d.Options {
		cursor := "  "
		if i == d.Cursor {
			cursor = r.styles.Highlight.Render("> ")
		}

		mark := ""
		if d.Multi {
			mark = "[ ] "
			if i < len(d.Checked) && d.Checked[i] {
				mark = r.styles.Checked.Render("[x] ")
			}
		} else {
			mark = "( ) "
			if i == d.Cursor {
				mark = r.styles.Checked.Render("(•) ")
			}
		}

		label := opt
		if i == d.Cursor {
			label = r.styles.Highlight.Render(opt)
		}
		b.WriteString(cursor + mark + label + "\n")
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render(d.HelpLine))
	return b.String()
}

func (r *Renderer) renderProgress(p *ProgressState) string {
	msg := p.Message
	if p.Step > 0 {
		msg = fmt.Sprintf("%s (%d/%d)", msg, p.Step, p.Total)
	}
	return fmt.Sprintf("%s\n\n%s %s", r.styles.Title.Render(p.Title), p.Spinner, msg)
}
