package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

const (
	draftReceiver = iota
	draftIntent
	draftTone
	draftContext
)

type draftState struct {
	wizard  *uistate.Wizard
	fields  []*field
	focus   int
	pending bool
}

func newDraftState(mode cursor.Mode) draftState {
	return draftState{
		wizard: uistate.NewWizard(),
		fields: []*field{
			draftReceiver: newField("To", "name@example.com", 320, mode),
			draftIntent:   newField("Intent", "what should the email say?", 500, mode),
			draftTone:     newField("Tone", uistate.DefaultTone, 40, mode),
			draftContext:  newField("Context", "optional background", 2000, mode),
		},
	}
}

func (d *draftState) inputs() uistate.DraftInputs {
	return uistate.DraftInputs{
		Receiver: d.fields[draftReceiver].Value(),
		Intent:   d.fields[draftIntent].Value(),
		Tone:     d.fields[draftTone].Value(),
		Context:  d.fields[draftContext].Value(),
	}
}

// resetDraft empties the wizard and its form.
func (m *Model) resetDraft() tea.Cmd {
	m.draft = newDraftState(m.cursorMode)
	return focusFields(m.draft.fields, 0)
}

func (m *Model) handleDraftKey(msg tea.KeyMsg) tea.Cmd {
	step := m.draft.wizard.Step()
	// The wizard holds its step while a request is out; only copying the
	// confirmed draft stays available.
	if m.draft.pending && step != uistate.StepInputs && msg.String() != "ctrl+y" {
		return nil
	}
	switch step {
	case uistate.StepReview:
		return m.handleDraftReviewKey(msg)
	case uistate.StepConfirm:
		return m.handleDraftConfirmKey(msg)
	default:
		return m.handleDraftInputKey(msg)
	}
}

func (m *Model) handleDraftInputKey(msg tea.KeyMsg) tea.Cmd {
	d := &m.draft
	switch msg.String() {
	case "tab", "down":
		d.focus = nextFocus(d.fields, d.focus, 1)
		return focusFields(d.fields, d.focus)
	case "shift+tab", "up":
		d.focus = nextFocus(d.fields, d.focus, -1)
		return focusFields(d.fields, d.focus)
	case "ctrl+s":
		return m.generateDrafts()
	case "enter":
		if d.focus == len(d.fields)-1 {
			return m.generateDrafts()
		}
		d.focus = nextFocus(d.fields, d.focus, 1)
		return focusFields(d.fields, d.focus)
	case "esc":
		return tea.Quit
	}
	var cmd tea.Cmd
	f := d.fields[d.focus]
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// generateDrafts validates step one and requests candidates. The wizard only
// advances once a well-formed result arrives.
func (m *Model) generateDrafts() tea.Cmd {
	if m.draft.pending {
		m.setInfo("Generating drafts…")
		return nil
	}
	req, err := m.draft.wizard.Generate(m.draft.inputs(), m.auth.LoggedIn())
	if err != nil {
		m.showAlert("Cannot generate drafts", validationMessage(err))
		return nil
	}
	start, ok := m.run("draft:generate", "generate drafts", action.GenerateDrafts(m.actx, req))
	if !ok {
		return nil
	}
	m.draft.pending = true
	events.Draft.Generate(req.Receiver, req.Tone)
	return tea.Batch(start, m.chat.spinner.Tick)
}

func (m *Model) handleDraftsResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.DraftsResult)
	if !ok {
		return nil
	}
	m.draft.pending = false
	if res.Err != nil {
		logging.Error(res.Err)
		if api.IsUnauthorized(res.Err) {
			m.showAlert("Login required", loginRequired)
			return m.unauthorized()
		}
		m.showAlert("Could not generate drafts", failureMessage(res.Err))
		return nil
	}
	if err := m.draft.wizard.Generated(res.Drafts); err != nil {
		m.showAlert("Could not generate drafts", failureMessage(err))
		return nil
	}
	events.Draft.Generated(len(res.Drafts))
	events.Draft.Step(int(uistate.StepInputs), int(uistate.StepReview), "")
	return nil
}

func (m *Model) handleDraftReviewKey(msg tea.KeyMsg) tea.Cmd {
	w := m.draft.wizard
	switch msg.String() {
	case "up", "k", "shift+tab":
		w.MoveCursor(-1)
	case "down", "j", "tab":
		w.MoveCursor(1)
	case "enter", " ":
		return m.selectDraft(w.Cursor())
	case "esc", "backspace":
		if err := w.Back(); err == nil {
			events.Draft.Step(int(uistate.StepReview), int(uistate.StepInputs), events.DraftReasonBack)
		}
		return focusFields(m.draft.fields, m.draft.focus)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil {
			return m.selectDraft(n - 1)
		}
	}
	return nil
}

// selectDraft selects candidate idx and moves to confirmation.
func (m *Model) selectDraft(idx int) tea.Cmd {
	w := m.draft.wizard
	if err := w.Select(idx); err != nil {
		m.showAlert("Select a draft", validationMessage(err))
		return nil
	}
	events.Draft.Select(idx)
	d, err := w.Confirm()
	if err != nil {
		m.showAlert("Select a draft", validationMessage(err))
		return nil
	}
	events.Draft.Confirm(idx, d.Subject)
	events.Draft.Step(int(uistate.StepReview), int(uistate.StepConfirm), "")
	return nil
}

func (m *Model) handleDraftConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "ctrl+s":
		return m.sendDraft()
	case "ctrl+y":
		if d, ok := m.draft.wizard.Confirmed(); ok {
			return action.CopyText(m.actx, "draft", d.Subject+"\n\n"+d.Body)
		}
	case "esc":
		if err := m.draft.wizard.Cancel(); err == nil {
			events.Draft.Step(int(uistate.StepConfirm), int(uistate.StepReview), events.DraftReasonCancel)
		}
	}
	return nil
}

// sendDraft delivers the confirmed draft. Nothing is sent without a
// selection.
func (m *Model) sendDraft() tea.Cmd {
	if m.draft.pending {
		return nil
	}
	req, err := m.draft.wizard.Send()
	if err != nil {
		m.showAlert("Cannot send", validationMessage(err))
		return nil
	}
	start, ok := m.run("draft:send", "send email", action.SendEmail(m.actx, req))
	if !ok {
		return nil
	}
	m.draft.pending = true
	events.Draft.Send(req.To, req.Subject)
	return tea.Batch(start, m.chat.spinner.Tick)
}

func (m *Model) handleSendResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.SendResult)
	if !ok {
		return nil
	}
	m.draft.pending = false
	if res.Err != nil {
		logging.Error(res.Err)
		if api.IsUnauthorized(res.Err) {
			m.showAlert("Login required", loginRequired)
			return m.unauthorized()
		}
		m.showAlert("Could not send email", failureMessage(res.Err))
		return nil
	}
	m.draft.wizard.Sent()
	events.Draft.Sent(res.Request.To)
	events.Draft.Step(int(uistate.StepConfirm), int(uistate.StepInputs), events.DraftReasonReset)
	info := fmt.Sprintf("Email sent to %s", res.Request.To)
	if reply := strings.TrimSpace(res.Reply); reply != "" {
		info = reply
	}
	m.setInfo(info)
	if m.modes.Active() == uistate.ModeDraft {
		return m.resetDraft()
	}
	m.draft = newDraftState(m.cursorMode)
	return nil
}

func (m *Model) viewDraft() []styledLine {
	w := m.draft.wizard
	step := w.Step()
	lines := []styledLine{
		{text: fmt.Sprintf("Draft an email · step %d/3", step), style: m.styles.Header},
		{},
	}
	switch step {
	case uistate.StepReview:
		lines = append(lines, m.viewDraftCandidates()...)
	case uistate.StepConfirm:
		lines = append(lines, m.viewDraftConfirm()...)
	default:
		lines = append(lines, m.viewFields(m.draft.fields, m.draft.focus)...)
	}
	if m.draft.pending {
		lines = append(lines, styledLine{}, styledLine{text: m.chat.spinner.View() + " " + m.styles.Loading.Render("Working…"), raw: true})
	}
	return lines
}

func (m *Model) viewDraftCandidates() []styledLine {
	w := m.draft.wizard
	var lines []styledLine
	selected, hasSelection := w.Selected()
	width := m.width - 4
	if width < 20 {
		width = 60
	}
	for i, d := range w.Drafts() {
		style := m.styles.Card
		if i == w.Cursor() {
			style = m.styles.CursorCard
		}
		if hasSelection && i == selected {
			style = m.styles.SelectedCard
		}
		body := fmt.Sprintf("%d. %s\n\n%s", i+1, d.Subject, wordwrap.String(d.Body, width-4))
		for _, line := range strings.Split(style.Render(body), "\n") {
			lines = append(lines, styledLine{text: line, raw: true})
		}
	}
	return lines
}

func (m *Model) viewDraftConfirm() []styledLine {
	d, _ := m.draft.wizard.Confirmed()
	in := m.draft.wizard.Inputs()
	lines := []styledLine{
		{text: "To: " + in.Receiver, style: m.styles.ReadOnly},
		{text: "Subject: " + d.Subject, style: m.styles.ReadOnly},
		{},
	}
	for _, line := range strings.Split(d.Body, "\n") {
		lines = append(lines, styledLine{text: line, style: m.styles.ReadOnly})
	}
	return lines
}

// viewFields renders a labelled form with the focused label highlighted.
func (m *Model) viewFields(fields []*field, focus int) []styledLine {
	width := 0
	for _, f := range fields {
		if n := len([]rune(f.label)); n > width {
			width = n
		}
	}
	lines := make([]styledLine, 0, len(fields))
	for i, f := range fields {
		labelStyle := m.styles.Label
		if i == focus {
			labelStyle = m.styles.FocusedLabel
		}
		label := labelStyle.Render(fmt.Sprintf("%*s", width, f.label))
		value := f.input.View()
		if len(f.choices) > 0 {
			value = m.viewChoices(f, i == focus)
		} else if f.readOnly {
			value = m.styles.ReadOnly.Render(f.input.Value() + " (now)")
		}
		lines = append(lines, styledLine{text: label + "  " + value, raw: true})
	}
	return lines
}

func (m *Model) viewChoices(f *field, focused bool) string {
	parts := make([]string, len(f.choices))
	for i, c := range f.choices {
		switch {
		case i == f.choice && focused:
			parts[i] = m.styles.ActiveTab.Render(c)
		case i == f.choice:
			parts[i] = m.styles.FocusedLabel.Render("[" + c + "]")
		default:
			parts[i] = m.styles.Label.Render(" " + c + " ")
		}
	}
	return strings.Join(parts, " ")
}
