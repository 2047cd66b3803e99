package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
)

// field is one labelled text input of a form.
type field struct {
	label    string
	input    textinput.Model
	readOnly bool
	// choices turns the field into a selector; choice indexes it.
	choices []string
	choice  int
}

func newInput(placeholder string, limit int, mode cursor.Mode) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Cursor.SetMode(mode)
	return ti
}

func newField(label, placeholder string, limit int, mode cursor.Mode) *field {
	return &field{label: label, input: newInput(placeholder, limit, mode)}
}

func (f *field) Value() string { return strings.TrimSpace(f.input.Value()) }

// focusFields focuses fields[idx] and blurs the rest.
func focusFields(fields []*field, idx int) tea.Cmd {
	var cmd tea.Cmd
	for i, f := range fields {
		if i == idx {
			cmd = f.input.Focus()
			continue
		}
		f.input.Blur()
	}
	return cmd
}

// nextFocus steps from idx by delta, wrapping and skipping read-only fields.
func nextFocus(fields []*field, idx, delta int) int {
	n := len(fields)
	if n == 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		idx = (idx + delta + n) % n
		if !fields[idx].readOnly {
			return idx
		}
	}
	return idx
}

// LoginForm asks for the backend session cookie after the login page has
// been opened in the browser.
type LoginForm struct {
	input textinput.Model
	url   string
	note  string
	err   string
}

func NewLoginForm(url string, openErr error, mode cursor.Mode) *LoginForm {
	ti := newInput("paste cookie value", 4096, mode)
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	note := "Opened the login page in your browser."
	if openErr != nil {
		note = "Could not open a browser. Visit the login page manually."
	}
	return &LoginForm{input: ti, url: url, note: note}
}

func (f *LoginForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *LoginForm) InputView() string { return f.input.View() }
func (f *LoginForm) Error() string     { return f.err }
func (f *LoginForm) URL() string       { return f.url }
func (f *LoginForm) Note() string      { return f.note }
func (f *LoginForm) Title() string     { return "Log in to InboxAI" }

func (f *LoginForm) Help() string {
	return "After signing in, copy the " + api.SessionCookie + " cookie and paste it here. Enter to submit. Esc to cancel."
}

func (f *LoginForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			events.Auth.LoginCancel()
			return nil, false, true
		case tea.KeyEnter:
			if f.Value() == "" {
				f.err = "Paste the session cookie first."
				return nil, false, false
			}
			f.err = ""
			return nil, true, false
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd, false, false
}

func (m *Model) startLoginForm(msg action.LoginOpened) tea.Cmd {
	m.login = NewLoginForm(msg.URL, msg.Err, m.cursorMode)
	events.Auth.LoginPrompt(msg.URL)
	return m.login.input.Focus()
}

func (m *Model) handleLoginForm(msg tea.Msg) tea.Cmd {
	if m.login == nil {
		return nil
	}
	cmd, done, cancel := m.login.Update(msg)
	if cancel {
		m.login = nil
		return m.focusActive()
	}
	if done {
		value := m.login.Value()
		m.login = nil
		start, ok := m.run("auth:login", "login", action.SubmitSession(m.actx, value))
		if !ok {
			m.setInfo("Login already in progress")
		}
		return tea.Batch(start, m.focusActive())
	}
	return cmd
}

func (m *Model) viewLoginForm() []styledLine {
	f := m.login
	lines := []styledLine{
		{text: f.Title(), style: m.styles.Header},
		{},
		{text: f.Note(), style: m.styles.Info},
		{text: f.URL(), style: m.styles.Link},
		{},
		{text: f.InputView(), raw: true},
	}
	if err := f.Error(); err != "" {
		lines = append(lines, styledLine{}, styledLine{text: err, style: m.styles.Error})
	}
	lines = append(lines, styledLine{}, styledLine{text: f.Help(), style: m.styles.Footer})
	return lines
}
