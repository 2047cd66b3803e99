package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

const (
	chatErrorReply = "Sorry, something went wrong. Please try again."
	loginRequired  = "Please log in to use InboxAI (press ctrl+l)."
)

type bubbleRole int

const (
	bubbleUser bubbleRole = iota
	bubbleBot
	bubbleError
)

type bubble struct {
	role bubbleRole
	text string
	link string
}

type chatState struct {
	input    textinput.Model
	bubbles  []bubble
	history  uistate.History
	pending  bool
	spinner  spinner.Model
	viewport viewport.Model
	dirty    bool
}

func newChatState(mode cursor.Mode) chatState {
	ti := newInput("Ask InboxAI…", 2000, mode)
	ti.Prompt = "> "
	return chatState{
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(0, 0),
	}
}

func (c *chatState) addBubble(role bubbleRole, text, link string) {
	c.bubbles = append(c.bubbles, bubble{role: role, text: text, link: link})
	c.dirty = true
}

// suggestion returns the quick command tab would complete to.
func (c *chatState) suggestion() string {
	value := c.input.Value()
	if strings.TrimSpace(value) == "" {
		return ""
	}
	best, ok := uistate.BestSuggestion(uistate.QuickCommands, value)
	if !ok || best == value {
		return ""
	}
	return best
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.sendChat()
	case "tab":
		if s := m.chat.suggestion(); s != "" {
			events.Chat.Complete(m.chat.input.Value(), s)
			m.chat.input.SetValue(s)
			m.chat.input.CursorEnd()
		}
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chat.viewport, cmd = m.chat.viewport.Update(msg)
		return cmd
	case "esc":
		if m.chat.input.Value() != "" {
			m.chat.input.SetValue("")
			return nil
		}
		return tea.Quit
	}
	var cmd tea.Cmd
	m.chat.input, cmd = m.chat.input.Update(msg)
	return cmd
}

// sendChat posts the input as a command with the history window that
// precedes it.
func (m *Model) sendChat() tea.Cmd {
	text := strings.TrimSpace(m.chat.input.Value())
	if text == "" {
		events.Chat.Rejected(uistate.ErrEmptyCommand.Error())
		return nil
	}
	if m.chat.pending {
		events.Chat.Rejected("pending")
		m.setInfo("Still thinking…")
		return nil
	}
	history := m.chat.history.Window()
	start, ok := m.run("chat", "command", action.SendCommand(m.actx, text, history))
	if !ok {
		m.setInfo("Still thinking…")
		return nil
	}
	m.chat.input.SetValue("")
	m.chat.addBubble(bubbleUser, text, "")
	m.chat.history.Append(api.RoleUser, text)
	m.chat.pending = true
	events.Chat.Send(text, len(history))
	return tea.Batch(start, m.chat.spinner.Tick)
}

func (m *Model) handleChatResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.ChatResult)
	if !ok {
		return nil
	}
	m.chat.pending = false
	if res.Err != nil {
		logging.Error(res.Err)
		if api.IsUnauthorized(res.Err) {
			m.botSays(bubbleError, loginRequired, "")
			return m.unauthorized()
		}
		m.botSays(bubbleError, chatErrorReply, "")
		return nil
	}
	reply := strings.TrimSpace(res.Response.Reply)
	m.chat.history.Append(api.RoleAssistant, reply)
	m.botSays(bubbleBot, reply, res.Response.MeetLink)
	if res.Response.MeetLink != "" {
		m.meeting.link = res.Response.MeetLink
	}
	events.Chat.Reply(len(reply))
	return nil
}

// botSays appends a bot bubble and speaks it.
func (m *Model) botSays(role bubbleRole, text, link string) {
	m.chat.addBubble(role, text, link)
	m.speaker.Speak(text)
}

func (m *Model) handleSpinnerTick(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.chat.pending {
		return nil
	}
	var cmd tea.Cmd
	m.chat.spinner, cmd = m.chat.spinner.Update(tick)
	return cmd
}

// transcript renders every bubble for the given width.
func (m *Model) transcript(width int) string {
	wrap := width - 4
	var b strings.Builder
	for i, bub := range m.chat.bubbles {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch bub.role {
		case bubbleUser:
			b.WriteString(m.styles.UserBubble.Render("You: " + bub.text))
		case bubbleError:
			b.WriteString(m.styles.ErrorBubble.Render(bub.text))
		default:
			b.WriteString(m.markdown.Render(bub.text, string(m.themeName), wrap))
			if bub.link != "" {
				b.WriteString("\n")
				b.WriteString("Meeting link: " + m.styles.Link.Render(bub.link))
			}
		}
	}
	return b.String()
}

// syncTranscript refreshes the viewport after bubbles change.
func (m *Model) syncTranscript() {
	if !m.chat.dirty {
		return
	}
	m.chat.dirty = false
	m.chat.viewport.SetContent(m.transcript(m.width))
	m.chat.viewport.GotoBottom()
}

func (m *Model) viewChat() []styledLine {
	var lines []styledLine
	body := m.transcript(m.width)
	if m.chat.viewport.Height > 0 {
		body = m.chat.viewport.View()
	}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	lines = append(lines, styledLine{})
	if m.chat.pending {
		lines = append(lines, styledLine{text: m.chat.spinner.View() + " " + m.styles.Loading.Render("Thinking…"), raw: true})
	}
	lines = append(lines, styledLine{text: m.chat.input.View(), raw: true})
	if s := m.chat.suggestion(); s != "" {
		lines = append(lines, styledLine{text: "tab → " + s, style: m.styles.Suggestion})
	}
	return lines
}
