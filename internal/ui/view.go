package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

// chatChromeRows is the number of rows around the transcript: header, blank
// lines, thinking indicator, input, suggestion, status and footer.
const chatChromeRows = 10

var footers = map[uistate.Mode]string{
	uistate.ModeChat:    "enter send  tab complete  pgup/pgdn scroll  F1-F3 mode  ctrl+t theme  ctrl+l login  esc quit",
	uistate.ModeDraft:   "tab next field  ctrl+s generate  ↑/↓ choose  enter select/send  esc back  F1-F3 mode",
	uistate.ModeMeeting: "tab next field  space toggle time  ctrl+s schedule  ctrl+y copy link  F1-F3 mode  esc quit",
}

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []styledLine{m.headerLine(), {}}
	switch {
	case m.alert != nil:
		lines = append(lines, m.viewAlert()...)
	case m.login != nil:
		lines = append(lines, m.viewLoginForm()...)
	default:
		lines = append(lines, m.viewSection()...)
	}
	lines = append(lines, styledLine{})
	lines = append(lines, m.statusLine())
	if m.showFooter {
		lines = append(lines, styledLine{text: footers[m.modes.Active()], style: m.styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// viewSection renders the one visible mode.
func (m *Model) viewSection() []styledLine {
	switch m.modes.Active() {
	case uistate.ModeDraft:
		return m.viewDraft()
	case uistate.ModeMeeting:
		return m.viewMeeting()
	default:
		return m.viewChat()
	}
}

func (m *Model) headerLine() styledLine {
	parts := []string{m.styles.Header.Render("InboxAI")}
	for i, mode := range uistate.Modes {
		label := mode.Title() + " F" + string(rune('1'+i))
		if m.modes.Indicator(mode) {
			parts = append(parts, m.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, m.styles.Tab.Render(label))
		}
	}
	return styledLine{text: strings.Join(parts, " "), raw: true}
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: "Error: " + m.errMsg, style: m.styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: m.styles.Success}
	}
	var parts []string
	switch {
	case !m.auth.Known():
		parts = append(parts, m.styles.Label.Render("○ checking login…"))
	case m.auth.LoggedIn():
		parts = append(parts, m.styles.Success.Render("● "+m.auth.Status().User))
	default:
		parts = append(parts, m.styles.Warning.Render("○ not logged in (ctrl+l)"))
	}
	if !m.health.Healthy() {
		parts = append(parts, m.styles.Warning.Render("backend unreachable"))
	}
	return styledLine{text: strings.Join(parts, "  "), raw: true}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.layout()
	return nil
}

// layout sizes the transcript viewport and inputs to the window.
func (m *Model) layout() {
	if m.height > 0 {
		h := m.height - chatChromeRows
		if !m.showFooter {
			h++
		}
		if h < 3 {
			h = 3
		}
		m.chat.viewport.Height = h
	}
	if m.width > 0 {
		m.chat.viewport.Width = m.width
		m.chat.input.Width = m.width - 4
	}
	m.chat.dirty = true
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw || line.style == nil {
			out[i] = line.text
			continue
		}
		out[i] = line.style.Render(line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
