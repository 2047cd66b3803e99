package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Name identifies a style set.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Parse accepts "dark" or "light" in any case.
func Parse(raw string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(raw))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want dark or light)", raw)
	}
}

// Toggle returns the other theme.
func (n Name) Toggle() Name {
	if n == Light {
		return Dark
	}
	return Light
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Name Name

	Header       *lipgloss.Style
	Tab          *lipgloss.Style
	ActiveTab    *lipgloss.Style
	UserBubble   *lipgloss.Style
	BotBubble    *lipgloss.Style
	ErrorBubble  *lipgloss.Style
	Loading      *lipgloss.Style
	Label        *lipgloss.Style
	FocusedLabel *lipgloss.Style
	ReadOnly     *lipgloss.Style
	Card         *lipgloss.Style
	CursorCard   *lipgloss.Style
	SelectedCard *lipgloss.Style
	Link         *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Success      *lipgloss.Style
	Warning      *lipgloss.Style
	Alert        *lipgloss.Style
	Footer       *lipgloss.Style
	Suggestion   *lipgloss.Style
	Cursor       *lipgloss.Style
}

type palette struct {
	accent, text, muted, faint, surface, userText, userBg, botBg, danger, ok, warn string
}

var (
	darkPalette = palette{
		accent: "33", text: "252", muted: "245", faint: "238", surface: "236",
		userText: "255", userBg: "25", botBg: "237", danger: "196", ok: "42", warn: "214",
	}
	lightPalette = palette{
		accent: "26", text: "236", muted: "243", faint: "250", surface: "254",
		userText: "255", userBg: "33", botBg: "253", danger: "160", ok: "28", warn: "130",
	}

	darkStyles  = build(Dark, darkPalette)
	lightStyles = build(Light, lightPalette)
)

func build(name Name, p palette) Styles {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Styles{
		Name: name,
		Header: ptr(
			lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
		),
		Tab: ptr(
			lipgloss.NewStyle().Foreground(c(p.muted)).Padding(0, 1),
		),
		ActiveTab: ptr(
			lipgloss.NewStyle().Foreground(c(p.userText)).Background(c(p.accent)).Bold(true).Padding(0, 1),
		),
		UserBubble: ptr(
			lipgloss.NewStyle().Foreground(c(p.userText)).Background(c(p.userBg)).Padding(0, 1),
		),
		BotBubble: ptr(
			lipgloss.NewStyle().Foreground(c(p.text)).Background(c(p.botBg)).Padding(0, 1),
		),
		ErrorBubble: ptr(
			lipgloss.NewStyle().Foreground(c(p.danger)).Background(c(p.botBg)).Padding(0, 1),
		),
		Loading: ptr(
			lipgloss.NewStyle().Foreground(c(p.accent)).Italic(true),
		),
		Label: ptr(
			lipgloss.NewStyle().Foreground(c(p.muted)),
		),
		FocusedLabel: ptr(
			lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
		),
		ReadOnly: ptr(
			lipgloss.NewStyle().Foreground(c(p.muted)).Italic(true),
		),
		Card: ptr(
			lipgloss.NewStyle().Foreground(c(p.text)).Border(lipgloss.NormalBorder()).BorderForeground(c(p.faint)).Padding(0, 1),
		),
		CursorCard: ptr(
			lipgloss.NewStyle().Foreground(c(p.text)).Border(lipgloss.NormalBorder()).BorderForeground(c(p.accent)).Padding(0, 1),
		),
		SelectedCard: ptr(
			lipgloss.NewStyle().Foreground(c(p.text)).Border(lipgloss.ThickBorder()).BorderForeground(c(p.ok)).Padding(0, 1),
		),
		Link: ptr(
			lipgloss.NewStyle().Foreground(c(p.accent)).Underline(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(c(p.danger)).Bold(true),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(c(p.text)),
		),
		Success: ptr(
			lipgloss.NewStyle().Foreground(c(p.ok)).Bold(true),
		),
		Warning: ptr(
			lipgloss.NewStyle().Foreground(c(p.warn)),
		),
		Alert: ptr(
			lipgloss.NewStyle().Foreground(c(p.text)).Background(c(p.surface)).Border(lipgloss.RoundedBorder()).BorderForeground(c(p.danger)).Padding(0, 2),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(c(p.muted)),
		),
		Suggestion: ptr(
			lipgloss.NewStyle().Foreground(c(p.faint)),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(c(p.surface)).Background(c(p.accent)),
		),
	}
}

// For returns the style set for name; unknown names get the dark set.
func For(name Name) *Styles {
	if name == Light {
		return &lightStyles
	}
	return &darkStyles
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &darkStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
