package state

import (
	"fmt"
	"strings"
)

// Mode is one of the mutually exclusive popup views.
type Mode int

const (
	ModeChat Mode = iota
	ModeDraft
	ModeMeeting
)

// Modes lists every mode in indicator order.
var Modes = []Mode{ModeChat, ModeDraft, ModeMeeting}

func (m Mode) String() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModeDraft:
		return "draft"
	case ModeMeeting:
		return "meeting"
	default:
		return "unknown"
	}
}

// Title is the indicator label.
func (m Mode) Title() string {
	switch m {
	case ModeChat:
		return "Chat"
	case ModeDraft:
		return "Draft"
	case ModeMeeting:
		return "Meeting"
	default:
		return "?"
	}
}

func (m Mode) valid() bool {
	return m >= ModeChat && m <= ModeMeeting
}

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(name), m.String()) {
			return m, nil
		}
	}
	return ModeChat, fmt.Errorf("%q: %w", name, ErrInvalidMode)
}

// Switcher tracks the active mode. Exactly one mode is visible and exactly
// one indicator is active at any time.
type Switcher struct {
	active  Mode
	entered map[Mode]int
}

// NewSwitcher starts in chat mode.
func NewSwitcher() *Switcher {
	return &Switcher{active: ModeChat, entered: map[Mode]int{ModeChat: 1}}
}

func (s *Switcher) Active() Mode { return s.active }

// Visible reports whether m's section is shown.
func (s *Switcher) Visible(m Mode) bool { return s.active == m }

// Indicator reports whether m's indicator is highlighted.
func (s *Switcher) Indicator(m Mode) bool { return s.active == m }

// Entries counts how often m has been entered, including the initial mode.
func (s *Switcher) Entries(m Mode) int { return s.entered[m] }

// Switch activates m and returns the previous mode. Invalid modes are
// rejected and leave the switcher unchanged.
func (s *Switcher) Switch(m Mode) (Mode, error) {
	if !m.valid() {
		return s.active, ErrInvalidMode
	}
	prev := s.active
	s.active = m
	s.entered[m]++
	return prev, nil
}
