package state

import "github.com/atomicstack/inboxai-popup/internal/api"

// HistoryWindow is the number of trailing turns sent with each command.
const HistoryWindow = 10

// History is the append-only conversation log of this session.
type History struct {
	turns []api.Turn
}

// Append records a turn.
func (h *History) Append(role api.Role, content string) {
	h.turns = append(h.turns, api.Turn{Role: role, Content: content})
}

// Len reports the total number of turns recorded.
func (h *History) Len() int { return len(h.turns) }

// Window returns a copy of the trailing turns, oldest dropped first.
func (h *History) Window() []api.Turn {
	start := len(h.turns) - HistoryWindow
	if start < 0 {
		start = 0
	}
	out := make([]api.Turn, len(h.turns)-start)
	copy(out, h.turns[start:])
	return out
}
