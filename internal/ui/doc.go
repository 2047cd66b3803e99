// Package ui contains the Bubble Tea program behind the InboxAI popup. The
// Model type orchestrates messages while per-mode files own chat, the draft
// wizard, and the meeting form.
//
// Message flow:
//   - The first key press unlocks speech, then Update offers keys to the
//     modal surfaces (alerts, the login prompt). Other messages always reach
//     the typed handler registry so backend results keep flowing while an
//     alert is showing.
//   - Key presses are routed to the handler of the one visible mode
//     (internal/ui/state.Switcher decides which). F1-F3 switch modes and run
//     their entry effects: the draft wizard and the meeting form reset, chat
//     speaks the greeting once.
//   - Requests to the InboxAI backend are tea.Cmd values built by
//     internal/action and started through the command bus, which refuses a
//     second request with the same id while one is in flight.
//
// State ownership:
//   - Auth and health live in internal/state and are updated by the
//     dispatcher from watcher events, and directly from explicit checks.
//   - Conversation history, the wizard and the meeting form are plain types in
//     internal/ui/state so their rules can be tested without a terminal.
//
// Backend interactions:
//   - A backend.Watcher polls /auth/status and the health endpoint. Update
//     waits on its event channel and hands each event to applyBackendEvent.
//   - A 401 from any request triggers one immediate auth re-check; further
//     401s are ignored until that check reports back.
package ui
