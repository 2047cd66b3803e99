package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/backend"
	"github.com/atomicstack/inboxai-popup/internal/data/dispatcher"
	"github.com/atomicstack/inboxai-popup/internal/format/markdown"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	"github.com/atomicstack/inboxai-popup/internal/state"
	"github.com/atomicstack/inboxai-popup/internal/theme"
	"github.com/atomicstack/inboxai-popup/internal/ui/command"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

// Greeting is shown when the popup opens and spoken once speech is unlocked.
const Greeting = "Hi, this is InboxAI. How can I help you?"

type msgHandler func(tea.Msg) tea.Cmd

// Speaker plays bot replies aloud.
type Speaker interface {
	Unlock() bool
	Speak(text string)
}

type mutedSpeaker struct{}

func (mutedSpeaker) Unlock() bool { return false }
func (mutedSpeaker) Speak(string) {}

// Options configures a Model.
type Options struct {
	Backend action.Backend
	Prefs   action.Preferences
	Watcher *backend.Watcher
	Speaker Speaker
	Theme   theme.Name
	Timeout time.Duration

	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool

	// Now defaults to time.Now.
	Now func() time.Time
	// StaticCursor stops text inputs from scheduling blink ticks.
	StaticCursor bool
	Clipboard    func(string) error
	OpenURL      func(string) error
}

// Model implements the Bubble Tea model for the InboxAI popup.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	actx       action.Context
	backend    *backend.Watcher
	auth       state.AuthStore
	health     state.HealthStore
	dispatcher *dispatcher.Dispatcher

	modes          *uistate.Switcher
	speaker        Speaker
	speechUnlocked bool
	greeted        bool

	themeName theme.Name
	styles    *theme.Styles
	markdown  *markdown.Renderer

	now        func() time.Time
	cursorMode cursor.Mode

	alert   *alert
	login   *LoginForm
	chat    chatState
	draft   draftState
	meeting meetingState

	recheckPending bool
}

// NewModel initialises the popup in chat mode with the greeting shown.
func NewModel(opts Options) *Model {
	auth := state.NewAuthStore()
	health := state.NewHealthStore()
	name := opts.Theme
	if name == "" {
		name = theme.Dark
	}
	m := &Model{
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		bus:        command.New(),
		actx: action.Context{
			Backend:   opts.Backend,
			Prefs:     opts.Prefs,
			Timeout:   opts.Timeout,
			Clipboard: opts.Clipboard,
			OpenURL:   opts.OpenURL,
		},
		backend:    opts.Watcher,
		auth:       auth,
		health:     health,
		dispatcher: dispatcher.New(auth, health),
		modes:      uistate.NewSwitcher(),
		speaker:    opts.Speaker,
		themeName:  name,
		styles:     theme.For(name),
		markdown:   markdown.New(),
		now:        opts.Now,
		cursorMode: cursor.CursorBlink,
	}
	if m.speaker == nil {
		m.speaker = mutedSpeaker{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	if opts.StaticCursor {
		m.cursorMode = cursor.CursorStatic
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.chat = newChatState(m.cursorMode)
	m.draft = newDraftState(m.cursorMode)
	m.meeting = newMeetingState(m.cursorMode)
	m.chat.addBubble(bubbleBot, Greeting, "")
	m.layout()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.chat.input.Focus()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	} else if m.actx.Backend != nil {
		cmds = append(cmds, m.checkAuth(events.AuthReasonPoll))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.unlockSpeech()
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if cmd := m.forwardToFocused(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

// handleActiveForm gives modal surfaces first claim on key presses. Alerts
// swallow every key except their dismiss keys; the login prompt owns input
// until it is submitted or cancelled.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	if m.alert != nil {
		return true, m.handleAlertKey(key)
	}
	if m.login != nil {
		return true, m.handleLoginForm(msg)
	}
	return false, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):      m.handleSpinnerTick,
		reflect.TypeOf(action.ActionResult{}):  m.handleActionResultMsg,
		reflect.TypeOf(action.ChatResult{}):    m.handleChatResult,
		reflect.TypeOf(action.DraftsResult{}):  m.handleDraftsResult,
		reflect.TypeOf(action.SendResult{}):    m.handleSendResult,
		reflect.TypeOf(action.MeetingResult{}): m.handleMeetingResult,
		reflect.TypeOf(action.AuthResult{}):    m.handleAuthResult,
		reflect.TypeOf(action.LoginOpened{}):   m.handleLoginOpened,
		reflect.TypeOf(action.LogoutResult{}):  m.handleLogoutResult,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncTranscript()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// unlockSpeech enables speech on the first key press and speaks the greeting
// when the chat is showing.
func (m *Model) unlockSpeech() {
	if m.speechUnlocked {
		return
	}
	m.speechUnlocked = true
	m.speaker.Unlock()
	m.greetIfDue()
}

func (m *Model) greetIfDue() {
	if m.greeted || !m.speechUnlocked || m.modes.Active() != uistate.ModeChat {
		return
	}
	m.greeted = true
	m.speaker.Speak(Greeting)
}

// run starts cmd through the command bus under id.
func (m *Model) run(id, label string, cmd tea.Cmd) (tea.Cmd, bool) {
	if cmd == nil {
		return nil, false
	}
	return m.bus.Execute(command.Request{ID: id, Label: label, Run: func() tea.Msg { return cmd() }})
}
