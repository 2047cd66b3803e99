package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/backend"
	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	"github.com/atomicstack/inboxai-popup/internal/speech"
	"github.com/atomicstack/inboxai-popup/internal/storage"
	"github.com/atomicstack/inboxai-popup/internal/theme"
	"github.com/atomicstack/inboxai-popup/internal/ui"
)

// DatabaseName is the preferences file inside the data directory.
const DatabaseName = "inboxai.db"

// Config describes user-provided application options.
type Config struct {
	BaseURL    string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Theme overrides the stored theme for this run when set.
	Theme   string
	DataDir string

	Speech        bool
	VoiceLocale   string
	SpeechCommand string

	PollInterval time.Duration
	Timeout      time.Duration
	// Session overrides the stored session cookie when set.
	Session string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx := context.Background()
	store, err := storage.Open(ctx, filepath.Join(cfg.DataDir, DatabaseName))
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()

	client, err := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithSessionHook(func(value string) { persistSession(store, value) }),
	)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}
	if session := initialSession(ctx, cfg, store); session != "" {
		client.SetSession(session)
	}

	var engine speech.Engine = speech.Silent{}
	if cfg.Speech {
		engine = speech.Detect(cfg.SpeechCommand)
	}
	speaker := speech.NewSpeaker(engine, cfg.VoiceLocale)
	defer speaker.Close()

	watcher := backend.NewWatcher(client, cfg.PollInterval, cfg.Timeout)
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Backend:    client,
		Prefs:      store,
		Watcher:    watcher,
		Speaker:    speaker,
		Theme:      initialTheme(ctx, cfg, store),
		Timeout:    cfg.Timeout,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// preferences is the part of the store the startup helpers read.
type preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func initialSession(ctx context.Context, cfg Config, prefs preferences) string {
	if cfg.Session != "" {
		return cfg.Session
	}
	value, ok, err := prefs.Get(ctx, storage.KeySession)
	if err != nil {
		logging.Error(fmt.Errorf("load session: %w", err))
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

func initialTheme(ctx context.Context, cfg Config, prefs preferences) theme.Name {
	raw := cfg.Theme
	if raw == "" {
		value, ok, err := prefs.Get(ctx, storage.KeyTheme)
		if err != nil {
			logging.Error(fmt.Errorf("load theme: %w", err))
		}
		if !ok {
			return theme.Dark
		}
		raw = value
	}
	name, err := theme.Parse(raw)
	if err != nil {
		logging.Error(err)
		return theme.Dark
	}
	events.UI.Theme(string(name))
	return name
}

// persistSession keeps the stored cookie in step with the client's jar.
func persistSession(prefs preferences, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var err error
	if value == "" {
		err = prefs.Delete(ctx, storage.KeySession)
	} else {
		err = prefs.Set(ctx, storage.KeySession, value)
	}
	if err != nil {
		logging.Error(fmt.Errorf("persist session: %w", err))
	}
}
