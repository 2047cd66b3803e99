package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/app"
	"github.com/atomicstack/inboxai-popup/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Popup   Popup
	// File is the config file that was read, empty when none was found.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// Popup controls relaunching inside a tmux display-popup.
type Popup struct {
	Enabled    bool
	SocketPath string
}

const (
	DefaultBaseURL      = api.DefaultBaseURL
	DefaultPollInterval = 30 * time.Second
	DefaultTimeout      = 30 * time.Second
	DefaultVoiceLocale  = "en-US"
)

const (
	envConfig        = "INBOXAI_CONFIG"
	envBaseURL       = "INBOXAI_BASE_URL"
	envWidth         = "INBOXAI_WIDTH"
	envHeight        = "INBOXAI_HEIGHT"
	envShowFooter    = "INBOXAI_FOOTER"
	envVerbose       = "INBOXAI_VERBOSE"
	envTrace         = "INBOXAI_TRACE"
	envLogFile       = "INBOXAI_LOG_FILE"
	envTheme         = "INBOXAI_THEME"
	envDataDir       = "INBOXAI_DATA_DIR"
	envSpeech        = "INBOXAI_SPEECH"
	envVoiceLocale   = "INBOXAI_VOICE_LOCALE"
	envSpeechCommand = "INBOXAI_SPEECH_COMMAND"
	envPollInterval  = "INBOXAI_POLL_INTERVAL"
	envTimeout       = "INBOXAI_TIMEOUT"
	envSession       = "INBOXAI_SESSION"
	envPopup         = "INBOXAI_POPUP"
	envSocketPath    = "INBOXAI_TMUX_SOCKET"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// environment variables, which win over the config file.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	path, explicit := configPath(args, env)
	k, err := loadFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	d := defaults{env: env, file: k}

	fs := flag.NewFlagSet("inboxai", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to a YAML config file")
	baseURL := fs.String("base-url", d.str(envBaseURL, "base_url", DefaultBaseURL), "InboxAI backend base URL")
	width := fs.Int("width", d.integer(envWidth, "width", 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", d.integer(envHeight, "height", 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", d.boolean(envShowFooter, "footer", false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", d.boolean(envTrace, "trace", false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", d.boolean(envVerbose, "verbose", false), "print success messages for actions")
	logFile := fs.String("log-file", d.str(envLogFile, "log_file", ""), "path to the log file")
	themeName := fs.String("theme", d.str(envTheme, "theme", ""), "colour theme: dark or light (default: last used)")
	dataDir := fs.String("data-dir", d.str(envDataDir, "data_dir", defaultDataDir(env)), "directory for stored preferences")
	speech := fs.Bool("speech", d.boolean(envSpeech, "speech", true), "speak replies aloud")
	voiceLocale := fs.String("voice-locale", d.str(envVoiceLocale, "voice_locale", DefaultVoiceLocale), "preferred voice locale")
	speechCommand := fs.String("speech-command", d.str(envSpeechCommand, "speech_command", ""), "speech synthesizer binary (default: first found)")
	pollInterval := fs.Duration("poll-interval", d.duration(envPollInterval, "poll_interval", DefaultPollInterval), "auth status poll interval")
	timeout := fs.Duration("timeout", d.duration(envTimeout, "timeout", DefaultTimeout), "per-request timeout")
	session := fs.String("session", d.str(envSession, "session", ""), "backend session cookie (overrides the stored one)")
	popup := fs.Bool("popup", d.boolean(envPopup, "popup", false), "relaunch inside a tmux display-popup")
	socket := fs.String("socket", d.str(envSocketPath, "socket", ""), "path to the tmux socket (overrides environment detection)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	loaded := ""
	if len(k.Keys()) > 0 {
		loaded = path
	}
	cfg := Config{
		App: app.Config{
			BaseURL:       strings.TrimSpace(*baseURL),
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
			Theme:         strings.ToLower(strings.TrimSpace(*themeName)),
			DataDir:       *dataDir,
			Speech:        *speech,
			VoiceLocale:   *voiceLocale,
			SpeechCommand: *speechCommand,
			PollInterval:  *pollInterval,
			Timeout:       *timeout,
			Session:       strings.TrimSpace(*session),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Popup: Popup{
			Enabled:    *popup,
			SocketPath: *socket,
		},
		File: loaded,
		Flags: map[string]string{
			"baseURL":       *baseURL,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
			"theme":         *themeName,
			"dataDir":       *dataDir,
			"speech":        strconv.FormatBool(*speech),
			"voiceLocale":   *voiceLocale,
			"speechCommand": *speechCommand,
			"pollInterval":  pollInterval.String(),
			"timeout":       timeout.String(),
			"popup":         strconv.FormatBool(*popup),
			"socket":        *socket,
		},
		Args: append([]string(nil), args...),
	}
	if *session != "" {
		cfg.Flags["session"] = "(set)"
	}

	return cfg, nil
}

// configPath finds the config file from --config, then INBOXAI_CONFIG, then
// the XDG default. explicit is false only for the default.
func configPath(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "inboxai", "config.yaml"), false
}

func defaultDataDir(env map[string]string) string {
	if base := env["XDG_DATA_HOME"]; base != "" {
		return filepath.Join(base, "inboxai")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "inboxai")
	}
	return filepath.Join(os.TempDir(), "inboxai")
}

// loadFile reads the YAML config at path. A missing default file is not an
// error; a missing explicit one is.
func loadFile(path string, explicit bool) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if path == "" {
		return k, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return k, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return k, nil
}

// defaults resolves a flag default from the environment, then the file.
type defaults struct {
	env  map[string]string
	file *koanf.Koanf
}

func (d defaults) raw(envKey, fileKey string) (string, bool) {
	if v, ok := d.env[envKey]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	if d.file.Exists(fileKey) {
		return d.file.String(fileKey), true
	}
	return "", false
}

func (d defaults) str(envKey, fileKey, fallback string) string {
	if v, ok := d.raw(envKey, fileKey); ok {
		return v
	}
	return fallback
}

func (d defaults) integer(envKey, fileKey string, fallback int) int {
	v, ok := d.raw(envKey, fileKey)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func (d defaults) boolean(envKey, fileKey string, fallback bool) bool {
	v, ok := d.raw(envKey, fileKey)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func (d defaults) duration(envKey, fileKey string, fallback time.Duration) time.Duration {
	v, ok := d.raw(envKey, fileKey)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// Validate ensures the configuration can start the popup.
func Validate(cfg Config) error {
	if _, err := api.ParseBaseURL(cfg.App.BaseURL); err != nil {
		return fmt.Errorf("base-url: %w", err)
	}
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll-interval must be positive (got %s)", cfg.App.PollInterval)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", cfg.App.Timeout)
	}
	if cfg.App.Theme != "" {
		if _, err := theme.Parse(cfg.App.Theme); err != nil {
			return fmt.Errorf("theme: %w", err)
		}
	}
	if strings.TrimSpace(cfg.App.DataDir) == "" {
		return fmt.Errorf("data-dir must not be empty")
	}
	return nil
}
