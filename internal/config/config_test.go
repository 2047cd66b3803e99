package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"HOME=/home/ann"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.App.BaseURL)
	}
	if cfg.App.PollInterval != DefaultPollInterval || cfg.App.Timeout != DefaultTimeout {
		t.Fatalf("unexpected durations %s %s", cfg.App.PollInterval, cfg.App.Timeout)
	}
	if !cfg.App.Speech || cfg.App.VoiceLocale != DefaultVoiceLocale {
		t.Fatalf("expected speech on with default locale, got %+v", cfg.App)
	}
	if cfg.App.DataDir != "/home/ann/.local/share/inboxai" {
		t.Fatalf("unexpected data dir %q", cfg.App.DataDir)
	}
	if cfg.File != "" {
		t.Fatalf("no config file should be loaded, got %q", cfg.File)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsEnvAndFlags(t *testing.T) {
	env := []string{
		"INBOXAI_BASE_URL=http://localhost:8000",
		"INBOXAI_WIDTH=90",
		"INBOXAI_FOOTER=true",
		"INBOXAI_POLL_INTERVAL=10s",
		"INBOXAI_THEME=light",
	}
	cfg, err := LoadArgs([]string{"-width", "100", "--theme", "dark", "--popup"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.BaseURL != "http://localhost:8000" {
		t.Fatalf("expected env base url, got %q", cfg.App.BaseURL)
	}
	if cfg.App.Width != 100 {
		t.Fatalf("flag should win over env, got %d", cfg.App.Width)
	}
	if !cfg.App.ShowFooter || cfg.App.PollInterval != 10*time.Second {
		t.Fatalf("expected env values, got %+v", cfg.App)
	}
	if cfg.App.Theme != "dark" || !cfg.Popup.Enabled {
		t.Fatalf("expected flag values, got theme=%q popup=%v", cfg.App.Theme, cfg.Popup.Enabled)
	}
}

func TestLoadArgsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "base_url: http://files.example\nheight: 30\nspeech: false\ntimeout: 5s\ntheme: light\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs([]string{"--config", path}, []string{"INBOXAI_HEIGHT=40"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected file recorded, got %q", cfg.File)
	}
	if cfg.App.BaseURL != "http://files.example" || cfg.App.Speech || cfg.App.Timeout != 5*time.Second {
		t.Fatalf("expected file values, got %+v", cfg.App)
	}
	if cfg.App.Height != 40 {
		t.Fatalf("env should win over the file, got %d", cfg.App.Height)
	}
	if cfg.App.Theme != "light" {
		t.Fatalf("expected file theme, got %q", cfg.App.Theme)
	}
}

func TestLoadArgsXDGConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "inboxai"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "inboxai", "config.yaml"), []byte("footer: true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer from default config file")
	}
}

func TestLoadArgsMissingExplicitFile(t *testing.T) {
	_, err := LoadArgs([]string{"--config=/does/not/exist.yaml"}, nil)
	if err == nil || !strings.Contains(err.Error(), "exist.yaml") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-height", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, []string{"HOME=/home/ann"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]func(*Config){
		"bad url":       func(c *Config) { c.App.BaseURL = "not a url" },
		"zero poll":     func(c *Config) { c.App.PollInterval = 0 },
		"zero timeout":  func(c *Config) { c.App.Timeout = 0 },
		"unknown theme": func(c *Config) { c.App.Theme = "solarized" },
		"no data dir":   func(c *Config) { c.App.DataDir = " " },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
