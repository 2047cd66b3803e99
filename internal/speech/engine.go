package speech

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Engine synthesises speech. Say blocks until the utterance finishes or ctx
// is cancelled.
type Engine interface {
	Name() string
	Voices(ctx context.Context) ([]Voice, error)
	Say(ctx context.Context, voice Voice, text string) error
}

type engineKind int

const (
	kindEspeak engineKind = iota
	kindSay
	kindSpd
)

// candidates lists the speech commands probed by Detect, in order.
var candidates = []string{"espeak-ng", "espeak", "say", "spd-say"}

// CommandEngine drives an external speech command.
type CommandEngine struct {
	binary string
	kind   engineKind
}

// Detect returns an engine for command, or for the first speech command found
// on PATH when command is empty. A silent engine is returned when nothing is
// available.
func Detect(command string) Engine {
	if trimmed := strings.TrimSpace(command); trimmed != "" {
		if path, err := exec.LookPath(trimmed); err == nil {
			return NewCommandEngine(path)
		}
		return Silent{}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return NewCommandEngine(path)
		}
	}
	return Silent{}
}

// NewCommandEngine wraps binary, choosing argument conventions from its name.
func NewCommandEngine(binary string) *CommandEngine {
	return &CommandEngine{binary: binary, kind: kindFor(binary)}
}

func kindFor(binary string) engineKind {
	switch filepath.Base(binary) {
	case "say":
		return kindSay
	case "spd-say":
		return kindSpd
	default:
		return kindEspeak
	}
}

func (e *CommandEngine) Name() string { return filepath.Base(e.binary) }

func (e *CommandEngine) Voices(ctx context.Context) ([]Voice, error) {
	var args []string
	switch e.kind {
	case kindEspeak:
		args = []string{"--voices"}
	case kindSay:
		args = []string{"-v", "?"}
	default:
		return nil, nil
	}
	out, err := exec.CommandContext(ctx, e.binary, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	if e.kind == kindSay {
		return parseSayVoices(string(out)), nil
	}
	return parseEspeakVoices(string(out)), nil
}

func (e *CommandEngine) Say(ctx context.Context, voice Voice, text string) error {
	args, stdin := e.sayArgs(voice, text)
	cmd := exec.CommandContext(ctx, e.binary, args...)
	if stdin {
		cmd.Stdin = strings.NewReader(text)
	}
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", e.Name(), err)
	}
	return nil
}

// sayArgs builds the command line for an utterance. When stdin is true the
// text is piped to the process instead of passed as an argument.
func (e *CommandEngine) sayArgs(voice Voice, text string) (args []string, stdin bool) {
	switch e.kind {
	case kindSay:
		if voice.ID != "" {
			args = append(args, "-v", voice.ID)
		}
		return args, true
	case kindSpd:
		args = append(args, "-w")
		if voice.Lang != "" {
			args = append(args, "-l", voice.Lang)
		}
		return append(args, "--", text), false
	default:
		args = append(args, "--stdin")
		if voice.ID != "" {
			args = append(args, "-v", voice.ID)
		}
		return args, true
	}
}

// parseEspeakVoices reads `espeak --voices` output:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US     (en 2)
func parseEspeakVoices(out string) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(out))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(strings.TrimSpace(line), "Pty") {
				continue
			}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{
			ID:   fields[1],
			Name: strings.ReplaceAll(fields[3], "_", " "),
			Lang: fields[1],
		})
	}
	return voices
}

// parseSayVoices reads `say -v ?` output:
//
//	Alex                en_US    # Most people recognize me by my voice.
func parseSayVoices(out string) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		lang := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{ID: name, Name: name, Lang: lang})
	}
	return voices
}

// Silent discards every utterance.
type Silent struct{}

func (Silent) Name() string { return "silent" }

func (Silent) Voices(context.Context) ([]Voice, error) { return nil, nil }

func (Silent) Say(context.Context, Voice, string) error { return nil }
