// Package speech plays bot replies aloud through a host speech command.
//
// A Speaker stays muted until Unlock is called on the first user interaction.
// At most one utterance plays at a time: Speak cancels the one in progress
// before starting the next.
package speech

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
)

const voiceLookupTimeout = 3 * time.Second

// Speaker serialises utterances on a single engine.
type Speaker struct {
	engine Engine
	locale string

	mu       sync.Mutex
	unlocked bool
	cancel   context.CancelFunc
	done     chan struct{}

	voiceMu  sync.Mutex
	resolved bool
	voice    Voice
}

// NewSpeaker returns a muted speaker. A nil engine is treated as Silent.
func NewSpeaker(engine Engine, locale string) *Speaker {
	if engine == nil {
		engine = Silent{}
	}
	return &Speaker{engine: engine, locale: locale}
}

// EngineName reports the engine in use.
func (s *Speaker) EngineName() string { return s.engine.Name() }

// Unlock enables playback. It reports true only for the call that unlocked.
func (s *Speaker) Unlock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unlocked {
		return false
	}
	s.unlocked = true
	events.Speech.Unlock(s.engine.Name())
	return true
}

// Unlocked reports whether playback is enabled.
func (s *Speaker) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

// Speak starts text, cancelling any utterance in progress. Blank text and
// calls made before Unlock are ignored.
func (s *Speaker) Speak(text string) {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked || text == "" {
		return
	}
	s.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go func() {
		defer close(done)
		voice := s.resolveVoice(ctx)
		events.Speech.Speak(voice.ID, len(text))
		if err := s.engine.Say(ctx, voice, text); err != nil && ctx.Err() == nil {
			events.Speech.Error(err)
			logging.Error(err)
		}
	}()
}

// Speaking reports whether an utterance is in progress.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Stop cancels the current utterance and waits for it to end.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Close stops playback. The speaker stays usable.
func (s *Speaker) Close() error {
	s.Stop()
	return nil
}

func (s *Speaker) stopLocked() {
	if s.cancel == nil {
		return
	}
	select {
	case <-s.done:
	default:
		events.Speech.Cancel()
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// resolveVoice picks the voice on the first successful lookup. A lookup cut
// short by a cancelled utterance is retried by the next one.
func (s *Speaker) resolveVoice(ctx context.Context) Voice {
	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()
	if s.resolved {
		return s.voice
	}
	lookup, cancel := context.WithTimeout(ctx, voiceLookupTimeout)
	defer cancel()
	voices, err := s.engine.Voices(lookup)
	if err != nil {
		if ctx.Err() == nil {
			events.Speech.Error(err)
			s.resolved = true
		}
		return s.voice
	}
	if v, ok := PickVoice(voices, s.locale); ok {
		s.voice = v
	}
	s.resolved = true
	events.Speech.Voices(len(voices), s.voice.ID)
	return s.voice
}
