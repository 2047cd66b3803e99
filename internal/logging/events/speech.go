package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type SpeechTracer struct{}

var Speech = SpeechTracer{}

func (SpeechTracer) Unlock(engine string) {
	logging.Trace("speech.unlock", map[string]interface{}{"engine": engine})
}

func (SpeechTracer) Speak(voice string, length int) {
	logging.Trace("speech.speak", map[string]interface{}{"voice": voice, "length": length})
}

func (SpeechTracer) Cancel() {
	logging.Trace("speech.cancel", nil)
}

func (SpeechTracer) Voices(count int, chosen string) {
	logging.Trace("speech.voices", map[string]interface{}{"count": count, "chosen": chosen})
}

func (SpeechTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("speech.error", map[string]interface{}{"error": err.Error()})
}
