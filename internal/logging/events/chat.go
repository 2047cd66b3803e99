package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type ChatTracer struct{}

var Chat = ChatTracer{}

func (ChatTracer) Send(command string, historyLen int) {
	logging.Trace("chat.send", map[string]interface{}{"command": command, "history": historyLen})
}

func (ChatTracer) Reply(length int) {
	logging.Trace("chat.reply", map[string]interface{}{"length": length})
}

func (ChatTracer) Rejected(reason string) {
	logging.Trace("chat.rejected", map[string]interface{}{"reason": reason})
}

func (ChatTracer) Complete(query, suggestion string) {
	logging.Trace("chat.complete", map[string]interface{}{"query": query, "suggestion": suggestion})
}
