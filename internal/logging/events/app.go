package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Popup(socket string, args []string) {
	logging.Trace("app.popup", map[string]interface{}{"socket": socket, "args": args})
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
