package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Mode(from, to string) {
	logging.Trace("ui.mode", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Theme(name string) {
	logging.Trace("ui.theme", map[string]interface{}{"theme": name})
}

func (UITracer) Alert(message string) {
	logging.Trace("ui.alert", map[string]interface{}{"message": message})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Busy(id, label string) {
	logging.Trace("command.busy", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CommandTracer) Done(id string) {
	logging.Trace("command.done", map[string]interface{}{"id": id})
}
