package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type DraftTracer struct{}

type draftReason string

const (
	DraftReasonCancel draftReason = "cancel"
	DraftReasonBack   draftReason = "back"
	DraftReasonReset  draftReason = "reset"
)

var Draft = DraftTracer{}

func (DraftTracer) Generate(receiver, tone string) {
	logging.Trace("draft.generate", map[string]interface{}{"receiver": receiver, "tone": tone})
}

func (DraftTracer) Generated(count int) {
	logging.Trace("draft.generated", map[string]interface{}{"count": count})
}

func (DraftTracer) Select(index int) {
	logging.Trace("draft.select", map[string]interface{}{"index": index})
}

func (DraftTracer) Confirm(index int, subject string) {
	logging.Trace("draft.confirm", map[string]interface{}{"index": index, "subject": subject})
}

func (DraftTracer) Send(to, subject string) {
	logging.Trace("draft.send", map[string]interface{}{"to": to, "subject": subject})
}

func (DraftTracer) Sent(to string) {
	logging.Trace("draft.sent", map[string]interface{}{"to": to})
}

func (DraftTracer) Step(from, to int, reason draftReason) {
	logging.Trace("draft.step", map[string]interface{}{"from": from, "to": to, "reason": string(reason)})
}
