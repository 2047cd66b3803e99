package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type MeetingTracer struct{}

var Meeting = MeetingTracer{}

func (MeetingTracer) Create(title string, recipients []string, date, clock string, duration int) {
	logging.Trace("meeting.create", map[string]interface{}{
		"title":      title,
		"recipients": recipients,
		"date":       date,
		"time":       clock,
		"duration":   duration,
	})
}

func (MeetingTracer) Created(link string) {
	logging.Trace("meeting.created", map[string]interface{}{"link": link})
}

func (MeetingTracer) TimeType(kind string, value string) {
	logging.Trace("meeting.time-type", map[string]interface{}{"type": kind, "time": value})
}

func (MeetingTracer) Reset() {
	logging.Trace("meeting.reset", nil)
}

func (MeetingTracer) CopyLink(link string) {
	logging.Trace("meeting.copy-link", map[string]interface{}{"link": link})
}
