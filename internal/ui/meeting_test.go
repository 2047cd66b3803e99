package ui

import (
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/testutil"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

const meetLink = "https://meet.google.com/abc-defg-hij"

func (f *fixture) fillMeeting() {
	f.h.Press(tea.KeyF3)
	f.h.Type("a@x.io, b@x.io")
	f.h.Press(tea.KeyTab)
	f.h.Type("2026-10-15")
	f.h.Press(tea.KeyTab)
}

func TestMeetingInstantTimeUsesNow(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond(http.MethodPost, "/meeting/create", testutil.JSON(`{"data":{"meet_link":"`+meetLink+`"}}`))
	f.fillMeeting()
	f.h.Press(tea.KeySpace)

	m := f.h.Model()
	if m.meeting.timeType() != uistate.TimeInstant {
		t.Fatalf("expected instant time type")
	}
	if got := m.meeting.fields[meetingTime].input.Value(); got != "09:30" {
		t.Fatalf("expected current time filled, got %q", got)
	}
	f.h.Press(tea.KeyTab)
	if m.meeting.focus != meetingDuration {
		t.Fatalf("read-only time should be skipped, focus %d", m.meeting.focus)
	}
	f.h.Press(tea.KeyCtrlS)

	reqs := f.backend.Requests("/meeting/create")
	if len(reqs) != 1 {
		t.Fatalf("expected one create request, got %d", len(reqs))
	}
	body := reqs[0].Body
	if body["time"] != "09:30" || body["date"] != "2026-10-15" {
		t.Fatalf("unexpected schedule %#v", body)
	}
	if body["duration"] != float64(uistate.DefaultMeetingDuration) || body["title"] != uistate.DefaultMeetingTitle {
		t.Fatalf("expected defaults, got %#v", body)
	}
	if recips, _ := body["recipients"].([]interface{}); len(recips) != 2 {
		t.Fatalf("expected two recipients, got %#v", body["recipients"])
	}
	if !strings.Contains(f.view(), meetLink) {
		t.Fatalf("expected meeting link:\n%s", f.view())
	}
	f.h.Press(tea.KeyCtrlY)
	if len(f.copied) != 1 || f.copied[0] != meetLink {
		t.Fatalf("expected link copied, got %v", f.copied)
	}
}

func TestMeetingInvalidTimeAlerts(t *testing.T) {
	f := newFixture(t)
	f.fillMeeting()
	f.h.Press(tea.KeyTab)
	f.h.Type("25:00")
	f.h.Press(tea.KeyCtrlS)
	if f.backend.Count("/meeting/create") != 0 {
		t.Fatalf("invalid time must not be submitted")
	}
	if f.h.Model().alert == nil || !strings.Contains(f.view(), "Cannot schedule meeting") {
		t.Fatalf("expected alert:\n%s", f.view())
	}
}

func TestAlertIsModalForKeys(t *testing.T) {
	f := newFixture(t)
	f.h.Press(tea.KeyF3)
	f.h.Press(tea.KeyCtrlS)
	m := f.h.Model()
	if m.alert == nil {
		t.Fatalf("expected alert for empty form")
	}
	f.h.Type("typed")
	f.h.Press(tea.KeyF1)
	if got := m.meeting.fields[meetingRecipients].input.Value(); got != "" {
		t.Fatalf("keys must not reach the form under an alert, got %q", got)
	}
	if m.modes.Active() != uistate.ModeMeeting {
		t.Fatalf("mode must not change under an alert")
	}
	f.login()
	if !m.auth.LoggedIn() {
		t.Fatalf("non-key messages should still be processed")
	}
	f.h.Press(tea.KeyEnter)
	if m.alert != nil {
		t.Fatalf("enter should dismiss the alert")
	}
}

func TestMeetingLinkFromChatReply(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond(http.MethodPost, "/command", testutil.JSON(`{"reply":"Booked.","meet_link":"`+meetLink+`"}`))
	f.h.Type("schedule a meeting with ann tomorrow")
	f.h.Press(tea.KeyEnter)
	if !strings.Contains(f.view(), "Meeting link: "+meetLink) {
		t.Fatalf("expected link under the reply:\n%s", f.view())
	}
}

func TestMeetingSummaryGolden(t *testing.T) {
	lines := meetingSummary(api.MeetingRequest{
		Title:      "Sync",
		Date:       "2026-10-15",
		Time:       "09:30",
		Duration:   30,
		Recipients: []string{"a@x.io", "b@x.io"},
	})
	testutil.AssertGolden(t, "meeting_summary.golden", strings.Join(lines, "\n")+"\n")
}
