package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/format/table"
	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

const (
	meetingRecipients = iota
	meetingDate
	meetingTimeType
	meetingTime
	meetingDuration
	meetingTitle
	meetingAgenda
)

type meetingState struct {
	fields  []*field
	focus   int
	pending bool
	link    string
	summary []string
}

func newMeetingState(mode cursor.Mode) meetingState {
	defaults := uistate.NewMeetingForm()
	timeType := newField("Time type", "", 0, mode)
	timeType.choices = []string{uistate.TimeManual.String(), uistate.TimeInstant.String()}
	s := meetingState{
		fields: []*field{
			meetingRecipients: newField("Recipients", "a@example.com, b@example.com", 1000, mode),
			meetingDate:       newField("Date", "YYYY-MM-DD", 10, mode),
			meetingTimeType:   timeType,
			meetingTime:       newField("Time", "HH:MM", 5, mode),
			meetingDuration:   newField("Duration", "minutes", 4, mode),
			meetingTitle:      newField("Title", defaults.Title, 200, mode),
			meetingAgenda:     newField("Agenda", "optional", 1000, mode),
		},
	}
	s.fields[meetingDuration].input.SetValue(defaults.Duration)
	s.fields[meetingTitle].input.SetValue(defaults.Title)
	return s
}

func (s *meetingState) timeType() uistate.TimeType {
	return uistate.TimeType(s.fields[meetingTimeType].choice)
}

func (s *meetingState) form() uistate.MeetingForm {
	return uistate.MeetingForm{
		Recipients: s.fields[meetingRecipients].input.Value(),
		Date:       s.fields[meetingDate].input.Value(),
		TimeType:   s.timeType(),
		Time:       s.fields[meetingTime].input.Value(),
		Duration:   s.fields[meetingDuration].input.Value(),
		Title:      s.fields[meetingTitle].input.Value(),
		Agenda:     s.fields[meetingAgenda].input.Value(),
	}
}

// resetMeeting restores the default form, keeping the last link and summary.
func (m *Model) resetMeeting() tea.Cmd {
	link, summary := m.meeting.link, m.meeting.summary
	m.meeting = newMeetingState(m.cursorMode)
	m.meeting.link, m.meeting.summary = link, summary
	events.Meeting.Reset()
	return focusFields(m.meeting.fields, 0)
}

// setTimeType switches between a typed and an instant start time. Instant
// fills the current time and locks the field.
func (m *Model) setTimeType(t uistate.TimeType) {
	s := &m.meeting
	form := s.form()
	form.SetTimeType(t, m.now())
	s.fields[meetingTimeType].choice = int(t)
	s.fields[meetingTime].input.SetValue(form.Time)
	s.fields[meetingTime].readOnly = !form.TimeEditable()
	events.Meeting.TimeType(t.String(), form.Time)
}

func (m *Model) handleMeetingKey(msg tea.KeyMsg) tea.Cmd {
	s := &m.meeting
	switch msg.String() {
	case "tab", "down":
		s.focus = nextFocus(s.fields, s.focus, 1)
		return focusFields(s.fields, s.focus)
	case "shift+tab", "up":
		s.focus = nextFocus(s.fields, s.focus, -1)
		return focusFields(s.fields, s.focus)
	case "ctrl+s":
		return m.createMeeting()
	case "ctrl+y":
		if s.link == "" {
			m.setInfo("No meeting link yet")
			return nil
		}
		events.Meeting.CopyLink(s.link)
		return action.CopyText(m.actx, "meeting link", s.link)
	case "enter":
		if s.focus == len(s.fields)-1 {
			return m.createMeeting()
		}
		s.focus = nextFocus(s.fields, s.focus, 1)
		return focusFields(s.fields, s.focus)
	case "esc":
		return tea.Quit
	}
	if s.focus == meetingTimeType {
		switch msg.String() {
		case " ", "left", "right", "h", "l":
			m.setTimeType(s.timeType().Toggle())
		}
		return nil
	}
	var cmd tea.Cmd
	f := s.fields[s.focus]
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (m *Model) createMeeting() tea.Cmd {
	if m.meeting.pending {
		m.setInfo("Scheduling…")
		return nil
	}
	req, err := m.meeting.form().Request(m.now())
	if err != nil {
		m.showAlert("Cannot schedule meeting", validationMessage(err))
		return nil
	}
	start, ok := m.run("meeting:create", "create meeting", action.CreateMeeting(m.actx, req))
	if !ok {
		return nil
	}
	m.meeting.pending = true
	events.Meeting.Create(req.Title, req.Recipients, req.Date, req.Time, req.Duration)
	return tea.Batch(start, m.chat.spinner.Tick)
}

func (m *Model) handleMeetingResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.MeetingResult)
	if !ok {
		return nil
	}
	m.meeting.pending = false
	if res.Err != nil {
		logging.Error(res.Err)
		if api.IsUnauthorized(res.Err) {
			m.showAlert("Login required", loginRequired)
			return m.unauthorized()
		}
		m.showAlert("Could not schedule meeting", failureMessage(res.Err))
		return nil
	}
	events.Meeting.Created(res.Link)
	m.meeting.link = res.Link
	m.meeting.summary = meetingSummary(res.Request)
	m.setInfo("Meeting scheduled")
	if m.modes.Active() == uistate.ModeMeeting {
		return m.resetMeeting()
	}
	return nil
}

func meetingSummary(req api.MeetingRequest) []string {
	return table.Summary([]table.Field{
		{Label: "Title", Value: req.Title},
		{Label: "When", Value: fmt.Sprintf("%s %s", req.Date, req.Time)},
		{Label: "Duration", Value: strconv.Itoa(req.Duration) + " min"},
		{Label: "Recipients", Value: strings.Join(req.Recipients, ", ")},
		{Label: "Agenda", Value: req.Agenda},
	})
}

func (m *Model) viewMeeting() []styledLine {
	lines := []styledLine{
		{text: "Schedule a meeting", style: m.styles.Header},
		{},
	}
	lines = append(lines, m.viewFields(m.meeting.fields, m.meeting.focus)...)
	if m.meeting.pending {
		lines = append(lines, styledLine{}, styledLine{text: m.chat.spinner.View() + " " + m.styles.Loading.Render("Scheduling…"), raw: true})
	}
	if m.meeting.link != "" {
		lines = append(lines, styledLine{}, styledLine{text: "Meeting link: " + m.styles.Link.Render(m.meeting.link), raw: true})
		for _, row := range m.meeting.summary {
			lines = append(lines, styledLine{text: row, style: m.styles.Info})
		}
	}
	return lines
}
