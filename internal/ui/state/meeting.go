package state

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/inboxai-popup/internal/api"
)

const (
	DefaultMeetingTitle    = "Meeting via InboxAI"
	DefaultMeetingDuration = 30
)

// TimeType selects how the meeting start time is chosen.
type TimeType int

const (
	TimeManual TimeType = iota
	TimeInstant
)

func (t TimeType) String() string {
	if t == TimeInstant {
		return "instant"
	}
	return "manual"
}

var clockPattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

// MeetingForm holds the raw meeting scheduler fields.
type MeetingForm struct {
	Recipients string
	Date       string
	TimeType   TimeType
	Time       string
	Duration   string
	Title      string
	Agenda     string
}

// NewMeetingForm returns a form with the default duration and title.
func NewMeetingForm() MeetingForm {
	return MeetingForm{
		Duration: strconv.Itoa(DefaultMeetingDuration),
		Title:    DefaultMeetingTitle,
	}
}

// SetTimeType switches the time type. Instant fills the current local time.
func (f *MeetingForm) SetTimeType(t TimeType, now time.Time) {
	f.TimeType = t
	if t == TimeInstant {
		f.Time = now.Format("15:04")
	}
}

// TimeEditable reports whether the user may type into the time field.
func (f MeetingForm) TimeEditable() bool {
	return f.TimeType == TimeManual
}

// Request validates the form and builds the create-meeting request.
func (f MeetingForm) Request(now time.Time) (api.MeetingRequest, error) {
	if f.TimeType == TimeInstant {
		f.Time = now.Format("15:04")
	}
	recipients := SplitRecipients(f.Recipients)
	if strings.TrimSpace(f.Recipients) == "" {
		return api.MeetingRequest{}, fieldErr("recipients", ErrMissingField)
	}
	if len(recipients) == 0 {
		return api.MeetingRequest{}, fieldErr("recipients", ErrNoRecipients)
	}
	date := strings.TrimSpace(f.Date)
	if date == "" {
		return api.MeetingRequest{}, fieldErr("date", ErrMissingField)
	}
	if err := ValidDate(date); err != nil {
		return api.MeetingRequest{}, fieldErr("date", err)
	}
	clock := strings.TrimSpace(f.Time)
	if clock == "" {
		return api.MeetingRequest{}, fieldErr("time", ErrMissingField)
	}
	if err := ValidTime(clock); err != nil {
		return api.MeetingRequest{}, fieldErr("time", err)
	}
	duration := DefaultMeetingDuration
	if raw := strings.TrimSpace(f.Duration); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return api.MeetingRequest{}, fieldErr("duration", ErrInvalidDuration)
		}
		duration = n
	}
	title := strings.TrimSpace(f.Title)
	if title == "" {
		title = DefaultMeetingTitle
	}
	return api.MeetingRequest{
		Title:      title,
		Date:       date,
		Time:       clock,
		Duration:   duration,
		Recipients: recipients,
		Agenda:     strings.TrimSpace(f.Agenda),
	}, nil
}

// SplitRecipients splits on commas, trims, and drops empty entries.
func SplitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ValidTime accepts two-digit HH:MM with hour 00-23 and minute 00-59.
func ValidTime(s string) error {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return ErrInvalidTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return ErrInvalidTime
	}
	return nil
}

// ValidDate accepts a calendar date in YYYY-MM-DD form.
func ValidDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("%w (%s)", ErrInvalidDate, s)
	}
	return nil
}

// Toggle returns the other time type.
func (t TimeType) Toggle() TimeType {
	if t == TimeInstant {
		return TimeManual
	}
	return TimeInstant
}
