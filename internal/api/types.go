package api

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation history sent with a command.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CommandRequest is the body of POST /command.
type CommandRequest struct {
	Command string `json:"command"`
	History []Turn `json:"history"`
}

// CommandResponse carries the assistant reply. MeetLink is set when the
// command scheduled a meeting.
type CommandResponse struct {
	Reply    string `json:"reply"`
	MeetLink string `json:"meet_link,omitempty"`
}

// DraftRequest is the body of POST /email/draft.
type DraftRequest struct {
	Intent   string `json:"intent"`
	Receiver string `json:"receiver"`
	Tone     string `json:"tone"`
	Context  string `json:"context"`
}

// Draft is one candidate email produced by the backend.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type draftEnvelope struct {
	Data *struct {
		Drafts []Draft `json:"drafts"`
	} `json:"data"`
}

// SendEmailRequest is the body of POST /email/send.
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendEmailResponse is the optional body returned by POST /email/send.
type SendEmailResponse struct {
	Reply string `json:"reply,omitempty"`
}

func (*SendEmailResponse) optional() bool { return true }

// MeetingRequest is the body of POST /meeting/create.
type MeetingRequest struct {
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Duration   int      `json:"duration"`
	Recipients []string `json:"recipients"`
	Agenda     string   `json:"agenda"`
}

// MeetingResponse carries the link of the created meeting.
type MeetingResponse struct {
	MeetLink string
}

type meetingEnvelope struct {
	Data *struct {
		MeetLink string `json:"meet_link"`
		// meetLink was emitted by earlier backend revisions.
		LegacyMeetLink string `json:"meetLink"`
	} `json:"data"`
}

// AuthStatus reports whether the backend session belongs to a logged in user.
type AuthStatus struct {
	LoggedIn bool
	User     string
}

type authEnvelope struct {
	Authenticated *bool  `json:"authenticated"`
	Email         string `json:"email"`
	// logged_in/user were emitted by earlier backend revisions.
	LoggedIn *bool  `json:"logged_in"`
	User     string `json:"user"`
}

func (e authEnvelope) status() (AuthStatus, bool) {
	switch {
	case e.Authenticated != nil:
		return AuthStatus{LoggedIn: *e.Authenticated, User: e.Email}, true
	case e.LoggedIn != nil:
		return AuthStatus{LoggedIn: *e.LoggedIn, User: e.User}, true
	default:
		return AuthStatus{}, false
	}
}
