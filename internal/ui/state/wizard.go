package state

import (
	"strings"

	"github.com/atomicstack/inboxai-popup/internal/api"
)

// Step is a position in the draft wizard.
type Step int

const (
	StepInputs  Step = 1
	StepReview  Step = 2
	StepConfirm Step = 3
)

func (s Step) String() string {
	switch s {
	case StepInputs:
		return "inputs"
	case StepReview:
		return "review"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// DefaultTone is used when the tone field is left blank.
const DefaultTone = "professional"

// DraftInputs are the step one fields.
type DraftInputs struct {
	Receiver string
	Intent   string
	Tone     string
	Context  string
}

// Wizard is the draft email state machine:
// inputs (1) -> review candidates (2) -> confirm send (3).
type Wizard struct {
	step     Step
	inputs   DraftInputs
	drafts   []api.Draft
	selected int
	cursor   int
}

func NewWizard() *Wizard {
	return &Wizard{step: StepInputs, selected: -1}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Inputs() DraftInputs { return w.inputs }

// Drafts returns a copy of the current candidates.
func (w *Wizard) Drafts() []api.Draft {
	if len(w.drafts) == 0 {
		return nil
	}
	out := make([]api.Draft, len(w.drafts))
	copy(out, w.drafts)
	return out
}

// Selected returns the selected candidate index, if any.
func (w *Wizard) Selected() (int, bool) {
	if w.selected < 0 || w.selected >= len(w.drafts) {
		return -1, false
	}
	return w.selected, true
}

// Cursor is the highlighted candidate on the review step.
func (w *Wizard) Cursor() int { return w.cursor }

// MoveCursor shifts the highlighted candidate, clamped to the list.
func (w *Wizard) MoveCursor(delta int) bool {
	if w.step != StepReview || len(w.drafts) == 0 {
		return false
	}
	old := w.cursor
	w.cursor += delta
	if w.cursor < 0 {
		w.cursor = 0
	}
	if w.cursor >= len(w.drafts) {
		w.cursor = len(w.drafts) - 1
	}
	return w.cursor != old
}

// Generate validates in and records it, returning the request to send.
// The wizard stays on step one until Generated is called.
func (w *Wizard) Generate(in DraftInputs, authenticated bool) (api.DraftRequest, error) {
	if w.step != StepInputs {
		return api.DraftRequest{}, ErrWrongStep
	}
	in.Receiver = strings.TrimSpace(in.Receiver)
	in.Intent = strings.TrimSpace(in.Intent)
	in.Tone = strings.TrimSpace(in.Tone)
	in.Context = strings.TrimSpace(in.Context)
	w.inputs = in
	if in.Receiver == "" {
		return api.DraftRequest{}, fieldErr("receiver", ErrMissingField)
	}
	if in.Intent == "" {
		return api.DraftRequest{}, fieldErr("intent", ErrMissingField)
	}
	if !authenticated {
		return api.DraftRequest{}, ErrNotAuthenticated
	}
	tone := in.Tone
	if tone == "" {
		tone = DefaultTone
	}
	return api.DraftRequest{
		Intent:   in.Intent,
		Receiver: in.Receiver,
		Tone:     tone,
		Context:  in.Context,
	}, nil
}

// Generated moves to the review step with the supplied candidates. An empty
// list, or one holding an entry with neither subject nor body, leaves the
// wizard on step one.
func (w *Wizard) Generated(drafts []api.Draft) error {
	if w.step != StepInputs {
		return ErrWrongStep
	}
	if !WellFormed(drafts) {
		return api.ErrMalformedResponse
	}
	w.drafts = make([]api.Draft, len(drafts))
	copy(w.drafts, drafts)
	w.selected = -1
	w.cursor = 0
	w.step = StepReview
	return nil
}

// WellFormed reports whether drafts is a usable candidate list.
func WellFormed(drafts []api.Draft) bool {
	if len(drafts) == 0 {
		return false
	}
	for _, d := range drafts {
		if strings.TrimSpace(d.Subject) == "" && strings.TrimSpace(d.Body) == "" {
			return false
		}
	}
	return true
}

// Select marks candidate i.
func (w *Wizard) Select(i int) error {
	if w.step != StepReview {
		return ErrWrongStep
	}
	if i < 0 || i >= len(w.drafts) {
		return ErrSelectionRange
	}
	w.selected = i
	w.cursor = i
	return nil
}

// Confirm moves to the confirmation step with the selected draft.
func (w *Wizard) Confirm() (api.Draft, error) {
	if w.step != StepReview {
		return api.Draft{}, ErrWrongStep
	}
	idx, ok := w.Selected()
	if !ok {
		return api.Draft{}, ErrNoSelection
	}
	w.step = StepConfirm
	return w.drafts[idx], nil
}

// Confirmed returns the draft shown on the confirmation step.
func (w *Wizard) Confirmed() (api.Draft, bool) {
	if w.step != StepConfirm {
		return api.Draft{}, false
	}
	idx, ok := w.Selected()
	if !ok {
		return api.Draft{}, false
	}
	return w.drafts[idx], true
}

// Send returns the email to deliver. Nothing is sent without a selection and
// a receiver.
func (w *Wizard) Send() (api.SendEmailRequest, error) {
	if w.step != StepConfirm {
		return api.SendEmailRequest{}, ErrWrongStep
	}
	idx, ok := w.Selected()
	if !ok {
		return api.SendEmailRequest{}, ErrNoSelection
	}
	if w.inputs.Receiver == "" {
		return api.SendEmailRequest{}, fieldErr("receiver", ErrMissingField)
	}
	d := w.drafts[idx]
	return api.SendEmailRequest{To: w.inputs.Receiver, Subject: d.Subject, Body: d.Body}, nil
}

// Sent clears the wizard after a successful send.
func (w *Wizard) Sent() {
	w.Reset()
}

// Cancel returns from confirmation to review, keeping the selection.
func (w *Wizard) Cancel() error {
	if w.step != StepConfirm {
		return ErrWrongStep
	}
	w.step = StepReview
	return nil
}

// Back returns from review to inputs, discarding the candidates.
func (w *Wizard) Back() error {
	if w.step != StepReview {
		return ErrWrongStep
	}
	w.drafts = nil
	w.selected = -1
	w.cursor = 0
	w.step = StepInputs
	return nil
}

// Reset returns to an empty step one.
func (w *Wizard) Reset() {
	*w = Wizard{step: StepInputs, selected: -1}
}
